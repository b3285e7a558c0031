package reconcile

import (
	"fmt"
	"strings"

	"asset-sync/core/utils"
)

// Thumbnail geometry and transformations per resource type.
const (
	ThumbnailSize       = 400
	imageThumbTransform = "c_thumb,w_400,h_400"
	videoThumbTransform = "c_thumb,w_400,h_400/f_jpg"
	uploadSegment       = "upload/"
)

// Planner computes product update actions. It never performs I/O and never mutates its inputs.
type Planner struct {
	cfg Config
}

// NewPlanner creates a planner for the given field mapping.
func NewPlanner(cfg Config) *Planner {
	return &Planner{cfg: cfg}
}

// Config returns the field mapping.
func (p *Planner) Config() Config {
	return p.cfg
}

// Plan computes the actions that bring the variant carrying sku in line with asset.
//
// Unpublish removes the asset record and thumbnail and publishes when anything was removed.
// Publish and draft diff attributes, then the asset record, then the thumbnail; publish mode
// appends a publish action when the plan is non-empty or the product already has staged changes.
func (p *Planner) Plan(product *ProductView, sku string, asset *AssetSnapshot, mode Mode) ([]Action, error) {
	if product == nil || asset == nil {
		return nil, fmt.Errorf("plan: product and asset are required")
	}

	if mode == ModeUnpublish {
		return p.RemovalActions(product, sku, asset)
	}

	actions, err := p.AttributeActions(product, sku, asset.Metadata)
	if err != nil {
		return nil, err
	}

	assetActions, err := p.AssetActions(product, sku, asset)
	if err != nil {
		return nil, err
	}
	actions = append(actions, assetActions...)

	thumb, err := p.ThumbnailAction(product, sku, asset.Name, asset.ResourceType, asset.SecureURL)
	if err != nil {
		return nil, err
	}
	if thumb != nil {
		actions = append(actions, *thumb)
	}

	if mode == ModePublish && (len(actions) > 0 || product.HasStagedChanges) {
		actions = append(actions, Publish())
	}

	return actions, nil
}

// RemovalActions removes the asset record and its thumbnail, then publishes when anything
// was removed. Used for unpublish and for the previous SKU of a reassigned asset.
func (p *Planner) RemovalActions(product *ProductView, sku string, asset *AssetSnapshot) ([]Action, error) {
	var actions []Action

	remove, err := p.RemoveAssetAction(product, sku, asset.PublicID)
	if err != nil {
		return nil, err
	}
	if remove != nil {
		actions = append(actions, *remove)
	}

	thumb, err := p.RemoveThumbnailAction(product, sku, asset.ResourceType, asset.SecureURL)
	if err != nil {
		return nil, err
	}
	if thumb != nil {
		actions = append(actions, *thumb)
	}

	return WithPublish(actions, true), nil
}

// AttributeActions emits setAttribute for every product type attribute whose metadata value
// is present and differs from the variant's current value.
func (p *Planner) AttributeActions(product *ProductView, sku string, md Metadata) ([]Action, error) {
	variant, err := product.Variant(sku)
	if err != nil {
		return nil, err
	}

	current := make(map[string]any, len(variant.Attributes))
	for _, attr := range variant.Attributes {
		current[attr.Name] = attr.Value
	}

	var actions []Action
	for _, name := range product.ProductType.Attributes {
		value, ok := lookup(md, name)
		if !ok || blank(value) {
			continue
		}
		existing, exists := current[name]
		if exists && valuesEqual(existing, value) {
			continue
		}
		actions = append(actions, Action{
			Kind:      ActionSetAttribute,
			SKU:       sku,
			Attribute: name,
			Value:     value,
		})
	}
	return actions, nil
}

// AssetActions adds the asset record when the variant has none for asset.PublicID, otherwise
// rewrites its name and description and, when configured, its sort field.
func (p *Planner) AssetActions(product *ProductView, sku string, asset *AssetSnapshot) ([]Action, error) {
	variant, err := product.Variant(sku)
	if err != nil {
		return nil, err
	}

	locale := p.cfg.locale()
	custom := p.customFields(asset.SortOrder)

	existing := findAsset(variant, asset.PublicID)
	if existing == nil {
		tags := asset.Tags
		if tags == nil {
			tags = []string{}
		}
		return []Action{{
			Kind: ActionAddAsset,
			SKU:  sku,
			Asset: &Asset{
				Name:        LocalizedString{locale: asset.Name},
				Description: LocalizedString{locale: asset.Description},
				Sources: []AssetSource{{
					URI:         asset.PublicID,
					ContentType: ContentType(asset.ResourceType, asset.Format),
				}},
				Tags:   tags,
				Custom: custom,
			},
		}}, nil
	}

	actions := []Action{
		{
			Kind:    ActionChangeAssetName,
			SKU:     sku,
			AssetID: existing.ID,
			Name:    LocalizedString{locale: asset.Name},
		},
		{
			Kind:        ActionSetAssetDescription,
			SKU:         sku,
			AssetID:     existing.ID,
			Description: LocalizedString{locale: asset.Description},
		},
	}
	if custom != nil {
		actions = append(actions, Action{
			Kind:    ActionSetAssetCustomType,
			SKU:     sku,
			AssetID: existing.ID,
			Type:    &custom.Type,
			Fields:  custom.Fields,
		})
	}
	return actions, nil
}

// RemoveAssetAction returns removeAsset for the matching record, or nil when there is none.
func (p *Planner) RemoveAssetAction(product *ProductView, sku, publicID string) (*Action, error) {
	variant, err := product.Variant(sku)
	if err != nil {
		return nil, err
	}
	existing := findAsset(variant, publicID)
	if existing == nil {
		return nil, nil
	}
	return &Action{Kind: ActionRemoveAsset, SKU: sku, AssetID: existing.ID}, nil
}

// ThumbnailAction returns addExternalImage when the derived thumbnail is missing, or nil.
func (p *Planner) ThumbnailAction(product *ProductView, sku, label, resourceType, secureURL string) (*Action, error) {
	variant, err := product.Variant(sku)
	if err != nil {
		return nil, err
	}
	url := ThumbnailURL(resourceType, secureURL)
	if hasImage(variant, url) {
		return nil, nil
	}
	return &Action{
		Kind: ActionAddExternalImage,
		SKU:  sku,
		Image: &Image{
			URL:        url,
			Label:      label,
			Dimensions: Dimensions{W: ThumbnailSize, H: ThumbnailSize},
		},
	}, nil
}

// RemoveThumbnailAction returns removeImage when the derived thumbnail is present, or nil.
func (p *Planner) RemoveThumbnailAction(product *ProductView, sku, resourceType, secureURL string) (*Action, error) {
	variant, err := product.Variant(sku)
	if err != nil {
		return nil, err
	}
	url := ThumbnailURL(resourceType, secureURL)
	if !hasImage(variant, url) {
		return nil, nil
	}
	return &Action{Kind: ActionRemoveImage, SKU: sku, ImageURL: url}, nil
}

// WithPublish appends publish when requested and the plan is non-empty.
func WithPublish(actions []Action, publish bool) []Action {
	if publish && len(actions) > 0 {
		return append(actions, Publish())
	}
	return actions
}

// ThumbnailURL derives the thumbnail delivery URL by inserting the transformation after the
// first upload/ segment.
func ThumbnailURL(resourceType, secureURL string) string {
	transform := imageThumbTransform
	if resourceType != ResourceImage {
		transform = videoThumbTransform
	}
	return strings.Replace(secureURL, uploadSegment, uploadSegment+transform+"/", 1)
}

// ContentType returns the MIME type recorded on the asset source.
func ContentType(resourceType, format string) string {
	if resourceType == ResourceVideo {
		return "video/" + format
	}
	return "image/" + format
}

func (p *Planner) customFields(sortOrder any) *CustomFields {
	if !p.cfg.sortEnabled() || utils.IsBlank(sortOrder) {
		return nil
	}
	return &CustomFields{
		Type:   TypeReference{Key: p.cfg.AssetTypeKey},
		Fields: map[string]any{p.cfg.AssetSortField: sortOrder},
	}
}

func findAsset(variant *Variant, publicID string) *Asset {
	for i := range variant.Assets {
		if variant.Assets[i].SourceURI() == publicID {
			return &variant.Assets[i]
		}
	}
	return nil
}

func hasImage(variant *Variant, url string) bool {
	for _, img := range variant.Images {
		if img.URL == url {
			return true
		}
	}
	return false
}

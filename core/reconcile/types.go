package reconcile

// Mode is the publish intent carried by an asset's metadata.
type Mode string

const (
	// ModePublish stages changes and publishes the product.
	ModePublish Mode = "publish"
	// ModeDraft stages changes without publishing.
	ModeDraft Mode = "draft"
	// ModeUnpublish removes the asset and its thumbnail from the product, then publishes.
	ModeUnpublish Mode = "unpublish"
)

// Publish flag values written by the media host's metadata field.
const (
	FlagDraft     = "cld_ct_draft"
	FlagUnpublish = "cld_ct_unpublish"
)

// ModeFromFlag maps a publish flag to a Mode. An empty flag means there is nothing to do.
func ModeFromFlag(flag string) (Mode, bool) {
	switch flag {
	case "":
		return "", false
	case FlagDraft:
		return ModeDraft, true
	case FlagUnpublish:
		return ModeUnpublish, true
	default:
		return ModePublish, true
	}
}

// Staged reports whether the flag asks for staged-only changes.
func Staged(flag string) bool {
	return flag == FlagDraft
}

// ResourceImage and ResourceVideo are the media host resource kinds.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
)

// AssetSnapshot is the media host's view of one asset at notification time.
type AssetSnapshot struct {
	// PublicID is the media host identifier; the catalog stores it as the asset source URI.
	PublicID string

	// ResourceType is image or video.
	ResourceType string

	// Format is the file format (jpg, mp4, ...).
	Format string

	// SecureURL is the HTTPS delivery URL.
	SecureURL string

	// Name and Description come from the caption and alt context fields.
	Name        string
	Description string

	// Tags are copied onto the catalog asset.
	Tags []string

	// Metadata is the structured metadata in whichever shape the source delivered.
	Metadata Metadata

	// SKU, PublishFlag and SortOrder are read from Metadata using the configured field names.
	SKU         string
	PublishFlag string
	SortOrder   any
}

// LocalizedString maps a locale to text.
type LocalizedString map[string]string

// AssetSource is one source file of a catalog asset.
type AssetSource struct {
	URI         string `json:"uri"`
	ContentType string `json:"contentType,omitempty"`
}

// TypeReference references a custom type by key.
type TypeReference struct {
	Key string `json:"key,omitempty"`
	ID  string `json:"id,omitempty"`
}

// CustomFields is a custom type reference plus field values.
type CustomFields struct {
	Type   TypeReference  `json:"type"`
	Fields map[string]any `json:"fields,omitempty"`
}

// Asset is an asset record stored on a product variant.
type Asset struct {
	ID          string          `json:"id,omitempty"`
	Name        LocalizedString `json:"name"`
	Description LocalizedString `json:"description,omitempty"`
	Sources     []AssetSource   `json:"sources"`
	Tags        []string        `json:"tags"`
	Custom      *CustomFields   `json:"custom,omitempty"`
}

// SourceURI returns the URI of the first source, which correlates the asset with the media host.
func (a Asset) SourceURI() string {
	if len(a.Sources) == 0 {
		return ""
	}
	return a.Sources[0].URI
}

// Dimensions of an external image.
type Dimensions struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Image is an image entry on a product variant.
type Image struct {
	URL        string     `json:"url"`
	Label      string     `json:"label,omitempty"`
	Dimensions Dimensions `json:"dimensions"`
}

// Attribute is a variant attribute as returned by the catalog.
type Attribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Variant is one product variant.
type Variant struct {
	ID         int         `json:"id"`
	SKU        string      `json:"sku"`
	Assets     []Asset     `json:"assets"`
	Images     []Image     `json:"images"`
	Attributes []Attribute `json:"attributes"`
}

// ProductTypeRef references the product's type and carries its attribute names once resolved.
type ProductTypeRef struct {
	ID         string   `json:"id"`
	Attributes []string `json:"-"`
}

// ProductView is the normalized staged view of one catalog product.
type ProductView struct {
	ID               string
	Version          int64
	ProductType      ProductTypeRef
	MasterVariant    Variant
	Variants         []Variant
	Published        bool
	HasStagedChanges bool
}

// Variant returns the variant carrying the given SKU.
func (p *ProductView) Variant(sku string) (*Variant, error) {
	if p.MasterVariant.SKU == sku {
		return &p.MasterVariant, nil
	}
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i], nil
		}
	}
	return nil, ErrVariantNotFound
}

package sync

import (
	"context"
	"encoding/json"
	"testing"

	"asset-sync/core/notification"
	"asset-sync/core/reconcile"
	"asset-sync/feature/sync/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secureURL = "https://res.cloudinary.com/demo/image/upload/v1/img_1.jpg"

var mapping = reconcile.Config{
	PropertySKU:     "sku",
	PropertyPublish: "publish",
	PropertySort:    "sort",
	Locale:          "en-US",
}

type fakeResolver struct {
	assets map[string]*reconcile.AssetSnapshot
	err    error
}

func (r *fakeResolver) Resolve(_ context.Context, _ string, publicID string) (*reconcile.AssetSnapshot, error) {
	if r.err != nil {
		return nil, r.err
	}
	asset, ok := r.assets[publicID]
	if !ok {
		return nil, reconcile.ErrAssetNotFound
	}
	return asset, nil
}

// fakeCatalog mimics the catalog: it searches variants by SKU and applies actions.
type fakeCatalog struct {
	products  []*reconcile.ProductView
	calls     []string
	updates   [][]reconcile.Action
	locateErr error
	updateErr error
	staged    []bool
}

func (f *fakeCatalog) Locate(_ context.Context, sku string, staged bool) (*reconcile.ProductView, error) {
	f.calls = append(f.calls, "locate:"+sku)
	f.staged = append(f.staged, staged)
	if f.locateErr != nil {
		return nil, f.locateErr
	}
	var found []*reconcile.ProductView
	for _, p := range f.products {
		if _, err := p.Variant(sku); err == nil {
			found = append(found, p)
		}
	}
	if len(found) != 1 {
		return nil, reconcile.ErrProductNotFound
	}
	return found[0], nil
}

func (f *fakeCatalog) Update(_ context.Context, product *reconcile.ProductView, actions []reconcile.Action) (*reconcile.ProductView, error) {
	f.calls = append(f.calls, "update:"+product.ID)
	f.updates = append(f.updates, actions)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	next := applyActions(product, actions)
	for i, p := range f.products {
		if p.ID == product.ID {
			f.products[i] = next
		}
	}
	return next, nil
}

func (f *fakeCatalog) product(id string) *reconcile.ProductView {
	for _, p := range f.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func applyActions(product *reconcile.ProductView, actions []reconcile.Action) *reconcile.ProductView {
	next := *product
	next.MasterVariant = cloneVariant(product.MasterVariant)
	next.Variants = make([]reconcile.Variant, len(product.Variants))
	for i, v := range product.Variants {
		next.Variants[i] = cloneVariant(v)
	}
	next.Version++

	for _, a := range actions {
		if a.Kind == reconcile.ActionPublish {
			next.Published = true
			next.HasStagedChanges = false
			continue
		}
		next.HasStagedChanges = true
		v, err := next.Variant(a.SKU)
		if err != nil {
			continue
		}
		switch a.Kind {
		case reconcile.ActionAddAsset:
			asset := *a.Asset
			asset.ID = "asset-" + a.Asset.SourceURI()
			v.Assets = append(v.Assets, asset)
		case reconcile.ActionRemoveAsset:
			for i := range v.Assets {
				if v.Assets[i].ID == a.AssetID {
					v.Assets = append(v.Assets[:i], v.Assets[i+1:]...)
					break
				}
			}
		case reconcile.ActionAddExternalImage:
			v.Images = append(v.Images, *a.Image)
		case reconcile.ActionRemoveImage:
			for i := range v.Images {
				if v.Images[i].URL == a.ImageURL {
					v.Images = append(v.Images[:i], v.Images[i+1:]...)
					break
				}
			}
		case reconcile.ActionSetAttribute:
			v.Attributes = append(v.Attributes, reconcile.Attribute{Name: a.Attribute, Value: a.Value})
		}
	}
	return &next
}

func cloneVariant(v reconcile.Variant) reconcile.Variant {
	v.Assets = append([]reconcile.Asset(nil), v.Assets...)
	v.Images = append([]reconcile.Image(nil), v.Images...)
	v.Attributes = append([]reconcile.Attribute(nil), v.Attributes...)
	return v
}

type memoryJournal struct {
	entries []models.JournalEntry
	err     error
}

func (j *memoryJournal) Record(_ context.Context, entry *models.JournalEntry) error {
	if j.err != nil {
		return j.err
	}
	j.entries = append(j.entries, *entry)
	return nil
}

func (j *memoryJournal) Recent(_ context.Context, _ JournalFilter) ([]models.JournalEntry, error) {
	return j.entries, j.err
}

func testAsset(sku, flag string) *reconcile.AssetSnapshot {
	return &reconcile.AssetSnapshot{
		PublicID:     "img_1",
		ResourceType: reconcile.ResourceImage,
		Format:       "jpg",
		SecureURL:    secureURL,
		Name:         "Front",
		Description:  "Front view",
		Tags:         []string{"front"},
		Metadata:     reconcile.MapMetadata{"sku": sku, "publish": flag, "color": "red"},
		SKU:          sku,
		PublishFlag:  flag,
	}
}

func testProduct(id, sku string) *reconcile.ProductView {
	return &reconcile.ProductView{
		ID:            id,
		Version:       1,
		ProductType:   reconcile.ProductTypeRef{ID: "pt-1", Attributes: []string{"color"}},
		MasterVariant: reconcile.Variant{ID: 1, SKU: sku},
	}
}

// unit builds a split single-asset notification.
func unit(t *testing.T, publicID string, previous map[string]any) notification.Notification {
	t.Helper()
	resource := map[string]any{"publicId": publicID, "resource_type": "image", "type": "upload"}
	if previous != nil {
		resource["previous_metadata"] = previous
	}
	raw, err := json.Marshal(map[string]any{
		"notification_type": notification.TypeMetadataChanged,
		"resources":         []any{resource},
	})
	require.NoError(t, err)
	n, err := notification.Decode(raw)
	require.NoError(t, err)
	return n
}

func newTestService(resolver reconcile.Resolver, catalog *fakeCatalog, journal Journal) *Service {
	return NewService(Dependencies{
		Resolver: resolver,
		Catalog:  catalog,
		CatalogFor: func(context.Context, string) reconcile.Catalog {
			return catalog
		},
		Planner: reconcile.NewPlanner(mapping),
		Journal: journal,
		Logger:  zap.NewNop(),
	})
}

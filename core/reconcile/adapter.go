package reconcile

import "context"

// Resolver fetches the current state of an asset from the media host.
type Resolver interface {
	// Resolve returns ErrAssetNotFound when the host does not know the asset.
	Resolve(ctx context.Context, resourceType, publicID string) (*AssetSnapshot, error)
}

// Locator finds the product carrying a SKU. The returned view is always the staged projection;
// staged only narrows the search.
type Locator interface {
	// Locate returns ErrProductNotFound unless exactly one product matches.
	Locate(ctx context.Context, sku string, staged bool) (*ProductView, error)
}

// Updater applies actions to a product at its current version.
type Updater interface {
	// Update returns ErrVersionConflict when the product moved past product.Version.
	Update(ctx context.Context, product *ProductView, actions []Action) (*ProductView, error)
}

// Catalog is a Locator that can also apply updates.
type Catalog interface {
	Locator
	Updater
}

// AttributeLoader lists the attribute names defined on a product type.
type AttributeLoader interface {
	ProductTypeAttributes(ctx context.Context, productTypeID string) ([]string, error)
}

// Package reconcile computes the catalog update actions that keep a product in sync with one
// media asset.
//
// The package is pure: it reads an AssetSnapshot (the media host's view of the asset) and a
// ProductView (the staged catalog product) and returns an ordered list of Actions. I/O lives
// behind the Resolver, Locator and Updater interfaces declared in adapter.go and implemented
// by core/cloudinary and core/commercetools.
//
// # Planning
//
// The publish flag on the asset selects a Mode:
//
//   - cld_ct_unpublish: remove the asset record and thumbnail, publish if anything changed
//   - cld_ct_draft: diff attributes, asset record and thumbnail, never publish
//   - anything else: same diff, publish if the plan is non-empty or the product has staged changes
//
// Actions are always ordered attributes, asset record, thumbnail, publish.
//
// # Metadata
//
// Asset metadata arrives either as a map of field id to value or as a list of field
// descriptors. ParseMetadata picks the shape once at the boundary and the planner only sees
// the Metadata interface.
//
// # Attribute cache
//
// Product type attribute names change rarely, so AttributeCache keeps them for a TTL and
// collapses concurrent loads of the same type with singleflight.
package reconcile

// Package sync reconciles media host assets into catalog product variants.
//
// The Service is the orchestrator. For every single-asset notification it resolves the asset,
// derives the publish mode from the asset's publish flag, and reconciles the variant carrying
// the asset's SKU. When previous_metadata names a different SKU, the asset is first removed
// from the product carrying that SKU. Each product reconciliation locates the product, asks
// the reconcile.Planner for actions, applies them at the located version and records a journal
// entry.
//
// # Modes
//
//   - publish: attributes, asset record and thumbnail are synced, then the product is published.
//   - draft (cld_ct_draft): the same changes are staged without publishing.
//   - unpublish (cld_ct_unpublish): the asset record and thumbnail are removed.
//
// # HTTP Endpoints
//
//   - POST /notifications/process : Pub/Sub push delivery of one unit (204 on success).
//   - POST /assets, DELETE /assets : direct asset record maintenance.
//   - POST /thumbnails, DELETE /thumbnails : direct thumbnail maintenance.
//   - POST /properties : direct attribute update from metadata.
//   - GET /journal : recent reconciliations.
//
// Direct endpoints authenticate against the catalog with the token in the request body and
// collect every missing field into a single 400 response.
package sync

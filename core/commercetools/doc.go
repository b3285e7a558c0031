// Package commercetools implements the product locator and product updater on top of the
// commercetools HTTP API.
//
// Requests go through resty over an oauth2 HTTP client: NewClient uses the client
// credentials grant for the sync worker, NewTokenClient wraps a bearer token supplied by a
// caller of the direct endpoints.
//
// Locate searches product projections by SKU, requires exactly one hit, then loads the full
// product and always keeps its staged data. Product type attribute names are attached to the
// returned view, optionally through a reconcile.AttributeCache.
package commercetools

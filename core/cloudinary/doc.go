// Package cloudinary implements the asset resolver on top of the Cloudinary Admin API.
//
// One authenticated GET per asset returns its secure URL, format, tags, contextual caption
// and alt text, and structured metadata. The metadata is decoded into the reconcile
// Metadata union and the SKU, publish flag and sort order are read from the configured
// field names.
package cloudinary

// Package secrets resolves the commercetools client secret and the Cloudinary API secret,
// either from the environment or from Google Secret Manager.
package secrets

// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key validation for everything registered after it
//   - rayid: a per-request id in locals and the X-Ray-ID response header, picked up by
//     logger.WithRayID
package middleware

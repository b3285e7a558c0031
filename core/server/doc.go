// Package server holds the HTTP server configuration.
//
// The main application entry point (cmd/start.go) builds the Fiber app; this package only
// defines the listen port, the API key protecting the direct-invocation endpoints, and
// request limits.
package server

// Package config provides configuration management for the asset sync service.
//
// Values come from the process environment, optionally seeded from a .env file. Every
// setting is declared once on a partial Config struct owned by the package that uses it,
// with a mapstructure tag for its key and a default tag for its default value.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, read timeout, body limit
//   - Log: level and format
//   - Database: sync journal connection (mysql or sqlite)
//   - Storage: MinIO/S3 archive of inbound notifications
//   - Catalog: commercetools API and auth URLs, project key, client credentials
//   - Media: Cloudinary cloud name and API key
//   - Mapping: metadata field names and asset custom type settings
//   - Queue: inline, pubsub or kafka fan-out
//   - Secrets: env or gcp Secret Manager
//   - Metrics: Prometheus exposition
//
// Nested keys map to environment variables by replacing dots with underscores, so
// mapping.property_sku is read from MAPPING_PROPERTY_SKU.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config

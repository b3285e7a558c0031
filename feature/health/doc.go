// Package health checks the infrastructure the sync depends on.
//
// # Checks Provided
//
//   - Storage: the notification archive bucket exists (fixable: creates the bucket).
//   - Database: the journal database answers and the sync_journal table has every expected
//     column (fixable: migrates the table).
//   - Catalog: a catalog token can be obtained and the project read.
//
// Components that are not configured report "disabled" and never fail the combined check.
//
// # HTTP Endpoints
//
//   - GET /health : Runs all checks (503 when one fails).
//   - GET /health/storage : Runs the storage check (supports ?fix=true).
//   - GET /health/database : Runs the database check (supports ?fix=true).
//   - GET /health/catalog : Runs the catalog check.
package health

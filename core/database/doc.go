// Package database handles the optional journal database connection.
//
// It wraps GORM to open either MySQL (production) or SQLite (local runs and tests) based on
// the application's configuration. The sync journal in feature/sync is the only consumer.
//
// # Schema Inspection
//
// MissingColumns compares a table against the columns a model expects. The health feature
// uses it to report a journal table that was not migrated.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("journal disabled", zap.Error(err))
//	}
package database

// Package models holds the gorm models persisted by the sync feature.
package models

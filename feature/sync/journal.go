package sync

import (
	"context"
	"fmt"

	"asset-sync/feature/sync/models"

	"gorm.io/gorm"
)

// DefaultJournalLimit caps journal listings when the caller asks for none.
const DefaultJournalLimit = 50

// Journal records reconciliations.
type Journal interface {
	Record(ctx context.Context, entry *models.JournalEntry) error
	Recent(ctx context.Context, filter JournalFilter) ([]models.JournalEntry, error)
}

// JournalFilter narrows a journal listing.
type JournalFilter struct {
	SKU      string
	PublicID string
	Limit    int
}

// NopJournal discards entries. Used when the database is disabled.
type NopJournal struct{}

// Record implements Journal.
func (NopJournal) Record(context.Context, *models.JournalEntry) error { return nil }

// Recent implements Journal.
func (NopJournal) Recent(context.Context, JournalFilter) ([]models.JournalEntry, error) {
	return []models.JournalEntry{}, nil
}

// GormJournal stores entries in the sync_journal table.
type GormJournal struct {
	db *gorm.DB
}

// NewGormJournal creates a journal backed by db.
func NewGormJournal(db *gorm.DB) *GormJournal {
	return &GormJournal{db: db}
}

// Migrate creates or updates the journal table.
func (j *GormJournal) Migrate() error {
	if err := j.db.AutoMigrate(&models.JournalEntry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", models.JournalTable, err)
	}
	return nil
}

// Record inserts one entry.
func (j *GormJournal) Record(ctx context.Context, entry *models.JournalEntry) error {
	if err := j.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record journal entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (j *GormJournal) Recent(ctx context.Context, filter JournalFilter) ([]models.JournalEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultJournalLimit
	}

	query := j.db.WithContext(ctx).Model(&models.JournalEntry{})
	if filter.SKU != "" {
		query = query.Where("sku = ?", filter.SKU)
	}
	if filter.PublicID != "" {
		query = query.Where("public_id = ?", filter.PublicID)
	}

	entries := []models.JournalEntry{}
	if err := query.Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}

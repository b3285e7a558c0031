package health

import (
	"context"
	"errors"
	"time"

	"asset-sync/core/database"
	"asset-sync/core/storage"
	"asset-sync/feature/sync/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrDisabled is returned by checks whose component is not configured.
var ErrDisabled = errors.New("component disabled")

// Pinger verifies that a remote API accepts our credentials.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service runs health checks against the sync dependencies. Any dependency may be nil.
type Service struct {
	archive   *storage.Archive
	db        *gorm.DB
	catalog   Pinger
	dbTimeout time.Duration
	logger    *zap.Logger
}

// NewService creates a new health service.
func NewService(archive *storage.Archive, db *gorm.DB, catalog Pinger, dbTimeout time.Duration, logger *zap.Logger) *Service {
	if dbTimeout <= 0 {
		dbTimeout = 5 * time.Second
	}
	return &Service{
		archive:   archive,
		db:        db,
		catalog:   catalog,
		dbTimeout: dbTimeout,
		logger:    logger,
	}
}

// CheckStorage reports whether the archive bucket exists.
func (s *Service) CheckStorage(ctx context.Context) (bool, error) {
	if s.archive == nil {
		return false, ErrDisabled
	}
	return s.archive.BucketExists(ctx)
}

// FixStorage creates the archive bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.archive == nil {
		return ErrDisabled
	}
	return s.archive.EnsureBucket(ctx)
}

// CheckDatabase pings the journal database and returns the journal columns it lacks.
func (s *Service) CheckDatabase() ([]string, error) {
	if s.db == nil {
		return nil, ErrDisabled
	}
	if err := database.Ping(s.db, s.dbTimeout); err != nil {
		return nil, err
	}
	return database.MissingColumns(s.db, models.JournalTable, models.JournalColumns())
}

// FixDatabase migrates the journal table.
func (s *Service) FixDatabase() error {
	if s.db == nil {
		return ErrDisabled
	}
	return s.db.AutoMigrate(&models.JournalEntry{})
}

// CheckCatalog verifies catalog credentials.
func (s *Service) CheckCatalog(ctx context.Context) error {
	if s.catalog == nil {
		return ErrDisabled
	}
	return s.catalog.Ping(ctx)
}

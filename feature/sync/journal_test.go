package sync

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"asset-sync/core/database"
	"asset-sync/feature/sync/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupJournalDB(t *testing.T) *GormJournal {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	journal := NewGormJournal(db)
	require.NoError(t, journal.Migrate())
	return journal
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestGormJournal_RecordAndRecent(t *testing.T) {
	journal := setupJournalDB(t)
	ctx := context.Background()

	for _, e := range []models.JournalEntry{
		{PublicID: "img_1", SKU: "SKU-A", Role: models.RoleOld, Status: 200, Result: "ok"},
		{PublicID: "img_1", SKU: "SKU-B", Role: models.RoleNew, Status: 200, Result: "ok", Actions: `[{"action":"publish"}]`},
		{PublicID: "img_2", SKU: "SKU-B", Role: models.RoleNew, Status: 404, Result: "not_found"},
	} {
		entry := e
		require.NoError(t, journal.Record(ctx, &entry))
		assert.NotZero(t, entry.ID)
	}

	all, err := journal.Recent(ctx, JournalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "img_2", all[0].PublicID, "newest first")

	bySKU, err := journal.Recent(ctx, JournalFilter{SKU: "SKU-B", Limit: 1})
	require.NoError(t, err)
	require.Len(t, bySKU, 1)
	assert.Equal(t, "img_2", bySKU[0].PublicID)

	byAsset, err := journal.Recent(ctx, JournalFilter{PublicID: "img_1"})
	require.NoError(t, err)
	assert.Len(t, byAsset, 2)
}

func TestGormJournal_SchemaMatchesHealthCheck(t *testing.T) {
	journal := setupJournalDB(t)

	missing, err := database.MissingColumns(journal.db, models.JournalTable, models.JournalColumns())
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestGormJournal_Failures(t *testing.T) {
	db, mock := setupMockDB(t)
	journal := NewGormJournal(db)

	mock.ExpectExec("INSERT INTO").WillReturnError(errors.New("db down"))
	err := journal.Record(context.Background(), &models.JournalEntry{Role: models.RoleNew})
	assert.ErrorContains(t, err, "failed to record journal entry")

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("db down"))
	_, err = journal.Recent(context.Background(), JournalFilter{SKU: "SKU-A"})
	assert.ErrorContains(t, err, "failed to list journal entries")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNopJournal(t *testing.T) {
	var j Journal = NopJournal{}
	assert.NoError(t, j.Record(context.Background(), &models.JournalEntry{}))
	entries, err := j.Recent(context.Background(), JournalFilter{})
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

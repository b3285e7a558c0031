package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"asset-sync/core/storage"
	"asset-sync/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func setupTestApp(svc *Service) *fiber.App {
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func get(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleStorageCheck(t *testing.T) {
	mockClient := new(mocks.Client)
	archive := storage.NewArchive(mockClient, "test-bucket", "notifications")
	app := setupTestApp(NewService(archive, nil, nil, 0, zap.NewNop()))

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)

	status, body := get(t, app, "/health/storage")
	assert.Equal(t, 200, status)
	assert.Equal(t, "checked", body["status"])
	assert.Equal(t, false, body["exists"])
	mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)

	mockClient.On("MakeBucket", mock.Anything, "test-bucket", minio.MakeBucketOptions{}).Return(nil)

	status, body = get(t, app, "/health/storage?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, "fixed", body["status"])
	mockClient.AssertCalled(t, "MakeBucket", mock.Anything, "test-bucket", minio.MakeBucketOptions{})
}

func TestHandleStorageCheck_Error(t *testing.T) {
	mockClient := new(mocks.Client)
	archive := storage.NewArchive(mockClient, "test-bucket", "notifications")
	app := setupTestApp(NewService(archive, nil, nil, 0, zap.NewNop()))

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, errors.New("unreachable"))

	status, body := get(t, app, "/health/storage")
	assert.Equal(t, 500, status)
	assert.Contains(t, body["error"], "unreachable")
}

func TestHandleDatabaseCheck(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(NewService(nil, db, nil, 0, zap.NewNop()))

	status, body := get(t, app, "/health/database")
	assert.Equal(t, 200, status)
	assert.Equal(t, "checked", body["status"])
	assert.NotEmpty(t, body["missing"])

	status, body = get(t, app, "/health/database?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, "fixed", body["status"])

	status, body = get(t, app, "/health/database")
	assert.Equal(t, 200, status)
	assert.Empty(t, body["missing"])
}

func TestHandleCatalogCheck(t *testing.T) {
	app := setupTestApp(NewService(nil, nil, fakePinger{}, 0, zap.NewNop()))
	status, body := get(t, app, "/health/catalog")
	assert.Equal(t, 200, status)
	assert.Equal(t, StatusOK, body["status"])

	app = setupTestApp(NewService(nil, nil, fakePinger{err: errors.New("401")}, 0, zap.NewNop()))
	status, body = get(t, app, "/health/catalog")
	assert.Equal(t, 502, status)
	assert.Equal(t, StatusError, body["status"])
}

func TestHandleHealth(t *testing.T) {
	t.Run("disabled components are healthy", func(t *testing.T) {
		app := setupTestApp(NewService(nil, nil, nil, 0, zap.NewNop()))
		status, body := get(t, app, "/health")
		assert.Equal(t, 200, status)
		assert.Equal(t, StatusDisabled, body["storage"].(map[string]any)["status"])
		assert.Equal(t, StatusDisabled, body["database"].(map[string]any)["status"])
		assert.Equal(t, StatusDisabled, body["catalog"].(map[string]any)["status"])
	})

	t.Run("failing catalog", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		archive := storage.NewArchive(mockClient, "test-bucket", "notifications")

		app := setupTestApp(NewService(archive, nil, fakePinger{err: errors.New("401")}, 0, zap.NewNop()))
		status, body := get(t, app, "/health")
		assert.Equal(t, 503, status)
		assert.Equal(t, StatusOK, body["storage"].(map[string]any)["status"])
		assert.Equal(t, StatusError, body["catalog"].(map[string]any)["status"])
	})
}

func TestLoader(t *testing.T) {
	feature := NewFeature(NewService(nil, nil, nil, 0, zap.NewNop()))

	assert.Equal(t, "health", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"asset-sync/core/metrics"
	"asset-sync/core/notification"
	"asset-sync/core/queue"
	"asset-sync/core/storage"
	"asset-sync/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const metadataChanged = `{
	"notification_type": "resource_metadata_changed",
	"source": "ui",
	"resources": {
		"img_2": {"resource_type": "image", "type": "upload"},
		"img_1": {"resource_type": "image", "type": "upload", "previous_metadata": {"sku": "SKU-A"}}
	}
}`

type fakePublisher struct {
	units []notification.Notification
	err   error
}

func (p *fakePublisher) Name() string { return "fake" }

func (p *fakePublisher) Publish(_ context.Context, units []notification.Notification) error {
	if p.err != nil {
		return p.err
	}
	p.units = append(p.units, units...)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func publicIDs(t *testing.T, units []notification.Notification) []string {
	t.Helper()
	ids := make([]string, 0, len(units))
	for _, u := range units {
		res, err := u.Resource()
		require.NoError(t, err)
		ids = append(ids, res.PublicID)
	}
	return ids
}

func TestAccept_SplitsAndPublishesInOrder(t *testing.T) {
	publisher := &fakePublisher{}
	svc := NewService(publisher, nil, nil, zap.NewNop())

	result, err := svc.Accept(context.Background(), []byte(metadataChanged))
	require.NoError(t, err)

	assert.Equal(t, OutcomeAccepted, result.Status)
	assert.Equal(t, 2, result.Units)
	assert.Equal(t, []string{"img_1", "img_2"}, publicIDs(t, publisher.units))
	assert.Equal(t, json.RawMessage(`"ui"`), publisher.units[0]["source"])
}

func TestAccept_IgnoresOtherTypes(t *testing.T) {
	publisher := &fakePublisher{}
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	svc := NewService(publisher, nil, m, zap.NewNop())

	result, err := svc.Accept(context.Background(), []byte(`{"notification_type":"upload","resources":{"img_1":{}}}`))
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, result.Status)
	assert.Empty(t, publisher.units)

	count, err := testutil.GatherAndCount(m.Registry(), "asset_sync_notifications_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAccept_InlineCountsEachUnitOnce(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	handled := 0
	inline := queue.NewInline(func(context.Context, notification.Notification) error {
		handled++
		return nil
	}, zap.NewNop(), m)
	svc := NewService(inline, nil, m, zap.NewNop())

	result, err := svc.Accept(context.Background(), []byte(metadataChanged))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Units)
	assert.Equal(t, 2, handled)

	expected := `
# HELP asset_sync_units_published_total Single-asset units handed to the fan-out transport
# TYPE asset_sync_units_published_total counter
asset_sync_units_published_total{transport="inline"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "asset_sync_units_published_total"))
}

func TestAccept_Archives(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	archive := storage.NewArchive(mockClient, "archive", "notifications")
	svc := NewService(&fakePublisher{}, archive, nil, zap.NewNop())

	result, err := svc.Accept(context.Background(), []byte(metadataChanged))
	require.NoError(t, err)
	assert.Contains(t, result.ArchiveKey, "notifications/")
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestAccept_ArchiveFailureIsNotFatal(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("unreachable"))
	archive := storage.NewArchive(mockClient, "archive", "notifications")
	publisher := &fakePublisher{}
	svc := NewService(publisher, archive, nil, zap.NewNop())

	result, err := svc.Accept(context.Background(), []byte(metadataChanged))
	require.NoError(t, err)
	assert.Empty(t, result.ArchiveKey)
	assert.Len(t, publisher.units, 2)
}

func TestAccept_Errors(t *testing.T) {
	svc := NewService(&fakePublisher{}, nil, nil, zap.NewNop())
	_, err := svc.Accept(context.Background(), []byte(`not json`))
	assert.ErrorIs(t, err, notification.ErrMalformed)

	_, err = svc.Accept(context.Background(), []byte(`{"notification_type":"resource_metadata_changed","resources":[1]}`))
	assert.ErrorIs(t, err, notification.ErrMalformed)

	svc = NewService(&fakePublisher{err: errors.New("broker down")}, nil, nil, zap.NewNop())
	_, err = svc.Accept(context.Background(), []byte(metadataChanged))
	assert.ErrorContains(t, err, "broker down")
}

func TestReplay_DoesNotArchive(t *testing.T) {
	mockClient := new(mocks.Client)
	archive := storage.NewArchive(mockClient, "archive", "notifications")
	publisher := &fakePublisher{}
	svc := NewService(publisher, archive, nil, zap.NewNop())

	result, err := svc.Replay(context.Background(), []byte(metadataChanged))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Units)
	mockClient.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleNotification(t *testing.T) {
	publisher := &fakePublisher{}
	app := fiber.New()
	NewHandler(NewService(publisher, nil, nil, zap.NewNop())).RegisterRoutes(app)

	req := httptest.NewRequest("POST", "/notifications", bytes.NewReader([]byte(metadataChanged)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, OutcomeAccepted, body["status"])
	assert.EqualValues(t, 2, body["units"])

	req = httptest.NewRequest("POST", "/notifications", bytes.NewReader([]byte(`{`)))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(NewService(&fakePublisher{}, nil, nil, zap.NewNop()))
	assert.Equal(t, "intake", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))

	assert.False(t, NewFeature(NewService(nil, nil, nil, zap.NewNop())).IsEnabled())
}

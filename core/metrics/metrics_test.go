package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry_Gathers(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry)

	m.ObserveNotification("accepted")
	m.ObservePublished("pubsub", 2)
	m.ObserveReconcile("new", ResultOK, []string{"addAsset", "publish"}, 20*time.Millisecond)
	m.ObserveDelivery("kafka", "ack")

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "asset_sync_notifications_total")
	assert.Contains(t, names, "asset_sync_units_published_total")
	assert.Contains(t, names, "asset_sync_reconciliations_total")
	assert.Contains(t, names, "asset_sync_actions_total")
	assert.Contains(t, names, "asset_sync_reconcile_duration_seconds")
	assert.Contains(t, names, "asset_sync_deliveries_total")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.unitsPublished.WithLabelValues("pubsub")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.actions.WithLabelValues("publish")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveNotification("ignored")
		m.ObservePublished("inline", 1)
		m.ObserveReconcile("old", ResultError, nil, time.Second)
		m.ObserveDelivery("pubsub", "nack")
	})
	assert.Nil(t, m.Registry())
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveNotification("accepted")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "asset_sync_notifications_total")
}

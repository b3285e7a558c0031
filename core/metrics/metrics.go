package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reconciliation outcomes.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// Metrics records sync activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	notifications  *prometheus.CounterVec
	unitsPublished *prometheus.CounterVec
	reconciles     *prometheus.CounterVec
	actions        *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	deliveries     *prometheus.CounterVec
}

// New registers the sync collectors on a fresh registry together with the Go and process
// collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWithRegistry(registry)
}

// NewWithRegistry registers the sync collectors on registry.
func NewWithRegistry(registry *prometheus.Registry) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_sync_notifications_total",
				Help: "Inbound notifications by outcome",
			},
			[]string{"outcome"},
		),
		unitsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_sync_units_published_total",
				Help: "Single-asset units handed to the fan-out transport",
			},
			[]string{"transport"},
		),
		reconciles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_sync_reconciliations_total",
				Help: "Product reconciliations by role and result",
			},
			[]string{"role", "result"},
		),
		actions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_sync_actions_total",
				Help: "Update actions sent to the catalog by kind",
			},
			[]string{"kind"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "asset_sync_reconcile_duration_seconds",
				Help:    "Duration of one product reconciliation in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"role"},
		),
		deliveries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asset_sync_deliveries_total",
				Help: "Queue deliveries handled by the consumer by outcome",
			},
			[]string{"transport", "outcome"},
		),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveNotification counts an inbound notification (accepted or ignored).
func (m *Metrics) ObserveNotification(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(outcome).Inc()
}

// ObservePublished counts units handed to a transport.
func (m *Metrics) ObservePublished(transport string, units int) {
	if m == nil {
		return
	}
	m.unitsPublished.WithLabelValues(transport).Add(float64(units))
}

// ObserveReconcile records one reconciliation and the kinds of the actions it applied.
func (m *Metrics) ObserveReconcile(role, result string, kinds []string, duration time.Duration) {
	if m == nil {
		return
	}
	m.reconciles.WithLabelValues(role, result).Inc()
	m.duration.WithLabelValues(role).Observe(duration.Seconds())
	for _, k := range kinds {
		m.actions.WithLabelValues(k).Inc()
	}
}

// ObserveDelivery counts a consumed queue message.
func (m *Metrics) ObserveDelivery(transport, outcome string) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(transport, outcome).Inc()
}

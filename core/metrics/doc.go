// Package metrics exposes Prometheus counters and histograms for notifications, queue
// deliveries and product reconciliations.
package metrics

// Package observability provides Prometheus metrics for the journal services.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Journal metrics
	TradesRecorded prometheus.Counter
	TradesRejected prometheus.Counter
	TradesUpdated  prometheus.Counter
	TradesDeleted  prometheus.Counter

	// Notebook metrics
	EntryWrites *prometheus.CounterVec

	// Audit metrics
	SecurityEventsWritten *prometheus.CounterVec
	SecurityEventsDropped prometheus.Counter

	// Analytics metrics
	SnapshotsComputed prometheus.Counter
	SnapshotDuration  prometheus.Histogram
	SnapshotTradeSize prometheus.Histogram

	registry prometheus.Gatherer
}

// NewMetrics creates a Metrics instance registered on reg.
// A nil reg uses a fresh private registry so tests can build metrics repeatedly.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if namespace == "" {
		namespace = "tradejournal"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		TradesRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "trades_recorded_total",
			Help:      "Total number of trades accepted and stored",
		}),
		TradesRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "trades_rejected_total",
			Help:      "Total number of trade submissions rejected by validation",
		}),
		TradesUpdated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "trades_updated_total",
			Help:      "Total number of trades edited",
		}),
		TradesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "trades_deleted_total",
			Help:      "Total number of trades deleted",
		}),

		EntryWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notebook",
			Name:      "entry_writes_total",
			Help:      "Total number of journal entry writes by operation",
		}, []string{"operation"}),

		SecurityEventsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "security_events_written_total",
			Help:      "Total number of security events stored by type",
		}, []string{"event_type"}),
		SecurityEventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "security_events_dropped_total",
			Help:      "Total number of security events that could not be stored",
		}),

		SnapshotsComputed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "snapshots_computed_total",
			Help:      "Total number of analytics snapshots computed",
		}),
		SnapshotDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "snapshot_duration_seconds",
			Help:      "Time spent fetching trades and computing a snapshot",
			Buckets:   prometheus.DefBuckets,
		}),
		SnapshotTradeSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analytics",
			Name:      "snapshot_trades",
			Help:      "Number of trades included in each snapshot",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),

		registry: reg,
	}
}

// Handler returns an HTTP handler exposing the metrics registry
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordTradeRecorded increments the accepted trade counter
func (m *Metrics) RecordTradeRecorded() {
	if m == nil {
		return
	}
	m.TradesRecorded.Inc()
}

// RecordTradeRejected increments the rejected trade counter
func (m *Metrics) RecordTradeRejected() {
	if m == nil {
		return
	}
	m.TradesRejected.Inc()
}

// RecordTradeUpdated increments the edited trade counter
func (m *Metrics) RecordTradeUpdated() {
	if m == nil {
		return
	}
	m.TradesUpdated.Inc()
}

// RecordEntryWrite counts a journal entry create, update or delete
func (m *Metrics) RecordEntryWrite(operation string) {
	if m == nil {
		return
	}
	m.EntryWrites.WithLabelValues(operation).Inc()
}

// RecordTradeDeleted increments the deleted trade counter
func (m *Metrics) RecordTradeDeleted() {
	if m == nil {
		return
	}
	m.TradesDeleted.Inc()
}

// RecordSecurityEvent counts a stored security event
func (m *Metrics) RecordSecurityEvent(eventType string) {
	if m == nil {
		return
	}
	m.SecurityEventsWritten.WithLabelValues(eventType).Inc()
}

// RecordSecurityEventDropped counts a security event lost to a storage failure
func (m *Metrics) RecordSecurityEventDropped() {
	if m == nil {
		return
	}
	m.SecurityEventsDropped.Inc()
}

// RecordSnapshot records one snapshot computation
func (m *Metrics) RecordSnapshot(trades int, duration time.Duration) {
	if m == nil {
		return
	}
	m.SnapshotsComputed.Inc()
	m.SnapshotDuration.Observe(duration.Seconds())
	m.SnapshotTradeSize.Observe(float64(trades))
}

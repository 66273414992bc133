// Package metrics provides Prometheus metrics for the API server.
package metrics

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus instruments for the application, registered on
// a private registry so tests can run side by side.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Upstream transit API metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	DisruptionCacheSize     prometheus.Gauge
	DisruptionCacheAge      prometheus.Gauge

	// Station database connection pool metrics
	DBConnectionsOpen  prometheus.Gauge
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBWaitSecondsTotal prometheus.Counter

	logger *slog.Logger

	collectorStarted atomic.Bool
	cancel           context.CancelFunc
	wg               sync.WaitGroup
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	return NewWithLogger(nil)
}

// NewWithLogger creates metrics with a logger for error reporting.
func NewWithLogger(logger *slog.Logger) *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navitia_explorer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navitia_explorer_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	upstreamRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navitia_explorer_upstream_requests_total",
			Help: "Total number of requests to the upstream transit API",
		},
		[]string{"endpoint", "status"},
	)

	upstreamRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "navitia_explorer_upstream_request_duration_seconds",
			Help:    "Upstream transit API latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	disruptionCacheSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "navitia_explorer_disruption_cache_size",
		Help: "Number of disruptions in the background cache",
	})

	disruptionCacheAge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "navitia_explorer_disruption_cache_age_seconds",
		Help: "Seconds since the disruption cache was last refreshed",
	})

	dbConnectionsOpen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "navitia_explorer_db_connections_open",
		Help: "Number of open station database connections",
	})

	dbConnectionsInUse := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "navitia_explorer_db_connections_in_use",
		Help: "Number of station database connections currently in use",
	})

	dbConnectionsIdle := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "navitia_explorer_db_connections_idle",
		Help: "Number of idle station database connections",
	})

	dbWaitSecondsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "navitia_explorer_db_wait_seconds_total",
		Help: "Total time blocked waiting for a station database connection",
	})

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		upstreamRequestsTotal,
		upstreamRequestDuration,
		disruptionCacheSize,
		disruptionCacheAge,
		dbConnectionsOpen,
		dbConnectionsInUse,
		dbConnectionsIdle,
		dbWaitSecondsTotal,
	)

	return &Metrics{
		Registry:                registry,
		HTTPRequestsTotal:       httpRequestsTotal,
		HTTPRequestDuration:     httpRequestDuration,
		UpstreamRequestsTotal:   upstreamRequestsTotal,
		UpstreamRequestDuration: upstreamRequestDuration,
		DisruptionCacheSize:     disruptionCacheSize,
		DisruptionCacheAge:      disruptionCacheAge,
		DBConnectionsOpen:       dbConnectionsOpen,
		DBConnectionsInUse:      dbConnectionsInUse,
		DBConnectionsIdle:       dbConnectionsIdle,
		DBWaitSecondsTotal:      dbWaitSecondsTotal,
		logger:                  logger,
	}
}

// StartDBStatsCollector starts a goroutine that periodically snapshots the
// station database's connection pool statistics. Idempotent; call Shutdown to
// stop the collector.
func (m *Metrics) StartDBStatsCollector(db *sql.DB, interval time.Duration) {
	if db == nil {
		return
	}
	if !m.collectorStarted.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	var lastWaitDuration time.Duration

	m.wg.Add(1)
	m.cancel = cancel

	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if m.logger != nil {
					m.logger.Error("panic in DB stats collector", "error", r)
				}
			}
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
				m.DBConnectionsInUse.Set(float64(stats.InUse))
				m.DBConnectionsIdle.Set(float64(stats.Idle))

				waitDelta := stats.WaitDuration - lastWaitDuration
				if waitDelta > 0 {
					m.DBWaitSecondsTotal.Add(waitDelta.Seconds())
				}
				lastWaitDuration = stats.WaitDuration

			case <-ctx.Done():
				return
			}
		}
	}()
}

// ObserveDisruptionCache records the cache's current size and staleness.
func (m *Metrics) ObserveDisruptionCache(size int, lastUpdated, now time.Time) {
	m.DisruptionCacheSize.Set(float64(size))
	if !lastUpdated.IsZero() {
		m.DisruptionCacheAge.Set(now.Sub(lastUpdated).Seconds())
	}
}

// Shutdown stops the DB stats collector and waits for it to exit. Safe to
// call multiple times.
func (m *Metrics) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

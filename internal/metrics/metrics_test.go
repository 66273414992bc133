package metrics

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	assert.NotNil(t, m.Registry)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.UpstreamRequestsTotal)
	assert.NotNil(t, m.DisruptionCacheSize)
	assert.NotNil(t, m.DBConnectionsOpen)
	assert.NotNil(t, m.DBWaitSecondsTotal)
}

func TestStartDBStatsCollector_NilDB(t *testing.T) {
	m := New()
	m.StartDBStatsCollector(nil, time.Second)
	assert.False(t, m.collectorStarted.Load())
}

func TestStartDBStatsCollector_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	m := New()

	m.StartDBStatsCollector(db, 100*time.Millisecond)
	assert.True(t, m.collectorStarted.Load())

	m.StartDBStatsCollector(db, 100*time.Millisecond)
	assert.True(t, m.collectorStarted.Load())

	m.Shutdown()
}

func TestStartDBStatsCollector_CollectsStats(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	m := New()
	m.StartDBStatsCollector(db, 50*time.Millisecond)

	time.Sleep(100 * time.Millisecond)

	assert.GreaterOrEqual(t, testutil.ToFloat64(m.DBConnectionsOpen), float64(0))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.DBConnectionsInUse), float64(0))

	m.Shutdown()
}

func TestObserveDisruptionCache(t *testing.T) {
	m := New()
	now := time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC)

	m.ObserveDisruptionCache(42, now.Add(-90*time.Second), now)
	assert.Equal(t, float64(42), testutil.ToFloat64(m.DisruptionCacheSize))
	assert.Equal(t, float64(90), testutil.ToFloat64(m.DisruptionCacheAge))

	// A zero lastUpdated leaves the age untouched.
	m.ObserveDisruptionCache(0, time.Time{}, now)
	assert.Equal(t, float64(90), testutil.ToFloat64(m.DisruptionCacheAge))
}

func TestShutdownWithoutStart(t *testing.T) {
	m := New()
	m.Shutdown() // must not panic
}

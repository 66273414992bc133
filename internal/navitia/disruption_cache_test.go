package navitia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"explorer.navitia.org/internal/metrics"
)

func TestDisruptionCacheInitialFetch(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"disruptions": [{"id": "d1"}, {"id": "d2"}]}`))
	})

	cache := NewDisruptionCache(c, time.Hour, nil)
	cache.Start(context.Background())
	defer cache.Shutdown()

	snapshot := cache.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "d1", snapshot[0].ID)
	assert.False(t, cache.LastUpdated().IsZero())
	assert.Equal(t, int32(1), calls.Load())
}

func TestDisruptionCacheSurvivesInitialFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	cache := NewDisruptionCache(c, time.Hour, nil)
	cache.Start(context.Background())
	defer cache.Shutdown()

	assert.Empty(t, cache.Snapshot())
	assert.True(t, cache.LastUpdated().IsZero())
}

func TestDisruptionCacheRefreshes(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"disruptions": [{"id": "d1"}]}`))
	}))
	defer srv.Close()
	c := NewClient(Config{BaseURL: srv.URL, Coverage: "sncf"})

	cache := NewDisruptionCache(c, 20*time.Millisecond, nil)
	cache.Start(context.Background())
	defer cache.Shutdown()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDisruptionCacheObserverFeedsGauges(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"disruptions": [{"id": "d1"}, {"id": "d2"}, {"id": "d3"}]}`))
	})

	m := metrics.New()
	defer m.Shutdown()

	cache := NewDisruptionCache(c, time.Hour, nil)
	cache.SetObserver(func(size int, lastUpdated time.Time) {
		m.ObserveDisruptionCache(size, lastUpdated, time.Now())
	})
	cache.Start(context.Background())
	defer cache.Shutdown()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.DisruptionCacheSize))
}

func TestDisruptionCacheShutdownWithoutStart(t *testing.T) {
	cache := NewDisruptionCache(nil, time.Minute, nil)
	cache.Shutdown() // must not block or panic
}

func TestDisruptionCacheShutdownIdempotent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"disruptions": []}`))
	})
	cache := NewDisruptionCache(c, time.Hour, nil)
	cache.Start(context.Background())
	cache.Shutdown()
	cache.Shutdown()
}

package navitia

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DisruptionCache keeps an in-memory snapshot of the coverage's active
// disruptions, refreshed in the background. Handlers merge this snapshot with
// the per-response disruption lists before matching, so boards stay annotated
// even when an upstream response omits its disruptions block.
type DisruptionCache struct {
	client  *Client
	logger  *slog.Logger
	refresh time.Duration

	mu          sync.RWMutex
	disruptions []Disruption
	lastUpdated time.Time

	observer func(size int, lastUpdated time.Time)

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
	started  bool
}

const disruptionFetchCount = 500

// NewDisruptionCache creates a cache around client. Start must be called to
// begin refreshing.
func NewDisruptionCache(client *Client, refresh time.Duration, logger *slog.Logger) *DisruptionCache {
	if logger == nil {
		logger = slog.Default()
	}
	if refresh <= 0 {
		refresh = 2 * time.Minute
	}
	return &DisruptionCache{
		client:  client,
		logger:  logger,
		refresh: refresh,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// SetObserver registers a callback invoked after every successful refresh
// with the new snapshot size and refresh time. Must be called before Start.
func (c *DisruptionCache) SetObserver(fn func(size int, lastUpdated time.Time)) {
	c.observer = fn
}

// Start performs an initial fetch and launches the refresh loop. The initial
// fetch failing is not fatal: the loop keeps retrying on its interval.
func (c *DisruptionCache) Start(ctx context.Context) {
	if err := c.refreshOnce(ctx); err != nil {
		c.logger.Error("initial disruption fetch failed", "error", err)
	}
	c.started = true
	go c.loop()
}

func (c *DisruptionCache) loop() {
	defer close(c.done)
	ticker := time.NewTicker(c.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), c.refresh)
			if err := c.refreshOnce(ctx); err != nil {
				c.logger.Error("disruption refresh failed", "error", err)
			}
			cancel()
		case <-c.stop:
			return
		}
	}
}

func (c *DisruptionCache) refreshOnce(ctx context.Context) error {
	resp, err := c.client.Disruptions(ctx, disruptionFetchCount)
	if err != nil {
		return err
	}

	now := time.Now()
	c.mu.Lock()
	c.disruptions = resp.Disruptions
	c.lastUpdated = now
	c.mu.Unlock()

	if c.observer != nil {
		c.observer(len(resp.Disruptions), now)
	}

	c.logger.Info("disruption cache refreshed", "count", len(resp.Disruptions))
	return nil
}

// Snapshot returns the cached disruptions. The returned slice is shared and
// must be treated as read-only, which is all the matcher needs.
func (c *DisruptionCache) Snapshot() []Disruption {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disruptions
}

// LastUpdated reports when the snapshot was last replaced; the zero time
// means no successful fetch yet.
func (c *DisruptionCache) LastUpdated() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdated
}

// Shutdown stops the refresh loop and waits for it to exit. A no-op when
// Start was never called.
func (c *DisruptionCache) Shutdown() {
	if !c.started {
		return
	}
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}

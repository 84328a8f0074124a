package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shruggr/glyphcache/models"
	"github.com/shruggr/glyphcache/source"
	"github.com/shruggr/glyphcache/stats"
)

const (
	// FreshnessWindow is how long an entry counts as fresh. An entry whose
	// age has reached the window is stale
	FreshnessWindow = 60 * time.Minute

	// BackgroundRefreshAge is the age past which a fresh entry triggers a
	// non-blocking refresh (half the freshness window)
	BackgroundRefreshAge = 30 * time.Minute

	// FetchAttempts is the total number of foreground fetch attempts
	FetchAttempts = 2

	// RetryDelay is the pause between fetch attempts
	RetryDelay = time.Second
)

// Config holds coordinator settings. Zero fields select the defaults above
type Config struct {
	SymbolURL string
	EmojiURL  string

	FreshnessWindow      time.Duration
	BackgroundRefreshAge time.Duration
	FetchAttempts        int
	RetryDelay           time.Duration
}

func (c *Config) applyDefaults() {
	if c.FreshnessWindow <= 0 {
		c.FreshnessWindow = FreshnessWindow
	}
	if c.BackgroundRefreshAge <= 0 {
		c.BackgroundRefreshAge = BackgroundRefreshAge
	}
	if c.FetchAttempts <= 0 {
		c.FetchAttempts = FetchAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = RetryDelay
	}
}

// Coordinator decides, per dataset kind, whether to serve from cache,
// fetch in the foreground, or refresh in the background. It is the only
// writer of cache entries
type Coordinator struct {
	store  *Store
	client *source.Client
	cfg    Config
	logger *slog.Logger

	// At most one background refresh runs at a time, across both kinds
	bgRunning atomic.Bool
	bgWait    sync.WaitGroup

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewCoordinator creates the cache coordinator
func NewCoordinator(store *Store, client *source.Client, cfg Config, logger *slog.Logger) *Coordinator {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	return &Coordinator{
		store:  store,
		client: client,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Coordinator) urlFor(kind models.Kind) string {
	if kind == models.KindEmoji {
		return c.cfg.EmojiURL
	}
	return c.cfg.SymbolURL
}

// Resolve returns the best available snapshot for the kind
//
// Fresh entries are served directly, scheduling a background refresh once
// past the midpoint of the freshness window. Stale or missing entries
// trigger a foreground refresh; if every attempt fails the previous
// snapshot is served even when expired, and with no previous snapshot the
// bundled fallback is returned without being written to the cache.
// Resolve never surfaces fetch errors to the caller
func (c *Coordinator) Resolve(ctx context.Context, kind models.Kind) *models.DatasetSnapshot {
	entry := c.store.Read(ctx, kind)
	now := c.now()

	if entry != nil && entry.Snapshot != nil {
		age := now.Sub(entry.Snapshot.FetchedAt)
		if age < c.cfg.FreshnessWindow {
			c.logger.Debug("serving fresh cache entry",
				"kind", kind,
				"ageMinutes", int(age.Minutes()),
				"version", entry.Snapshot.Version)

			if age > c.cfg.BackgroundRefreshAge && c.bgRunning.CompareAndSwap(false, true) {
				c.logger.Info("scheduling background refresh", "kind", kind)
				c.bgWait.Add(1)
				go c.backgroundRefresh(kind)
			}
			return entry.Snapshot
		}
	}

	snapshot, err := c.refresh(ctx, kind, entry)
	if err == nil {
		return snapshot
	}

	if entry != nil && entry.Snapshot != nil {
		// Serve stale; the entry stays expired so the next call re-attempts
		c.logger.Warn("all fetch attempts failed, serving expired cache entry",
			"kind", kind, "error", err)
		return entry.Snapshot
	}

	c.logger.Warn("all fetch attempts failed with no cache, serving bundled fallback",
		"kind", kind, "error", err)
	return FallbackSnapshot(kind)
}

// refresh fetches the kind with retries and applies the payload to the cache
func (c *Coordinator) refresh(ctx context.Context, kind models.Kind, prior *Entry) (*models.DatasetSnapshot, error) {
	var lastErr error

	for attempt := 1; attempt <= c.cfg.FetchAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.cfg.RetryDelay); err != nil {
				return nil, err
			}
		}

		payload, err := c.client.FetchDataset(ctx, kind, c.urlFor(kind))
		if err != nil {
			c.logger.Warn("fetch attempt failed",
				"kind", kind, "attempt", attempt, "error", err)
			lastErr = err
			continue
		}

		return c.applyPayload(ctx, kind, prior, payload), nil
	}

	return nil, lastErr
}

// applyPayload merges a fetched payload into the cache
// Equal versions keep the existing snapshot and only bump its timestamp,
// avoiding redundant stats recomputation; anything else builds a new
// snapshot and fully replaces the entry
func (c *Coordinator) applyPayload(ctx context.Context, kind models.Kind, prior *Entry, payload *models.DatasetPayload) *models.DatasetSnapshot {
	now := c.now()

	if prior != nil && prior.Snapshot != nil && prior.UpstreamVersion == payload.Version {
		c.logger.Info("version unchanged, touching cache timestamp",
			"kind", kind, "version", payload.Version)
		// Never mutate the shared snapshot in place: concurrent readers
		// hold the same pointer. Replace the whole entry with a copy
		// carrying the bumped timestamp
		touched := *prior.Snapshot
		touched.FetchedAt = now
		c.store.Write(ctx, kind, &Entry{
			Snapshot:        &touched,
			UpstreamVersion: prior.UpstreamVersion,
		})
		return &touched
	}

	priorVersion := ""
	if prior != nil {
		priorVersion = prior.UpstreamVersion
	}
	c.logger.Info("processing new dataset version",
		"kind", kind,
		"oldVersion", priorVersion,
		"newVersion", payload.Version,
		"records", len(payload.Records))

	snapshot := &models.DatasetSnapshot{
		Version: payload.Version,
		Records: payload.Records,
		Stats: models.DatasetStats{
			TotalCount:    len(payload.Records),
			CategoryStats: stats.ComputeCategoryStats(payload.Records),
		},
		FetchedAt: now,
	}

	c.store.Write(ctx, kind, &Entry{
		Snapshot:        snapshot,
		UpstreamVersion: payload.Version,
	})
	return snapshot
}

// backgroundRefresh runs the refresh path detached from the caller
func (c *Coordinator) backgroundRefresh(kind models.Kind) {
	defer c.bgWait.Done()
	defer c.bgRunning.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	entry := c.store.Read(ctx, kind)
	if _, err := c.refresh(ctx, kind, entry); err != nil {
		c.logger.Warn("background refresh failed", "kind", kind, "error", err)
		return
	}
	c.logger.Info("background refresh complete", "kind", kind)
}

// Preload warms both datasets concurrently before any consumer asks for
// them. Failure of one kind never aborts the other, and repeated calls are
// idempotent: a second call finds fresh entries and does no network work
func (c *Coordinator) Preload(ctx context.Context) {
	var wg sync.WaitGroup
	for _, kind := range models.Kinds {
		wg.Add(1)
		go func(kind models.Kind) {
			defer wg.Done()
			c.Resolve(ctx, kind)
		}(kind)
	}
	wg.Wait()
}

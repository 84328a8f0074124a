package cache

import (
	"context"
	"time"

	"github.com/shruggr/glyphcache/models"
)

// KindStatus describes the cached state of one dataset kind
type KindStatus struct {
	HasData bool   `json:"hasData"`
	Version string `json:"version"`
	Count   int    `json:"count"`
}

// Status is a read-only diagnostic view of the cache
type Status struct {
	IsValid           bool       `json:"isValid"`
	AgeMinutes        int        `json:"ageMinutes"`
	Timestamp         time.Time  `json:"timestamp"`
	BackgroundRefresh bool       `json:"backgroundRefresh"`
	SymbolCache       KindStatus `json:"symbolCache"`
	EmojiCache        KindStatus `json:"emojiCache"`
}

// GetSymbolData returns the symbol dataset snapshot
func (c *Coordinator) GetSymbolData(ctx context.Context) *models.DatasetSnapshot {
	return c.Resolve(ctx, models.KindSymbol)
}

// GetEmojiData returns the emoji dataset snapshot
func (c *Coordinator) GetEmojiData(ctx context.Context) *models.DatasetSnapshot {
	return c.Resolve(ctx, models.KindEmoji)
}

// PreloadAllData warms both datasets; see Preload
func (c *Coordinator) PreloadAllData(ctx context.Context) {
	c.Preload(ctx)
}

// GetCacheStatus reports cache freshness and per-kind contents without
// mutating any state or touching the network
func (c *Coordinator) GetCacheStatus(ctx context.Context) Status {
	status := Status{
		BackgroundRefresh: c.bgRunning.Load(),
	}

	var newest time.Time
	for _, kind := range models.Kinds {
		entry := c.store.Read(ctx, kind)

		var ks KindStatus
		if entry != nil && entry.Snapshot != nil {
			ks = KindStatus{
				HasData: true,
				Version: entry.Snapshot.Version,
				Count:   len(entry.Snapshot.Records),
			}
			if entry.Snapshot.FetchedAt.After(newest) {
				newest = entry.Snapshot.FetchedAt
			}
		}

		switch kind {
		case models.KindEmoji:
			status.EmojiCache = ks
		default:
			status.SymbolCache = ks
		}
	}

	if !newest.IsZero() {
		age := c.now().Sub(newest)
		status.Timestamp = newest
		status.AgeMinutes = int(age.Minutes())
		status.IsValid = age < c.cfg.FreshnessWindow
	}

	return status
}

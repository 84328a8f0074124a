package cache

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shruggr/glyphcache/kvstore"
	"github.com/shruggr/glyphcache/models"
)

// MemoryTTL is how long a memory-tier copy is trusted before the durable
// tier is re-read
const MemoryTTL = 5 * time.Minute

const keyPrefix = "glyphcache:"

// memorySlot is one memory-tier copy with its promotion time
type memorySlot struct {
	entry    *Entry
	loadedAt time.Time
}

// Store is the two-level cache persistence layer: an in-process memory
// snapshot in front of a durable key-value store. The memory tier avoids
// deserializing the durable tier on every read; the durable tier survives
// process restarts.
//
// Durable writes are best-effort: their failures are logged, never
// propagated. Pass a nil durable store for a memory-only cache.
type Store struct {
	durable kvstore.KVStore
	mem     *lru.Cache[models.Kind, memorySlot]
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore creates a cache store backed by the given durable KV store
func NewStore(durable kvstore.KVStore, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	mem, err := lru.New[models.Kind, memorySlot](len(models.Kinds))
	if err != nil {
		return nil, err
	}

	return &Store{
		durable: durable,
		mem:     mem,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Read returns the current entry for the kind, or nil if absent
// A memory-tier copy younger than MemoryTTL is returned directly;
// otherwise the durable tier is re-read and promoted to memory
func (s *Store) Read(ctx context.Context, kind models.Kind) *Entry {
	now := s.now()

	if slot, ok := s.mem.Get(kind); ok {
		if s.durable == nil || now.Sub(slot.loadedAt) < MemoryTTL {
			return slot.entry
		}
	}

	if s.durable == nil {
		return nil
	}

	data, err := s.durable.Get(ctx, keyPrefix+string(kind))
	if err != nil {
		s.logger.Warn("failed to read cache entry, treating as miss",
			"kind", kind, "error", err)
		return nil
	}
	if data == nil {
		s.mem.Remove(kind)
		return nil
	}

	entry, err := decodeEntry(data)
	if err != nil {
		// Incompatible or corrupt entry; a fresh fetch will replace it
		s.logger.Warn("discarding unusable cache entry",
			"kind", kind, "error", err)
		s.mem.Remove(kind)
		return nil
	}

	s.mem.Add(kind, memorySlot{entry: entry, loadedAt: now})
	return entry
}

// Write replaces the entry for the kind in both tiers
// The memory write is synchronous; the durable write is best-effort
func (s *Store) Write(ctx context.Context, kind models.Kind, entry *Entry) {
	s.mem.Add(kind, memorySlot{entry: entry, loadedAt: s.now()})

	if s.durable == nil {
		return
	}

	data, err := encodeEntry(entry)
	if err != nil {
		s.logger.Warn("failed to encode cache entry", "kind", kind, "error", err)
		return
	}

	if err := s.durable.Put(ctx, keyPrefix+string(kind), data); err != nil {
		s.logger.Warn("failed to persist cache entry", "kind", kind, "error", err)
	}
}

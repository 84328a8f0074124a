package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/fatih/color"

	"github.com/shruggr/glyphcache/cache"
	"github.com/shruggr/glyphcache/config"
	"github.com/shruggr/glyphcache/kvstore"
	"github.com/shruggr/glyphcache/kvstore/badger"
	"github.com/shruggr/glyphcache/kvstore/memory"
	"github.com/shruggr/glyphcache/kvstore/sqlite"
	"github.com/shruggr/glyphcache/source"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
)

// cachestat inspects the local cache and optionally refreshes it:
// it reports per-dataset freshness, version and record counts
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	storageType := flag.String("storage", cfg.Storage, "Storage type: memory, badger or sqlite")
	dataDir := flag.String("data-dir", cfg.DataDir, "Data directory for the durable cache tier")
	refresh := flag.Bool("refresh", false, "Resolve both datasets before reporting")
	flag.Parse()

	// Quiet logger; this tool reports through its own output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var durable kvstore.KVStore
	switch *storageType {
	case "memory":
		durable = memory.New()
	case "badger":
		durable, err = badger.New(&badger.Config{DataDir: *dataDir})
		if err != nil {
			log.Fatalf("Failed to open BadgerDB: %v", err)
		}
	case "sqlite":
		durable, err = sqlite.New(&sqlite.Config{DBPath: *dataDir + "/glyphcache.db"})
		if err != nil {
			log.Fatalf("Failed to open SQLite: %v", err)
		}
	default:
		log.Fatalf("Unknown storage type: %s", *storageType)
	}
	defer durable.Close()

	store, err := cache.NewStore(durable, logger)
	if err != nil {
		log.Fatalf("Failed to create cache store: %v", err)
	}

	coordinator := cache.NewCoordinator(store, source.NewClient(cfg.FetchTimeout), cache.Config{
		SymbolURL: cfg.SymbolDataURL,
		EmojiURL:  cfg.EmojiDataURL,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *refresh {
		yellow.Println("Refreshing both datasets...")
		coordinator.PreloadAllData(ctx)
	}

	status := coordinator.GetCacheStatus(ctx)

	if status.IsValid {
		green.Printf("Cache valid, %d minutes old\n", status.AgeMinutes)
	} else if status.SymbolCache.HasData || status.EmojiCache.HasData {
		yellow.Printf("Cache stale, %d minutes old\n", status.AgeMinutes)
	} else {
		red.Println("Cache empty")
	}

	printKind("symbols", status.SymbolCache)
	printKind("emoji", status.EmojiCache)
}

func printKind(name string, ks cache.KindStatus) {
	if !ks.HasData {
		red.Printf("  %-8s no data\n", name)
		return
	}
	green.Printf("  %-8s version %s, %d records\n", name, ks.Version, ks.Count)
}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shruggr/glyphcache/cache"
	"github.com/shruggr/glyphcache/config"
	"github.com/shruggr/glyphcache/kvstore"
	"github.com/shruggr/glyphcache/kvstore/badger"
	"github.com/shruggr/glyphcache/kvstore/memory"
	"github.com/shruggr/glyphcache/kvstore/sqlite"
	"github.com/shruggr/glyphcache/server"
	"github.com/shruggr/glyphcache/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags override environment config
	storageType := flag.String("storage", cfg.Storage, "Storage type: memory, badger or sqlite")
	dataDir := flag.String("data-dir", cfg.DataDir, "Data directory for the durable cache tier")
	listen := flag.String("listen", cfg.Listen, "HTTP listen address")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	// Set up slog with the specified level
	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	log.Println("Starting glyphcache daemon...")

	// Initialize the durable tier based on type
	var durable kvstore.KVStore

	switch *storageType {
	case "memory":
		log.Println("Using in-memory storage; cache will not survive restarts")
		durable = memory.New()
	case "badger":
		log.Printf("Using BadgerDB storage at %s", *dataDir)
		durable, err = badger.New(&badger.Config{
			DataDir: *dataDir,
		})
		if err != nil {
			log.Fatalf("Failed to initialize BadgerDB: %v", err)
		}
	case "sqlite":
		dbPath := *dataDir + "/glyphcache.db"
		log.Printf("Using SQLite storage at %s", dbPath)
		if err := os.MkdirAll(*dataDir, 0o755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		durable, err = sqlite.New(&sqlite.Config{DBPath: dbPath})
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
	default:
		log.Fatalf("Unknown storage type: %s (use 'memory', 'badger' or 'sqlite')", *storageType)
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

	// Warm both datasets before serving
	preloadCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	coordinator.PreloadAllData(preloadCtx)
	cancel()

	status := coordinator.GetCacheStatus(context.Background())
	logger.Info("preload complete",
		"symbolCount", status.SymbolCache.Count,
		"symbolVersion", status.SymbolCache.Version,
		"emojiCount", status.EmojiCache.Count,
		"emojiVersion", status.EmojiCache.Version)

	httpServer := &http.Server{
		Addr:    *listen,
		Handler: server.NewRouter(coordinator, logger),
	}

	go func() {
		logger.Info("http server listening", "addr", *listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", "error", err)
	}
}

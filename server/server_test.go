package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shruggr/glyphcache/cache"
	"github.com/shruggr/glyphcache/kvstore/memory"
	"github.com/shruggr/glyphcache/models"
	"github.com/shruggr/glyphcache/source"
)

func testRouter(t *testing.T, upstreamBody string) http.Handler {
	t.Helper()

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamBody))
	}))
	t.Cleanup(up.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := cache.NewStore(memory.New(), logger)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	coord := cache.NewCoordinator(store, source.NewClient(0), cache.Config{
		SymbolURL: up.URL + "/symbols",
		EmojiURL:  up.URL + "/emoji",
	}, logger)

	return NewRouter(coord, logger)
}

func TestSymbolsRoute(t *testing.T) {
	router := testRouter(t, `{
		"version": "v1",
		"symbols": [
			{"symbol": "♫", "name": "note", "category": ["music"]},
			{"symbol": "‰", "name": "per mille", "category": ["math"]}
		]
	}`)

	req := httptest.NewRequest(http.MethodGet, "/api/symbols", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var snapshot models.DatasetSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if snapshot.Version != "v1" {
		t.Errorf("Expected version v1, got %q", snapshot.Version)
	}
	if snapshot.Stats.TotalCount != 2 {
		t.Errorf("Expected 2 records, got %d", snapshot.Stats.TotalCount)
	}
}

func TestCacheStatusRoute(t *testing.T) {
	router := testRouter(t, `{"version": "v1", "symbols": []}`)

	req := httptest.NewRequest(http.MethodGet, "/api/cache-status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var status cache.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("Failed to decode status: %v", err)
	}
	if status.SymbolCache.HasData {
		t.Error("Status reported data before any resolve")
	}
}

func TestCategoriesRoute(t *testing.T) {
	router := testRouter(t, `{
		"version": "v1",
		"symbols": [
			{"symbol": "♫", "name": "note", "category": ["music"]},
			{"symbol": "♬", "name": "notes", "category": ["music"]},
			{"symbol": "∑", "name": "sum", "category": ["math"]}
		]
	}`)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var stats models.DatasetStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if len(stats.CategoryStats) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(stats.CategoryStats))
	}
	if stats.CategoryStats[0].ID != "music" || stats.CategoryStats[0].Count != 2 {
		t.Errorf("Expected music:2 first, got %+v", stats.CategoryStats[0])
	}

	// Filtered by category id
	req = httptest.NewRequest(http.MethodGet, "/api/categories?id=math", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var filtered struct {
		ID      string                `json:"id"`
		Count   int                   `json:"count"`
		Records []models.SymbolRecord `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("Failed to decode filtered response: %v", err)
	}
	if filtered.Count != 1 || filtered.Records[0].Symbol != "∑" {
		t.Errorf("Unexpected filtered result: %+v", filtered)
	}
}

func TestWriteErrorKeepsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Type", "application/json")

	writeError(rec, http.StatusServiceUnavailable, "dataset unavailable")

	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json content type, got %q", got)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Error body is not JSON: %v", err)
	}
	if body["error"] != "dataset unavailable" {
		t.Errorf("Unexpected error body: %+v", body)
	}
}

func TestEmojiRouteServesFallbackOnFailure(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(up.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := cache.NewStore(memory.New(), logger)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	coord := cache.NewCoordinator(store, source.NewClient(0), cache.Config{
		SymbolURL: up.URL,
		EmojiURL:  up.URL,
		// keep the test fast on the doomed retry
		RetryDelay: time.Millisecond,
	}, logger)
	router := NewRouter(coord, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/emoji", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected fallback with 200, got %d", rec.Code)
	}

	var snapshot models.DatasetSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if snapshot.Version != "emoji-fallback-1.0.0" {
		t.Errorf("Expected emoji fallback, got %q", snapshot.Version)
	}
}

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/shruggr/glyphcache/cache"
	"github.com/shruggr/glyphcache/models"
)

// DataHandler serves the cached datasets and cache diagnostics over HTTP
type DataHandler struct {
	Coordinator *cache.Coordinator
	Logger      *slog.Logger
}

// NewRouter builds the API router
func NewRouter(coordinator *cache.Coordinator, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &DataHandler{Coordinator: coordinator, Logger: logger}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	r.Get("/health", h.Health)
	r.Get("/api/symbols", h.Symbols)
	r.Get("/api/emoji", h.Emoji)
	r.Get("/api/categories", h.Categories)
	r.Get("/api/cache-status", h.CacheStatus)

	return r
}

func (h *DataHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Symbols returns the symbol dataset snapshot
// The coordinator degrades to stale or bundled fallback data internally,
// so this always has something to serve
func (h *DataHandler) Symbols(w http.ResponseWriter, r *http.Request) {
	h.serveDataset(w, r, models.KindSymbol)
}

// Emoji returns the emoji dataset snapshot
func (h *DataHandler) Emoji(w http.ResponseWriter, r *http.Request) {
	h.serveDataset(w, r, models.KindEmoji)
}

func (h *DataHandler) serveDataset(w http.ResponseWriter, r *http.Request, kind models.Kind) {
	snapshot := h.Coordinator.Resolve(r.Context(), kind)

	w.Header().Set("Content-Type", "application/json")
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset unavailable")
		return
	}
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		h.Logger.Warn("failed to encode dataset response", "kind", kind, "error", err)
	}
}

// writeError emits a JSON error body without clobbering the Content-Type
// header the handler already set
func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Categories returns the derived category stats for the symbol dataset,
// optionally filtered records for one category via ?id=
func (h *DataHandler) Categories(w http.ResponseWriter, r *http.Request) {
	snapshot := h.Coordinator.Resolve(r.Context(), models.KindSymbol)
	w.Header().Set("Content-Type", "application/json")
	if snapshot == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset unavailable")
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		records := models.RecordsByCategory(snapshot.Records, id)
		json.NewEncoder(w).Encode(map[string]any{
			"id":      id,
			"count":   len(records),
			"records": records,
		})
		return
	}

	json.NewEncoder(w).Encode(snapshot.Stats)
}

// CacheStatus reports cache freshness diagnostics; it never mutates cache
// state or touches the network
func (h *DataHandler) CacheStatus(w http.ResponseWriter, r *http.Request) {
	status := h.Coordinator.GetCacheStatus(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

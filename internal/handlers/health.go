// internal/handlers/health.go
package handlers

import (
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/ammerola/stockdesk/internal/adapters/memstore"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store     *memstore.Store
	version   string
	env       string
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store *memstore.Store, version, environment string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:     store,
		version:   version,
		env:       environment,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}
}

// HealthStatus represents the health status of the stub server
type HealthStatus struct {
	Status      string         `json:"status"`
	Version     string         `json:"version"`
	Environment string         `json:"environment"`
	Uptime      string         `json:"uptime"`
	Timestamp   time.Time      `json:"timestamp"`
	Store       map[string]int `json:"store"`
	System      SystemInfo     `json:"system"`
}

// SystemInfo represents system-level information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respondJSON(w, h.logger, http.StatusOK, HealthStatus{
		Status:      "healthy",
		Version:     h.version,
		Environment: h.env,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now().UTC(),
		Store:       h.store.Stats(),
		System: SystemInfo{
			GoVersion:     runtime.Version(),
			NumGoroutines: runtime.NumGoroutine(),
			MemoryAllocMB: mem.Alloc / 1024 / 1024,
		},
	})
}

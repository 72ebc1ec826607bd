// Package health provides HTTP health check endpoints for liveness and
// database connectivity probes.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talenthub/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Pinger checks a dependency's reachability.
type Pinger interface {
	Health(ctx context.Context) error
}

// Handler provides health check endpoints.
type Handler struct {
	startTime time.Time
	db        Pinger
}

// New creates a new health handler. db may be nil when the service runs
// without a configured database.
func New(db Pinger) *Handler {
	return &Handler{
		startTime: time.Now(),
		db:        db,
	}
}

// Register mounts health check routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/database", h.HandleDatabase)
}

// StatusResponse is the response for the general health status endpoint.
type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

// HandleStatus returns general health status with version and uptime information.
// This endpoint should always return 200 OK if the service is running.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "healthy",
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

// DatabaseResponse is the response for the database connectivity probe.
type DatabaseResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// HandleDatabase checks database connectivity and returns 503 when unreachable.
func (h *Handler) HandleDatabase(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC().Format(time.RFC3339)
	if h.db == nil {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, DatabaseResponse{
			Status:    "unhealthy",
			Database:  "not_configured",
			Timestamp: now,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, DatabaseResponse{
			Status:    "unhealthy",
			Database:  "disconnected",
			Timestamp: now,
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, DatabaseResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: now,
	})
}

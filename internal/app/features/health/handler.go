// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/npoconnect/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger is a dependency whose connectivity the health check verifies.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Store      Pinger
	Records    int
	Generation bool
	Log        *zap.Logger
}

// NewHandler constructs a health Handler.
//
//   - store: the task store backend
//   - records: number of organizations in the directory
//   - generation: whether the AI tools are configured
func NewHandler(store Pinger, records int, generation bool, logger *zap.Logger) *Handler {
	return &Handler{
		Store:      store,
		Records:    records,
		Generation: generation,
		Log:        logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status        string `json:"status"`
	Store         string `json:"store"`
	Organizations int    `json:"organizations"`
	Generation    string `json:"generation"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "store":"connected", "organizations":11, "generation":"configured" }
//
// On store failure: 503 and
//
//	{ "status":"error", "store":"disconnected", "message":"Task store unavailable", "error":"…"}
//
// Missing AI credentials do not fail the check; generation reports "disabled".
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:        "ok",
		Store:         "connected",
		Organizations: h.Records,
		Generation:    "configured",
	}
	if !h.Generation {
		resp.Generation = "disabled"
	}

	if err := h.Store.Ping(ctx); err != nil {
		h.Log.Error("health-check: task store ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Store = "disconnected"
		resp.Message = "Task store unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}

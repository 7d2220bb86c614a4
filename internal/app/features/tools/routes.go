// internal/app/features/tools/routes.go
package tools

import (
	"net/http"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the tools under "/tools". Generation endpoints share limiter;
// a nil limiter disables rate limiting.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeCatalogue)
	r.Post("/export", h.HandleExport)

	r.Group(func(gr chi.Router) {
		gr.Use(ratelimit.Middleware(limiter, tooManyRequests))
		gr.Post("/proposal", h.HandleProposal)
		gr.Post("/monthly-report", h.HandleMonthlyReport)
		gr.Post("/donor-match", h.HandleDonorMatch)
	})

	return r
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	uierrors.WriteError(w, http.StatusTooManyRequests, "Too many requests. Please wait a minute before trying again.")
}

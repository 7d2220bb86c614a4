// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the directory under its base path (typically "/directory").
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/facets", h.ServeFacets)
	r.Get("/{id}", h.ServeView)
	r.Get("/{id}/donate", h.ServeDonate)

	return r
}

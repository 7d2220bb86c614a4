// internal/app/features/organizations/list.go
package organizations

import (
	"net/http"

	uierrors "github.com/dalemusser/npoconnect/internal/app/features/errors"
	"github.com/dalemusser/npoconnect/internal/app/system/directory"
	"github.com/dalemusser/npoconnect/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ServeList returns one page of organizations matching the query filters.
//
// The name filter is applied as given; clients debounce keystrokes before
// issuing the request.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filters := directory.FilterState{
		Name:   query.Search(r, "name"),
		City:   query.Get(r, "city"),
		Sector: query.Get(r, "sector"),
		Year:   query.Get(r, "year"),
	}
	page := paging.ParsePage(r)
	mode := directory.ParseViewMode(query.Get(r, "view"))

	view := directory.BuildView(h.Orgs.All(), filters, page, h.PageSize, mode)

	h.Log.Debug("directory query",
		zap.String("name", filters.Name),
		zap.String("city", filters.City),
		zap.String("sector", filters.Sector),
		zap.String("year", filters.Year),
		zap.Int("page", page),
		zap.Int("total", view.Total),
	)

	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		View:   view,
		Facets: h.Orgs.Facets(),
	})
}

// ServeFacets returns the city, sector and year choices.
func (h *Handler) ServeFacets(w http.ResponseWriter, r *http.Request) {
	uierrors.WriteJSON(w, http.StatusOK, h.Orgs.Facets())
}

// internal/app/system/directory/view.go
package directory

import (
	"fmt"
	"strings"

	"github.com/dalemusser/npoconnect/internal/app/system/paging"
	"github.com/dalemusser/npoconnect/internal/domain/models"
)

// ViewMode selects how a page of results is presented.
type ViewMode string

const (
	ViewCard  ViewMode = "card"
	ViewTable ViewMode = "table"
)

// ParseViewMode maps s to a ViewMode, falling back to ViewCard.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewTable:
		return ViewTable
	default:
		return ViewCard
	}
}

// View is one rendered page of the directory.
type View struct {
	Filters    FilterState           `json:"filters"`
	Items      []models.Organization `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
	Pages      []int                 `json:"pages"`
	Mode       ViewMode              `json:"view"`
	Range      paging.Range          `json:"range"`
	Summary    string                `json:"summary"`
}

// Empty reports whether the page has nothing to show.
func (v View) Empty() bool { return len(v.Items) == 0 }

// BuildView runs the query and slices out the requested page.
func BuildView(records []models.Organization, filters FilterState, page, pageSize int, mode ViewMode) View {
	matches := Query(records, filters)
	items, totalPages := paging.Paginate(matches, page, pageSize)

	v := View{
		Filters:    filters,
		Items:      items,
		Total:      len(matches),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Mode:       mode,
		Range:      paging.ComputeRange(page, pageSize, len(items), totalPages),
		Summary:    Summarize(len(items), len(matches)),
	}
	// Controls are only shown when there is more than one page.
	if totalPages > 1 {
		v.Pages = paging.Pages(totalPages)
	}
	return v
}

// Summarize renders the "Showing X of Y results" line.
func Summarize(shown, total int) string {
	suffix := "s"
	if total == 1 {
		suffix = ""
	}
	return fmt.Sprintf("Showing %d of %d result%s", shown, total, suffix)
}

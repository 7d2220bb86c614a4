// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of organizations shown per directory page.
const PageSize = 6

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TotalPages returns ceil(total/pageSize), or 0 when there is nothing to show.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate slices items into the requested 1-based page.
//
// It never panics: a page outside 1..totalPages yields an empty slice rather
// than being clamped to the last valid page. Callers are expected to reset
// page to 1 whenever the upstream result set changes.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	total := TotalPages(len(items), pageSize)
	if page < 1 || page > total {
		return []T{}, total
	}
	lo := (page - 1) * pageSize
	hi := lo + pageSize
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi], total
}

// Range holds computed display range values for a paginated list.
type Range struct {
	Start    int `json:"start"`    // 1-based start index (0 if no results)
	End      int `json:"end"`      // 1-based end index (0 if no results)
	PrevPage int `json:"prevPage"` // page number for the previous link (0 if none)
	NextPage int `json:"nextPage"` // page number for the next link (0 if none)
}

// ComputeRange calculates display range values for the given page.
func ComputeRange(page, pageSize, shown, totalPages int) Range {
	if shown == 0 {
		return Range{}
	}

	start := (page-1)*pageSize + 1
	rng := Range{
		Start: start,
		End:   start + shown - 1,
	}
	if page > 1 {
		rng.PrevPage = page - 1
	}
	if page < totalPages {
		rng.NextPage = page + 1
	}
	return rng
}

// Pages lists the page numbers 1..total for pagination controls.
func Pages(total int) []int {
	out := make([]int, 0, total)
	for i := 1; i <= total; i++ {
		out = append(out, i)
	}
	return out
}

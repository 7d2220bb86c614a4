// internal/app/system/directory/query.go
package directory

import (
	"strconv"
	"strings"

	"github.com/dalemusser/npoconnect/internal/domain/models"
)

// FilterState is the set of active directory filters. An empty field places
// no constraint on the result.
type FilterState struct {
	Name   string `json:"name"`
	City   string `json:"city"`
	Sector string `json:"sector"`
	Year   string `json:"year"`
}

// IsZero reports whether no filter is active.
func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

// Matches reports whether o satisfies every active filter.
//
//   - name: case-insensitive substring of o.Name
//   - city, sector: exact match
//   - year: the registration year, compared as text
func (f FilterState) Matches(o models.Organization) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(o.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.City != "" && o.City != f.City {
		return false
	}
	if f.Sector != "" && o.Sector != f.Sector {
		return false
	}
	if f.Year != "" {
		y, ok := o.RegistrationYear()
		if !ok || strconv.Itoa(y) != f.Year {
			return false
		}
	}
	return true
}

// Query returns the records matching filters, preserving dataset order.
// No match yields an empty, non-nil slice.
//
// Callers pass the debounced name in filters.Name, not the raw keystroke
// value.
func Query(records []models.Organization, filters FilterState) []models.Organization {
	out := make([]models.Organization, 0, len(records))
	for _, o := range records {
		if filters.Matches(o) {
			out = append(out, o)
		}
	}
	return out
}

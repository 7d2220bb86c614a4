// internal/app/system/directory/facets.go
package directory

import (
	"slices"

	"github.com/dalemusser/npoconnect/internal/domain/models"
)

// FacetSets holds the distinct values offered by the filter drop-downs.
// Strings are sorted ascending; years descending.
type FacetSets struct {
	Cities  []string `json:"cities"`
	Sectors []string `json:"sectors"`
	Years   []int    `json:"years"`
}

// Index derives the facet sets from records in a single pass.
// Records with an unparsable registration date contribute no year; empty
// city or sector values are not offered as choices.
func Index(records []models.Organization) FacetSets {
	cities := make(map[string]struct{})
	sectors := make(map[string]struct{})
	years := make(map[int]struct{})

	for _, o := range records {
		if o.City != "" {
			cities[o.City] = struct{}{}
		}
		if o.Sector != "" {
			sectors[o.Sector] = struct{}{}
		}
		if y, ok := o.RegistrationYear(); ok {
			years[y] = struct{}{}
		}
	}

	fs := FacetSets{
		Cities:  sortedKeys(cities),
		Sectors: sortedKeys(sectors),
		Years:   make([]int, 0, len(years)),
	}
	for y := range years {
		fs.Years = append(fs.Years, y)
	}
	slices.Sort(fs.Years)
	slices.Reverse(fs.Years)
	return fs
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

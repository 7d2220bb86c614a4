// internal/app/dataset/dataset.go
package dataset

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/dalemusser/npoconnect/internal/app/system/directory"
	"github.com/dalemusser/npoconnect/internal/domain/models"
)

//go:embed npos.yaml
var staticFS embed.FS

const embeddedFile = "npos.yaml"

var (
	ErrEmpty       = errors.New("dataset contains no organizations")
	ErrDuplicateID = errors.New("duplicate organization id")
)

// Provider serves the organization list. The list is fixed at load time.
type Provider struct {
	records []models.Organization
	byID    map[int]int
	facets  directory.FacetSets
}

// Load reads the dataset from path, or the embedded seed data when path is
// empty.
func Load(path string) (*Provider, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = staticFS.ReadFile(embeddedFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Parse(data)
}

// Parse builds a Provider from YAML. Records keep their file order.
func Parse(data []byte) (*Provider, error) {
	var records []models.Organization
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return New(records)
}

// New wraps records in a Provider, rejecting duplicate ids.
func New(records []models.Organization) (*Provider, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	p := &Provider{
		records: slices.Clone(records),
		byID:    make(map[int]int, len(records)),
	}
	for i, o := range p.records {
		if _, dup := p.byID[o.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, o.ID)
		}
		p.byID[o.ID] = i
	}
	p.facets = directory.Index(p.records)
	return p, nil
}

// All returns every organization in dataset order. The returned slice is the
// caller's to modify.
func (p *Provider) All() []models.Organization {
	return slices.Clone(p.records)
}

// Len returns the number of organizations.
func (p *Provider) Len() int { return len(p.records) }

// ByID looks up a single organization.
func (p *Provider) ByID(id int) (models.Organization, bool) {
	i, ok := p.byID[id]
	if !ok {
		return models.Organization{}, false
	}
	return p.records[i], true
}

// Facets returns the filter choices derived at load time.
func (p *Provider) Facets() directory.FacetSets {
	return p.facets
}

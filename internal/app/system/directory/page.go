// internal/app/system/directory/page.go
package directory

import (
	"sync"
	"time"

	"github.com/dalemusser/npoconnect/internal/app/system/debounce"
	"github.com/dalemusser/npoconnect/internal/app/system/paging"
	"github.com/dalemusser/npoconnect/internal/domain/models"
)

// DefaultNameDelay is the quiet period applied to name search input.
const DefaultNameDelay = 300 * time.Millisecond

// Page is the state of one directory session: raw filter input, the
// debounced name actually queried, the current page and the view mode.
//
// Any filter change resets the current page to 1, and so does publication
// of a new debounced name.
type Page struct {
	records  []models.Organization
	pageSize int
	onChange func(View)
	name     *debounce.Debouncer[string]

	mu          sync.Mutex
	filters     FilterState
	appliedName string
	page        int
	mode        ViewMode
}

type pageConfig struct {
	pageSize int
	delay    time.Duration
	clock    debounce.Clock
	onChange func(View)
}

// PageOption configures a Page.
type PageOption func(*pageConfig)

// WithPageSize overrides paging.PageSize.
func WithPageSize(n int) PageOption {
	return func(c *pageConfig) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithNameDelay overrides DefaultNameDelay.
func WithNameDelay(d time.Duration) PageOption {
	return func(c *pageConfig) { c.delay = d }
}

// WithClock injects the clock used by the name debouncer.
func WithClock(clock debounce.Clock) PageOption {
	return func(c *pageConfig) { c.clock = clock }
}

// WithOnChange registers a callback invoked with the new view whenever a
// debounced name is published.
func WithOnChange(fn func(View)) PageOption {
	return func(c *pageConfig) { c.onChange = fn }
}

// NewPage returns a Page over records showing the first page in card mode.
func NewPage(records []models.Organization, opts ...PageOption) *Page {
	cfg := pageConfig{
		pageSize: paging.PageSize,
		delay:    DefaultNameDelay,
		clock:    debounce.RealClock(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Page{
		records:  records,
		pageSize: cfg.pageSize,
		onChange: cfg.onChange,
		page:     1,
		mode:     ViewCard,
	}
	p.name = debounce.New(cfg.delay, p.applyName, debounce.WithClock(cfg.clock))
	return p
}

func (p *Page) applyName(name string) {
	p.mu.Lock()
	changed := name != p.appliedName
	p.appliedName = name
	if changed {
		p.page = 1
	}
	v := p.viewLocked()
	p.mu.Unlock()

	if p.onChange != nil {
		p.onChange(v)
	}
}

// SetName records raw name input. The query only sees it after the quiet
// period has elapsed.
func (p *Page) SetName(raw string) View {
	p.mu.Lock()
	p.filters.Name = raw
	p.page = 1
	v := p.viewLocked()
	p.mu.Unlock()

	p.name.Push(raw)
	return v
}

// SetCity replaces the city filter.
func (p *Page) SetCity(city string) View {
	return p.update(func() { p.filters.City = city })
}

// SetSector replaces the sector filter.
func (p *Page) SetSector(sector string) View {
	return p.update(func() { p.filters.Sector = sector })
}

// SetYear replaces the registration year filter.
func (p *Page) SetYear(year string) View {
	return p.update(func() { p.filters.Year = year })
}

// SetPage moves to page n. Out-of-range pages render empty.
func (p *Page) SetPage(n int) View {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = n
	return p.viewLocked()
}

// SetView switches between card and table presentation.
func (p *Page) SetView(mode ViewMode) View {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
	return p.viewLocked()
}

// Snapshot renders the current state.
func (p *Page) Snapshot() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewLocked()
}

// Filters returns the raw filter input (name not yet debounced).
func (p *Page) Filters() FilterState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filters
}

// Close cancels any pending name publication.
func (p *Page) Close() {
	p.name.Stop()
}

func (p *Page) update(fn func()) View {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn()
	p.page = 1
	return p.viewLocked()
}

func (p *Page) viewLocked() View {
	applied := p.filters
	applied.Name = p.appliedName
	v := BuildView(p.records, applied, p.page, p.pageSize, p.mode)
	// Report the raw input so the search box keeps what was typed.
	v.Filters.Name = p.filters.Name
	return v
}

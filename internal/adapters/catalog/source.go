package catalog

import (
	"sync"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// Source holds the active catalog and swaps it on reload. A failed reload
// keeps the previous catalog.
type Source struct {
	mu      sync.RWMutex
	current *Catalog
	path    string
	opts    LoadOptions
}

// NewSource loads path and keeps it reloadable
func NewSource(path string, opts LoadOptions) (*Source, error) {
	c, err := LoadFile(path, opts)
	if err != nil {
		return nil, err
	}
	return &Source{current: c, path: path, opts: opts}, nil
}

// StaticSource wraps an already loaded catalog. Reload is a no-op.
func StaticSource(c *Catalog) *Source {
	return &Source{current: c}
}

// Current returns the active catalog
func (s *Source) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Lookup implements habitat.ModuleCatalog against the active catalog
func (s *Source) Lookup(dataName string) (*habitat.Module, bool) {
	return s.Current().Lookup(dataName)
}

// Snapshot returns the active catalog. Later reloads do not affect it.
func (s *Source) Snapshot() habitat.ModuleCatalog {
	return s.Current()
}

// Reload re-reads the catalog file
func (s *Source) Reload() (*Catalog, error) {
	if s.path == "" {
		return s.Current(), nil
	}
	c, err := LoadFile(s.path, s.opts)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	return c, nil
}

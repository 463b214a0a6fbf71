package ports

import (
	"context"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// HabitatStore persists habitats and converts them to and from the wire format
type HabitatStore interface {
	Load(ctx context.Context, path string) (habitat.HabitatState, error)
	Save(ctx context.Context, path string, state habitat.HabitatState) error
	Encode(state habitat.HabitatState) ([]byte, error)
	Decode(data []byte) (habitat.HabitatState, error)
}

// CatalogProvider exposes the active module catalog. Implementations may swap
// the catalog between calls; handlers read it once per request.
type CatalogProvider interface {
	Current() *catalog.Catalog
}

package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/ports"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// ListModulesQuery lists placeable modules
type ListModulesQuery struct {
	Core     string           // Optional: restrict to modules fitting this core
	CellType habitat.CellType // Used with Core; CellMining keeps only mines
	Filter   catalog.Filter
}

// ListModulesResponse contains modules ordered by tier then name
type ListModulesResponse struct {
	Modules []*habitat.Module
}

// ListModulesHandler handles the ListModules query
type ListModulesHandler struct {
	catalog ports.CatalogProvider
}

// NewListModulesHandler creates a new ListModulesHandler
func NewListModulesHandler(catalog ports.CatalogProvider) *ListModulesHandler {
	return &ListModulesHandler{catalog: catalog}
}

// Handle executes the ListModules query
func (h *ListModulesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListModulesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListModulesQuery")
	}
	if err := query.Filter.Validate(); err != nil {
		return nil, err
	}

	c := h.catalog.Current()
	if query.Core == "" {
		return &ListModulesResponse{Modules: c.Match(query.Filter)}, nil
	}

	core, err := c.Resolve(query.Core)
	if err != nil {
		return nil, err
	}
	if !core.CoreModule {
		return nil, shared.NewValidationError("core", fmt.Sprintf("%s is not a core module", core.FriendlyName))
	}
	cellType := query.CellType
	if cellType == habitat.CellNone {
		cellType = habitat.CellModule
	}
	if cellType == habitat.CellCore {
		return nil, shared.NewCellNotEditableError("core", "the core cell holds the core module")
	}

	return &ListModulesResponse{Modules: c.Eligible(core, cellType, query.Filter)}, nil
}

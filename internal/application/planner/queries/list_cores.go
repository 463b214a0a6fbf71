package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/ports"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// ListCoresQuery lists core modules
type ListCoresQuery struct {
	Type habitat.HabitatType // Optional: empty lists stations then bases
}

// ListCoresResponse contains cores ordered by tier then name
type ListCoresResponse struct {
	Cores []*habitat.Module
}

// ListCoresHandler handles the ListCores query
type ListCoresHandler struct {
	catalog ports.CatalogProvider
}

// NewListCoresHandler creates a new ListCoresHandler
func NewListCoresHandler(catalog ports.CatalogProvider) *ListCoresHandler {
	return &ListCoresHandler{catalog: catalog}
}

// Handle executes the ListCores query
func (h *ListCoresHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListCoresQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListCoresQuery")
	}

	c := h.catalog.Current()
	switch {
	case query.Type == "":
		cores := append(c.Cores(habitat.Station), c.Cores(habitat.Base)...)
		return &ListCoresResponse{Cores: cores}, nil
	case query.Type.IsValid():
		return &ListCoresResponse{Cores: c.Cores(query.Type)}, nil
	default:
		return nil, shared.NewValidationError("type", fmt.Sprintf("habitat type must be station or base, got %q", query.Type))
	}
}

package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/ports"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// ModuleTooltipQuery describes one module
type ModuleTooltipQuery struct {
	Module string
}

// ModuleTooltipResponse holds the module record and its tooltip text
type ModuleTooltipResponse struct {
	Module  *habitat.Module
	Tooltip string
}

// ModuleTooltipHandler handles the ModuleTooltip query
type ModuleTooltipHandler struct {
	catalog ports.CatalogProvider
	rules   *habitat.Rules
}

// NewModuleTooltipHandler creates a new ModuleTooltipHandler
func NewModuleTooltipHandler(catalog ports.CatalogProvider, rules *habitat.Rules) *ModuleTooltipHandler {
	return &ModuleTooltipHandler{catalog: catalog, rules: rules}
}

// Handle executes the ModuleTooltip query
func (h *ModuleTooltipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ModuleTooltipQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ModuleTooltipQuery")
	}

	m, err := h.catalog.Current().Resolve(query.Module)
	if err != nil {
		return nil, err
	}
	return &ModuleTooltipResponse{Module: m, Tooltip: display.Tooltip(m, h.rules)}, nil
}

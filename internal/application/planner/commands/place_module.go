package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/ports"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// PlaceModuleCommand installs a module into one cell. Module accepts a
// dataName or a friendly name.
type PlaceModuleCommand struct {
	State  habitat.HabitatState
	Cell   string
	Module string
}

// PlaceModuleHandler handles the PlaceModule command
type PlaceModuleHandler struct {
	catalog ports.CatalogProvider
}

// NewPlaceModuleHandler creates a new PlaceModuleHandler
func NewPlaceModuleHandler(catalog ports.CatalogProvider) *PlaceModuleHandler {
	return &PlaceModuleHandler{catalog: catalog}
}

// Handle executes the PlaceModule command
func (h *PlaceModuleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PlaceModuleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *PlaceModuleCommand")
	}
	if err := requireState(cmd.State); err != nil {
		return nil, err
	}

	label, err := habitat.ParseCellLabel(cmd.Cell)
	if err != nil {
		return nil, err
	}

	c := h.catalog.Current()
	core, err := resolveCore(c, cmd.State)
	if err != nil {
		return nil, err
	}
	module, err := c.Resolve(cmd.Module)
	if err != nil {
		return nil, err
	}

	state, err := cmd.State.WithModule(label, module, core)
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log("DEBUG", "Module placed", map[string]interface{}{
		"cell":   label.String(),
		"module": module.DataName,
	})

	return &HabitatResponse{State: state}, nil
}

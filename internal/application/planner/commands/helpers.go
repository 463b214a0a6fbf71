package commands

import (
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// HabitatResponse carries the state produced by a habitat command
type HabitatResponse struct {
	State habitat.HabitatState
}

// HabitatType labels request metrics with the kind of habitat edited
func (r *HabitatResponse) HabitatType() habitat.HabitatType { return r.State.Type() }

func (c *PlaceModuleCommand) HabitatType() habitat.HabitatType   { return c.State.Type() }
func (c *ClearCellCommand) HabitatType() habitat.HabitatType     { return c.State.Type() }
func (c *SetSiteCommand) HabitatType() habitat.HabitatType       { return c.State.Type() }
func (c *SetBodyCommand) HabitatType() habitat.HabitatType       { return c.State.Type() }
func (c *RenameHabitatCommand) HabitatType() habitat.HabitatType { return c.State.Type() }
func (c *ExportHabitatCommand) HabitatType() habitat.HabitatType { return c.State.Type() }

func requireState(state habitat.HabitatState) error {
	if state.IsZero() {
		return shared.NewValidationError("state", "no habitat loaded")
	}
	return nil
}

func resolveCore(c *catalog.Catalog, state habitat.HabitatState) (*habitat.Module, error) {
	core, ok := c.Lookup(state.Core())
	if !ok {
		return nil, shared.NewUnknownModuleError(state.Core(), c.Suggest(state.Core(), 3))
	}
	return core, nil
}

func validateBody(rules *habitat.Rules, body habitat.SolarBody) error {
	if _, ok := rules.SolarModifiers[body]; !ok {
		return shared.NewValidationError("body", fmt.Sprintf("unknown solar body %q", body))
	}
	return nil
}

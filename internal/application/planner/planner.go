// Package planner wires the habitat planning commands and queries onto a mediator.
package planner

import (
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/commands"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/ports"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/queries"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// Dependencies are the collaborators the planner handlers need
type Dependencies struct {
	Catalog ports.CatalogProvider
	Engine  *habitat.Engine
	Store   ports.HabitatStore
}

// RegisterHandlers registers every planner handler with m
func RegisterHandlers(m mediator.Mediator, deps Dependencies) error {
	if deps.Catalog == nil || deps.Engine == nil || deps.Store == nil {
		return fmt.Errorf("planner dependencies are incomplete")
	}
	rules := deps.Engine.Rules()

	registrations := []error{
		mediator.RegisterHandler[*commands.NewHabitatCommand](m, commands.NewNewHabitatHandler(deps.Catalog, rules)),
		mediator.RegisterHandler[*commands.PlaceModuleCommand](m, commands.NewPlaceModuleHandler(deps.Catalog)),
		mediator.RegisterHandler[*commands.ClearCellCommand](m, commands.NewClearCellHandler()),
		mediator.RegisterHandler[*commands.SetSiteCommand](m, commands.NewSetSiteHandler()),
		mediator.RegisterHandler[*commands.SetBodyCommand](m, commands.NewSetBodyHandler(rules)),
		mediator.RegisterHandler[*commands.RenameHabitatCommand](m, commands.NewRenameHabitatHandler()),
		mediator.RegisterHandler[*commands.ImportHabitatCommand](m, commands.NewImportHabitatHandler(deps.Store)),
		mediator.RegisterHandler[*commands.ExportHabitatCommand](m, commands.NewExportHabitatHandler(deps.Store)),
		mediator.RegisterHandler[*queries.ComputeStatsQuery](m, queries.NewComputeStatsHandler(deps.Engine)),
		mediator.RegisterHandler[*queries.ListModulesQuery](m, queries.NewListModulesHandler(deps.Catalog)),
		mediator.RegisterHandler[*queries.ListCoresQuery](m, queries.NewListCoresHandler(deps.Catalog)),
		mediator.RegisterHandler[*queries.ModuleTooltipQuery](m, queries.NewModuleTooltipHandler(deps.Catalog, rules)),
	}
	for _, err := range registrations {
		if err != nil {
			return fmt.Errorf("failed to register planner handler: %w", err)
		}
	}
	return nil
}

// NewMediator builds a mediator with every planner handler and the given middleware
func NewMediator(deps Dependencies, middleware ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middleware {
		m.RegisterMiddleware(mw)
	}
	if err := RegisterHandlers(m, deps); err != nil {
		return nil, err
	}
	return m, nil
}

package planner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/persistence"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/common"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/mediator"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/commands"
	"github.com/andrescamacho/ti-habitat-planner/internal/application/planner/queries"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
	"github.com/andrescamacho/ti-habitat-planner/test/helpers"
)

func newPlanner(t *testing.T) mediator.Mediator {
	t.Helper()
	source := catalog.StaticSource(helpers.NewFixtureCatalog())
	engine, err := habitat.NewEngine(source, nil)
	require.NoError(t, err)
	m, err := planner.NewMediator(planner.Dependencies{
		Catalog: source,
		Engine:  engine,
		Store:   persistence.NewFileHabitatRepository(),
	})
	require.NoError(t, err)
	return m
}

func send[T any](t *testing.T, m mediator.Mediator, ctx context.Context, request mediator.Request) T {
	t.Helper()
	resp, err := m.Send(ctx, request)
	require.NoError(t, err)
	typed, ok := resp.(T)
	require.True(t, ok, "unexpected response %T", resp)
	return typed
}

func newBase(t *testing.T, m mediator.Mediator) habitat.HabitatState {
	t.Helper()
	resp := send[*commands.HabitatResponse](t, m, context.Background(),
		&commands.NewHabitatCommand{Core: "Settlement", Body: habitat.Mars, Name: "Red Dust"})
	return resp.State
}

func TestNewHabitat(t *testing.T) {
	// Arrange
	m := newPlanner(t)
	logger := helpers.NewRecordingLogger()
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	resp := send[*commands.HabitatResponse](t, m, ctx, &commands.NewHabitatCommand{Core: "ring"})

	// Assert
	assert.Equal(t, "Ring", resp.State.Core())
	assert.Equal(t, habitat.Station, resp.State.Type())
	assert.Equal(t, 3, resp.State.Tier())
	assert.Equal(t, habitat.EarthLEO, resp.State.Body())
	assert.True(t, logger.HasMessage("INFO", "Habitat created"))
}

func TestNewHabitat_Rejections(t *testing.T) {
	m := newPlanner(t)

	tests := map[string]struct {
		cmd    *commands.NewHabitatCommand
		target error
	}{
		"unknown core": {&commands.NewHabitatCommand{Core: "Outpst"}, shared.ErrUnknownModule},
		"not a core":   {&commands.NewHabitatCommand{Core: "TradeHub"}, nil},
		"unknown body": {&commands.NewHabitatCommand{Core: "Outpost", Body: "Pluto"}, nil},
		"empty core":   {&commands.NewHabitatCommand{}, shared.ErrUnknownModule},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Send(context.Background(), tt.cmd)

			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestPlaceModule_AndComputeStats(t *testing.T) {
	// Arrange
	m := newPlanner(t)
	ctx := context.Background()
	state := newBase(t, m)

	// Act
	state = send[*commands.HabitatResponse](t, m, ctx,
		&commands.PlaceModuleCommand{State: state, Cell: "0_3", Module: "Mining Complex"}).State
	state = send[*commands.HabitatResponse](t, m, ctx,
		&commands.PlaceModuleCommand{State: state, Cell: "1_2", Module: "HydroponicsBay"}).State
	state = send[*commands.HabitatResponse](t, m, ctx,
		&commands.SetSiteCommand{State: state, Resource: habitat.Water, Amount: 10}).State
	state = send[*commands.HabitatResponse](t, m, ctx,
		&commands.SetSiteCommand{State: state, Resource: habitat.Metals, Amount: 4}).State
	stats := send[*queries.ComputeStatsResponse](t, m, ctx, &queries.ComputeStatsQuery{State: state})

	// Assert
	assert.Equal(t, []string{"MiningComplex", "HydroponicsBay", "Settlement"}, state.Modules())
	assert.Equal(t, 1.0, stats.Summary.MiningMultiplier)
	assert.Equal(t, -10.0, stats.Summary.NetUpkeep[habitat.Water])
	assert.Equal(t, -4.0, stats.Summary.NetUpkeep[habitat.Metals])
	assert.Equal(t, "Red Dust", stats.Report.Name)
	assert.Equal(t, "Water 10, Volatiles 0, Metals 4, Noble Metals 0, Fissiles 0", stats.Report.Site)
	assert.NotEmpty(t, stats.Report.Stats)
}

func TestPlaceModule_Rejections(t *testing.T) {
	m := newPlanner(t)
	state := newBase(t, m)

	tests := map[string]struct {
		cmd    *commands.PlaceModuleCommand
		target error
	}{
		"core cell":           {&commands.PlaceModuleCommand{State: state, Cell: "1_3", Module: "TradeHub"}, shared.ErrCellNotEditable},
		"missing cell":        {&commands.PlaceModuleCommand{State: state, Cell: "0_0", Module: "TradeHub"}, shared.ErrCellNotEditable},
		"non mine in mining":  {&commands.PlaceModuleCommand{State: state, Cell: "0_3", Module: "TradeHub"}, shared.ErrModuleNotAllowed},
		"tier too high":       {&commands.PlaceModuleCommand{State: state, Cell: "1_2", Module: "Nanofactory"}, shared.ErrModuleNotAllowed},
		"station only module": {&commands.PlaceModuleCommand{State: state, Cell: "1_2", Module: "LifeScienceLab"}, shared.ErrModuleNotAllowed},
		"unknown module":      {&commands.PlaceModuleCommand{State: state, Cell: "1_2", Module: "Hydroponic"}, shared.ErrUnknownModule},
		"bad label":           {&commands.PlaceModuleCommand{State: state, Cell: "one-two", Module: "TradeHub"}, nil},
		"no habitat":          {&commands.PlaceModuleCommand{Cell: "1_2", Module: "TradeHub"}, nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Send(context.Background(), tt.cmd)

			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestClearCell(t *testing.T) {
	m := newPlanner(t)
	ctx := context.Background()
	state := newBase(t, m)
	state = send[*commands.HabitatResponse](t, m, ctx,
		&commands.PlaceModuleCommand{State: state, Cell: "1_4", Module: "TradeHub"}).State

	cleared := send[*commands.HabitatResponse](t, m, ctx, &commands.ClearCellCommand{State: state, Cell: "1_4"}).State

	assert.Equal(t, []string{"Settlement"}, cleared.Modules())
	assert.Equal(t, []string{"Settlement", "TradeHub"}, state.Modules())

	_, err := m.Send(ctx, &commands.ClearCellCommand{State: state, Cell: "1_3"})
	assert.ErrorIs(t, err, shared.ErrCellNotEditable)
}

func TestSetSite_Rejections(t *testing.T) {
	m := newPlanner(t)
	ctx := context.Background()
	base := newBase(t, m)
	station := send[*commands.HabitatResponse](t, m, ctx, &commands.NewHabitatCommand{Core: "Outpost"}).State

	_, err := m.Send(ctx, &commands.SetSiteCommand{State: station, Resource: habitat.Water, Amount: 1})
	assert.Error(t, err)
	_, err = m.Send(ctx, &commands.SetSiteCommand{State: base, Resource: habitat.Money, Amount: 1})
	assert.Error(t, err)
	_, err = m.Send(ctx, &commands.SetSiteCommand{State: base, Resource: habitat.Water, Amount: -1})
	assert.Error(t, err)
}

func TestSetBodyAndRename(t *testing.T) {
	m := newPlanner(t)
	ctx := context.Background()
	state := newBase(t, m)

	moved := send[*commands.HabitatResponse](t, m, ctx, &commands.SetBodyCommand{State: state, Body: habitat.EarthLuna}).State
	renamed := send[*commands.HabitatResponse](t, m, ctx, &commands.RenameHabitatCommand{State: moved, Name: "Tranquility"}).State

	assert.Equal(t, habitat.EarthLuna, renamed.Body())
	assert.Equal(t, "Tranquility", renamed.Name())
	assert.Equal(t, habitat.Mars, state.Body())

	_, err := m.Send(ctx, &commands.SetBodyCommand{State: state, Body: "Sedna"})
	assert.Error(t, err)
}

func TestExportAndImport(t *testing.T) {
	// Arrange
	m := newPlanner(t)
	ctx := context.Background()
	state := newBase(t, m)
	state = send[*commands.HabitatResponse](t, m, ctx,
		&commands.PlaceModuleCommand{State: state, Cell: "1_4", Module: "TradeHub"}).State
	path := filepath.Join(t.TempDir(), "red-dust.json")

	// Act
	exported := send[*commands.ExportHabitatResponse](t, m, ctx, &commands.ExportHabitatCommand{State: state, Path: path})
	fromData := send[*commands.HabitatResponse](t, m, ctx, &commands.ImportHabitatCommand{Data: exported.Data})
	fromFile := send[*commands.HabitatResponse](t, m, ctx, &commands.ImportHabitatCommand{Path: path})

	// Assert
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, exported.Data, onDisk)
	assert.Equal(t, state.Data(), fromData.State.Data())
	assert.Equal(t, state.Data(), fromFile.State.Data())
}

func TestImportHabitat_FailureIsRecoverable(t *testing.T) {
	// Arrange
	m := newPlanner(t)
	logger := helpers.NewRecordingLogger()
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	resp, err := m.Send(ctx, &commands.ImportHabitatCommand{Data: []byte(`{"cells": 5}`)})

	// Assert
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, shared.ErrInvalidHabitat))
	assert.True(t, logger.HasMessage("WARNING", "Habitat import rejected"))

	_, err = m.Send(ctx, &commands.ImportHabitatCommand{})
	assert.Error(t, err)
	_, err = m.Send(ctx, &commands.ImportHabitatCommand{Path: "x.json", Data: []byte("{}")})
	assert.Error(t, err)
}

func TestComputeStats_ReportsUnknownModules(t *testing.T) {
	m := newPlanner(t)
	logger := helpers.NewRecordingLogger()
	ctx := common.WithLogger(context.Background(), logger)
	data := []byte(`{"cells":{"0_3":[1,null],"1_2":[1,"Teleporter"],"1_3":[2,"Outpost"],"1_4":[1,null],"2_3":[1,null]},` +
		`"core":"Outpost","tier":1,"type":"station","body":"Mars","name":""}`)
	state := send[*commands.HabitatResponse](t, m, ctx, &commands.ImportHabitatCommand{Data: data}).State

	stats := send[*queries.ComputeStatsResponse](t, m, ctx, &queries.ComputeStatsQuery{State: state})

	assert.Equal(t, []string{"Teleporter"}, stats.Summary.UnknownModules)
	assert.Equal(t, []string{"Teleporter"}, stats.Report.Unknown)
	assert.True(t, logger.HasMessage("WARNING", "Habitat references modules missing from the catalog"))
}

func TestListModules(t *testing.T) {
	m := newPlanner(t)
	ctx := context.Background()

	mines := send[*queries.ListModulesResponse](t, m, ctx,
		&queries.ListModulesQuery{Core: "Citadel", CellType: habitat.CellMining})
	research := send[*queries.ListModulesResponse](t, m, ctx,
		&queries.ListModulesQuery{Filter: catalog.Filter{Incomes: []string{"incomeResearch_month"}}})

	assert.Equal(t, []string{"MiningComplex", "AdvancedMiningComplex", "OrbitalMiningCenter"}, names(mines.Modules))
	assert.Equal(t, []string{"EconomicsLab", "LifeScienceLab", "MilitaryScienceLab"}, names(research.Modules))

	_, err := m.Send(ctx, &queries.ListModulesQuery{Filter: catalog.Filter{Incomes: []string{"joy"}}})
	assert.Error(t, err)
	_, err = m.Send(ctx, &queries.ListModulesQuery{Core: "Outpost", CellType: habitat.CellCore})
	assert.ErrorIs(t, err, shared.ErrCellNotEditable)
}

func TestListCores(t *testing.T) {
	m := newPlanner(t)
	ctx := context.Background()

	all := send[*queries.ListCoresResponse](t, m, ctx, &queries.ListCoresQuery{})
	bases := send[*queries.ListCoresResponse](t, m, ctx, &queries.ListCoresQuery{Type: habitat.Base})

	assert.Equal(t, []string{"Outpost", "Platform", "Ring", "Settlement", "Colony", "Citadel"}, names(all.Cores))
	assert.Equal(t, []string{"Settlement", "Colony", "Citadel"}, names(bases.Cores))

	_, err := m.Send(ctx, &queries.ListCoresQuery{Type: "moon"})
	assert.Error(t, err)
}

func TestModuleTooltip(t *testing.T) {
	m := newPlanner(t)

	resp := send[*queries.ModuleTooltipResponse](t, m, context.Background(), &queries.ModuleTooltipQuery{Module: "Trade Hub"})

	assert.Equal(t, "TradeHub", resp.Module.DataName)
	assert.Contains(t, resp.Tooltip, "Trade Hub\nTier 1 module, 8 crew, 300 tons")
}

func names(mods []*habitat.Module) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.DataName
	}
	return out
}

func TestLoggerMiddleware(t *testing.T) {
	// Arrange
	fallback := helpers.NewRecordingLogger()
	source := catalog.StaticSource(helpers.NewFixtureCatalog())
	engine, err := habitat.NewEngine(source, nil)
	require.NoError(t, err)
	m, err := planner.NewMediator(planner.Dependencies{
		Catalog: source,
		Engine:  engine,
		Store:   persistence.NewFileHabitatRepository(),
	}, planner.LoggerMiddleware(fallback))
	require.NoError(t, err)

	// Act
	_, err = m.Send(context.Background(), &commands.NewHabitatCommand{Core: "Outpost"})
	require.NoError(t, err)
	_, err = m.Send(context.Background(), &commands.NewHabitatCommand{Core: "Nowhere"})
	require.Error(t, err)

	// Assert
	assert.True(t, fallback.HasMessage("INFO", "Habitat created"))
	assert.True(t, fallback.HasMessage("DEBUG", "Request failed"))
}

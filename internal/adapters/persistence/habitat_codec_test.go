package persistence_test

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/persistence"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
	"github.com/andrescamacho/ti-habitat-planner/test/helpers"
)

func buildBase(t *testing.T) habitat.HabitatState {
	t.Helper()
	core := helpers.FixtureModule("Colony")
	state, err := habitat.NewHabitatState(core, habitat.MiddleBeltAsteroids)
	require.NoError(t, err)

	placements := map[string]string{
		"0_3": "AdvancedMiningComplex",
		"0_0": "SolarCollector",
		"1_0": "SolarCollector",
		"1_1": "HydroponicsBay",
		"1_2": "Farm",
		"1_4": "Nanofactory",
		"1_5": "ConstructionModule",
		"2_3": "TradeHub",
	}
	for label, name := range placements {
		l, err := habitat.ParseCellLabel(label)
		require.NoError(t, err)
		state, err = state.WithModule(l, helpers.FixtureModule(name), core)
		require.NoError(t, err)
	}
	state, err = state.WithSiteYield(habitat.Metals, 2.75)
	require.NoError(t, err)
	state, err = state.WithSiteYield(habitat.Water, 0.1)
	require.NoError(t, err)
	return state.WithName("Ceres Forge")
}

func TestEncodeHabitat_Compact(t *testing.T) {
	state, err := habitat.NewHabitatState(helpers.FixtureModule("Outpost"), habitat.Mars)
	require.NoError(t, err)

	data, err := persistence.EncodeHabitat(state)

	require.NoError(t, err)
	assert.Equal(t,
		`{"cells":{"0_3":[1,null],"1_2":[1,null],"1_3":[2,"Outpost"],"1_4":[1,null],"2_3":[1,null]},`+
			`"core":"Outpost","tier":1,"type":"station","body":"Mars","name":""}`,
		string(data))
}

func TestHabitatRoundTrip_TotalsBitIdentical(t *testing.T) {
	// Arrange
	engine, err := habitat.NewEngine(helpers.FixtureStaticCatalog(), nil)
	require.NoError(t, err)
	original := buildBase(t)
	before := engine.Summarize(original)

	// Act
	data, err := persistence.EncodeHabitat(original)
	require.NoError(t, err)
	restored, err := persistence.DecodeHabitat(data)
	require.NoError(t, err)
	after := engine.Summarize(restored)

	// Assert
	assert.Equal(t, original.Modules(), restored.Modules())
	assert.Equal(t, original.Name(), restored.Name())
	assert.Equal(t, original.Body(), restored.Body())
	assert.Equal(t, math.Float64bits(before.Totals.Power), math.Float64bits(after.Totals.Power))
	assert.Equal(t, math.Float64bits(before.Totals.Crew), math.Float64bits(after.Totals.Crew))
	assert.Equal(t, math.Float64bits(before.ConstructionBonus), math.Float64bits(after.ConstructionBonus))
	for _, r := range habitat.MaterialResources {
		assert.Equal(t, math.Float64bits(before.NetUpkeep[r]), math.Float64bits(after.NetUpkeep[r]), "net upkeep %s", r)
		assert.Equal(t, math.Float64bits(before.Totals.SupportMaterials[r]), math.Float64bits(after.Totals.SupportMaterials[r]))
	}
	assert.Equal(t, before, after)
}

func TestDecodeHabitat_AcceptsDocumentFormat(t *testing.T) {
	input := `{
	  "cells": {"0_3": [3, "MiningComplex"], "1_2": [1, null], "1_3": [2, "Settlement"], "1_4": [1, "TradeHub"], "2_3": [1, null]},
	  "core": "Settlement", "tier": 1, "type": "base", "body": "Mars", "name": "Red Dust",
	  "site": {"nobleMetals": 1.5}
	}`

	state, err := persistence.DecodeHabitat([]byte(input))

	require.NoError(t, err)
	assert.Equal(t, habitat.Base, state.Type())
	assert.Equal(t, "Red Dust", state.Name())
	assert.Equal(t, []string{"MiningComplex", "Settlement", "TradeHub"}, state.Modules())
	assert.Equal(t, 1.5, state.Site()[habitat.NobleMetals])
}

func TestDecodeHabitat_RejectsMalformedInput(t *testing.T) {
	tests := map[string]string{
		"not json":        `habitat`,
		"truncated":       `{"cells": {`,
		"cell not array":  `{"cells": {"1_3": "core"}, "core": "Outpost", "tier": 1, "type": "station"}`,
		"cell too short":  `{"cells": {"1_3": [2]}, "core": "Outpost", "tier": 1, "type": "station"}`,
		"bad label":       `{"cells": {"core": [2, "Outpost"]}, "core": "Outpost", "tier": 1, "type": "station"}`,
		"bad module type": `{"cells": {"1_2": [1, 7]}, "core": "Outpost", "tier": 1, "type": "station"}`,
		"missing core":    `{"cells": {}, "tier": 1, "type": "station"}`,
		"bad type":        `{"cells": {}, "core": "Outpost", "tier": 1, "type": "moon"}`,
		"bad tier":        `{"cells": {}, "core": "Outpost", "tier": 9, "type": "station"}`,
		"negative site":   `{"cells": {}, "core": "Settlement", "tier": 1, "type": "base", "site": {"water": -1}}`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := persistence.DecodeHabitat([]byte(input))

			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidHabitat), "got %v", err)
		})
	}
}

func TestFileHabitatRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	repo := persistence.NewFileHabitatRepository()
	path := filepath.Join(t.TempDir(), "nested", "ceres.json")
	state := buildBase(t)

	// Act
	err := repo.Save(context.Background(), path, state)
	require.NoError(t, err)
	loaded, err := repo.Load(context.Background(), path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, state.Data(), loaded.Data())
}

func TestFileHabitatRepository_LoadMissingFile(t *testing.T) {
	repo := persistence.NewFileHabitatRepository()

	_, err := repo.Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

	assert.Error(t, err)
}

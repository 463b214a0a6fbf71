package habitat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/test/helpers"
)

func newEngine(t *testing.T) *habitat.Engine {
	t.Helper()
	engine, err := habitat.NewEngine(helpers.FixtureStaticCatalog(), nil)
	require.NoError(t, err)
	return engine
}

func place(t *testing.T, state habitat.HabitatState, label, module string) habitat.HabitatState {
	t.Helper()
	core := helpers.FixtureModule(state.Core())
	next, err := state.WithModule(cell(t, label), helpers.FixtureModule(module), core)
	require.NoError(t, err)
	return next
}

func TestEngine_SummarizeStation(t *testing.T) {
	// Arrange
	engine := newEngine(t)
	state, err := habitat.NewHabitatState(helpers.FixtureModule("Platform"), habitat.EarthLEO)
	require.NoError(t, err)
	state = place(t, state, "1_2", "SolarCollector")
	state = place(t, state, "1_4", "SolarCollector")
	state = place(t, state, "0_3", "Nanofactory")
	state = place(t, state, "2_3", "ConstructionModule")
	state = place(t, state, "1_1", "TradeHub")

	// Act
	summary := engine.Summarize(state)

	// Assert
	assert.InDelta(t, 120-10-40-10-5, summary.Totals.Power, 1e-9)
	assert.InDelta(t, 0.268, summary.ConstructionBonus, 1e-9)
	assert.Equal(t, 8.0, summary.NetMoney)
	assert.True(t, summary.Totals.CanFoundHabs)
	assert.Equal(t, map[string]float64{"Economy": 2}, summary.Totals.LeoBonuses)
	assert.Zero(t, summary.MiningMultiplier)
	assert.Empty(t, summary.UnknownModules)
	assert.InDelta(t, 102*upkeepRate, summary.NetUpkeep[habitat.Water], 1e-12)
}

func TestEngine_SummarizeBaseWithMining(t *testing.T) {
	// Arrange
	engine := newEngine(t)
	state, err := habitat.NewHabitatState(helpers.FixtureModule("Settlement"), habitat.Mars)
	require.NoError(t, err)
	state = place(t, state, "0_3", "MiningComplex")
	state = place(t, state, "1_2", "HydroponicsBay")
	state, err = state.WithSiteYield(habitat.Water, 10)
	require.NoError(t, err)
	state, err = state.WithSiteYield(habitat.Metals, 4)
	require.NoError(t, err)

	// Act
	summary := engine.Summarize(state)

	// Assert
	assert.InDelta(t, 36*upkeepRate, summary.Totals.SupportMaterials[habitat.Water], 1e-12)
	assert.InDelta(t, 50*upkeepRate, summary.FarmDiscount[habitat.Water], 1e-12)
	assert.Equal(t, 1.0, summary.MiningMultiplier)
	assert.Equal(t, -10.0, summary.NetUpkeep[habitat.Water])
	assert.Equal(t, 0.0, summary.NetUpkeep[habitat.Volatiles])
	assert.Equal(t, -4.0, summary.NetUpkeep[habitat.Metals])
}

func TestEngine_StationIgnoresSite(t *testing.T) {
	engine := newEngine(t)
	state, err := habitat.NewHabitatState(helpers.FixtureModule("Outpost"), habitat.Mars)
	require.NoError(t, err)
	state, err = state.WithSiteYield(habitat.Metals, 50)
	require.NoError(t, err)

	summary := engine.Summarize(state)

	assert.Zero(t, summary.NetUpkeep[habitat.Metals])
	assert.Empty(t, summary.SiteYield)
}

func TestEngine_UnknownModulesAreNeutral(t *testing.T) {
	// Arrange
	engine := newEngine(t)
	state, err := habitat.RestoreHabitatState(habitat.HabitatStateData{
		Cells: map[habitat.CellLabel]habitat.Cell{
			{Row: 1, Col: 2}: {Type: habitat.CellModule, Module: "LegacyReactor"},
		},
		Core: "Outpost",
		Tier: 1,
		Type: habitat.Station,
		Body: habitat.Mars,
	})
	require.NoError(t, err)

	// Act
	summary := engine.Summarize(state)

	// Assert
	assert.Equal(t, []string{"LegacyReactor"}, summary.UnknownModules)
	assert.Equal(t, 10.0, summary.Totals.Crew)
}

func TestEngine_ComputeIsOrderIndependent(t *testing.T) {
	engine := newEngine(t)
	names := []string{"SolarCollector", "HydroponicsBay", "Nanofactory", "TradeHub", "Shipyard", "EconomicsLab", "FissionPile"}
	ctx := habitat.SiteContext{Body: habitat.Mercury, Type: habitat.Station}

	forward := make([]*habitat.Module, 0, len(names))
	for _, n := range names {
		forward = append(forward, helpers.FixtureModule(n))
	}
	reversed := make([]*habitat.Module, len(forward))
	for i, m := range forward {
		reversed[len(forward)-1-i] = m
	}

	a := engine.Compute(forward, ctx)
	b := engine.Compute(reversed, ctx)

	assert.InDelta(t, a.Totals.Power, b.Totals.Power, 1e-9)
	assert.InDelta(t, a.Totals.Crew, b.Totals.Crew, 1e-9)
	assert.InDelta(t, a.NetMoney, b.NetMoney, 1e-9)
	assert.InDelta(t, a.ConstructionBonus, b.ConstructionBonus, 1e-12)
	for _, r := range habitat.MaterialResources {
		assert.InDelta(t, a.NetUpkeep[r], b.NetUpkeep[r], 1e-9, "resource %s", r)
		assert.InDelta(t, a.Totals.WeightedBuildMaterials[r], b.Totals.WeightedBuildMaterials[r], 1e-9)
	}
	assert.InDeltaMapValues(t, a.Totals.TechBonuses, b.Totals.TechBonuses, 1e-12)
}

func TestNewEngine_RejectsInvalidRules(t *testing.T) {
	rules := habitat.DefaultRules()
	rules.MiningCell = "x"

	_, err := habitat.NewEngine(helpers.FixtureStaticCatalog(), rules)

	assert.Error(t, err)
}

// swappingCatalog answers lookups with an empty catalog unless a snapshot is
// taken first, standing in for a reload that lands mid-computation.
type swappingCatalog struct {
	pinned    habitat.ModuleCatalog
	snapshots int
}

func (c *swappingCatalog) Lookup(string) (*habitat.Module, bool) { return nil, false }

func (c *swappingCatalog) Snapshot() habitat.ModuleCatalog {
	c.snapshots++
	return c.pinned
}

func TestEngine_SummarizeResolvesOneCatalogPerPass(t *testing.T) {
	// Arrange
	source := &swappingCatalog{pinned: helpers.FixtureStaticCatalog()}
	engine, err := habitat.NewEngine(source, nil)
	require.NoError(t, err)
	state, err := habitat.NewHabitatState(helpers.FixtureModule("Outpost"), habitat.Mars)
	require.NoError(t, err)
	state = place(t, state, "1_2", "TradeHub")

	// Act
	summary := engine.Summarize(state)

	// Assert
	assert.Equal(t, 1, source.snapshots)
	assert.Empty(t, summary.UnknownModules)
	assert.Equal(t, 18.0, summary.Totals.Crew)
}

package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ti-habitat-planner/internal/adapters/catalog"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
	"github.com/andrescamacho/ti-habitat-planner/test/helpers"
)

const catalogJSON = `[
  {"dataName": "Outpost", "friendlyName": "Outpost", "tier": 1, "habType": "Station",
   "coreModule": true, "power": -5, "crew": 10, "baseMass_tons": 1200,
   "supportMaterials_month": {"money": 2}},
  {"dataName": "AlienHive", "alienModule": true},
  {"dataName": "Wreck", "friendlyName": "Wreck", "tier": 1, "habType": "Any",
   "coreModule": false, "power": 0, "crew": 0, "destroyed": true},
  {"dataName": "AutoDrill", "automated": false, "friendlyName": "Auto Drill", "tier": 1,
   "habType": "Base", "coreModule": false, "power": -10, "crew": 0, "mine": true, "miningModifier": 0.5},
  {"dataName": "AdvancedMiningComplex", "friendlyName": "Advanced Mining Complex", "tier": 2,
   "habType": "Base", "coreModule": false, "power": -40, "crew": 30, "mine": true,
   "techBonuses": [{"category": "Economy", "bonus": 0.01}],
   "specialRules": ["Solar_Power_Variable_Output"]}
]`

func TestLoad_FiltersAndDerives(t *testing.T) {
	// Act
	c, err := catalog.Load(strings.NewReader(catalogJSON), catalog.DefaultLoadOptions())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	_, ok := c.Lookup("AlienHive")
	assert.False(t, ok)
	_, ok = c.Lookup("Wreck")
	assert.False(t, ok)

	drill, ok := c.Lookup("AutoDrill")
	require.True(t, ok)
	assert.Equal(t, 0.5, drill.MiningModifier)

	mine, ok := c.Lookup("AdvancedMiningComplex")
	require.True(t, ok)
	assert.Equal(t, 1.5, mine.MiningModifier)
	assert.True(t, mine.HasVariableSolarOutput())
	assert.Equal(t, []habitat.TechBonus{{Category: "Economy", Bonus: 0.01}}, mine.TechBonuses)

	outpost, _ := c.Lookup("Outpost")
	assert.Equal(t, 2.0, outpost.SupportMaterials[habitat.Money])
	assert.Zero(t, outpost.MiningModifier)
}

func TestLoad_MissingRequiredFieldIsFatal(t *testing.T) {
	input := `[{"dataName": "Lab", "friendlyName": "Lab", "tier": 1, "habType": "Any",
	  "coreModule": false, "power": -5}]`

	_, err := catalog.Load(strings.NewReader(input), catalog.DefaultLoadOptions())

	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrMissingField))
	var recErr *shared.CatalogRecordError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, []string{"crew"}, recErr.Fields)
	assert.Equal(t, "Lab", recErr.DataName)
}

func TestLoad_RejectsMalformedRecords(t *testing.T) {
	tests := map[string]string{
		"tier out of range": `[{"dataName": "X", "friendlyName": "X", "tier": 4, "habType": "Any", "coreModule": false, "power": 0, "crew": 0}]`,
		"unknown habType":   `[{"dataName": "X", "friendlyName": "X", "tier": 1, "habType": "Moon", "coreModule": false, "power": 0, "crew": 0}]`,
		"wrong type":        `[{"dataName": "X", "friendlyName": "X", "tier": "one", "habType": "Any", "coreModule": false, "power": 0, "crew": 0}]`,
		"not an array":      `{"dataName": "X"}`,
		"truncated":         `[{"dataName": `,
		"duplicate": `[{"dataName": "X", "friendlyName": "X", "tier": 1, "habType": "Any", "coreModule": false, "power": 0, "crew": 0},
		               {"dataName": "X", "friendlyName": "Y", "tier": 1, "habType": "Any", "coreModule": false, "power": 0, "crew": 0}]`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Load(strings.NewReader(input), catalog.DefaultLoadOptions())
			assert.Error(t, err)
		})
	}
}

func TestCatalog_Cores(t *testing.T) {
	c := helpers.NewFixtureCatalog()

	assert.Equal(t, []string{"Outpost", "Platform", "Ring"}, names(c.Cores(habitat.Station)))
	assert.Equal(t, []string{"Settlement", "Colony", "Citadel"}, names(c.Cores(habitat.Base)))
}

func TestCatalog_Eligible(t *testing.T) {
	c := helpers.NewFixtureCatalog()
	core := func(name string) *habitat.Module {
		m, ok := c.Lookup(name)
		require.True(t, ok)
		return m
	}

	tests := []struct {
		name     string
		core     string
		cellType habitat.CellType
		filter   catalog.Filter
		expected []string
	}{
		{
			name:     "tier 1 station",
			core:     "Outpost",
			cellType: habitat.CellModule,
			expected: []string{"Armory", "ConstructionModule", "EconomicsLab", "FissionPile", "HydroponicsBay",
				"LifeScienceLab", "MilitaryScienceLab", "SolarCollector", "TradeHub"},
		},
		{
			name:     "mining cell",
			core:     "Colony",
			cellType: habitat.CellMining,
			expected: []string{"MiningComplex", "AdvancedMiningComplex"},
		},
		{
			name:     "research filter",
			core:     "Ring",
			cellType: habitat.CellModule,
			filter:   catalog.Filter{Incomes: []string{"incomeResearch_month"}},
			expected: []string{"EconomicsLab", "LifeScienceLab", "MilitaryScienceLab"},
		},
		{
			name:     "tier filter",
			core:     "Platform",
			cellType: habitat.CellModule,
			filter:   catalog.Filter{Tiers: []int{2}},
			expected: []string{"Nanofactory", "Shipyard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Eligible(core(tt.core), tt.cellType, tt.filter)
			assert.Equal(t, tt.expected, names(got))
		})
	}
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, catalog.Filter{Tiers: []int{1, 3}, Incomes: []string{"power"}}.Validate())
	assert.Error(t, catalog.Filter{Tiers: []int{0}}.Validate())
	assert.Error(t, catalog.Filter{Incomes: []string{"happiness"}}.Validate())
	assert.Contains(t, catalog.IncomeFilterKeys(), "incomeMoney_month")
}

func TestCatalog_ResolveAndSuggest(t *testing.T) {
	c := helpers.NewFixtureCatalog()

	m, err := c.Resolve("trade hub")
	require.NoError(t, err)
	assert.Equal(t, "TradeHub", m.DataName)

	assert.Equal(t, []string{"Nanofactory"}, c.Suggest("Nanofactroy", 3))
	assert.Empty(t, c.Suggest("", 3))

	_, err = c.Resolve("Farmm")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUnknownModule))
	assert.Contains(t, err.Error(), "did you mean Farm?")
}

func TestSource_Reload(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "modules.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))
	src, err := catalog.NewSource(path, catalog.DefaultLoadOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, src.Current().Len())

	// Act - broken file keeps the previous catalog
	require.NoError(t, os.WriteFile(path, []byte(`[{"dataName": "Broken"}]`), 0o644))
	_, err = src.Reload()

	// Assert
	require.Error(t, err)
	_, ok := src.Lookup("Outpost")
	assert.True(t, ok)

	// Act - fixed file is picked up
	require.NoError(t, os.WriteFile(path, []byte(`[{"dataName": "Solo", "friendlyName": "Solo", "tier": 1,
	  "habType": "Station", "coreModule": true, "power": 0, "crew": 1}]`), 0o644))
	c, err := src.Reload()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	_, ok = src.Lookup("Outpost")
	assert.False(t, ok)
}

func TestSource_SnapshotSurvivesReload(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "modules.json")
	require.NoError(t, os.WriteFile(path, []byte(catalogJSON), 0o644))
	src, err := catalog.NewSource(path, catalog.DefaultLoadOptions())
	require.NoError(t, err)
	snapshot := src.Snapshot()

	// Act
	require.NoError(t, os.WriteFile(path, []byte(`[{"dataName": "Solo", "friendlyName": "Solo", "tier": 1,
	  "habType": "Station", "coreModule": true, "power": 0, "crew": 1}]`), 0o644))
	_, err = src.Reload()
	require.NoError(t, err)

	// Assert
	_, ok := snapshot.Lookup("Outpost")
	assert.True(t, ok)
	_, ok = src.Lookup("Outpost")
	assert.False(t, ok)
}

func names(mods []*habitat.Module) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.DataName
	}
	return out
}

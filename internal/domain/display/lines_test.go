package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/test/helpers"
)

func summarize(t *testing.T, body habitat.SolarBody, names ...string) *habitat.Summary {
	t.Helper()
	engine, err := habitat.NewEngine(helpers.FixtureStaticCatalog(), nil)
	require.NoError(t, err)
	modules := make([]*habitat.Module, 0, len(names))
	for _, n := range names {
		m := helpers.FixtureModule(n)
		require.NotNil(t, m, n)
		modules = append(modules, m)
	}
	return engine.Compute(modules, habitat.SiteContext{Body: body, Type: habitat.Station})
}

func lineValue(lines []display.Line, key string) (string, bool) {
	for _, l := range lines {
		if l.Key == key {
			return l.Value, true
		}
	}
	return "", false
}

func TestStatLines(t *testing.T) {
	// Arrange
	summary := summarize(t, habitat.EarthLEO, "Outpost", "TradeHub", "Nanofactory", "AntimatterCollider", "Shipyard")

	// Act
	lines := display.StatLines(summary)

	// Assert
	money, ok := lineValue(lines, "incomeMoney_month")
	require.True(t, ok)
	assert.Equal(t, "4", money)

	antimatter, _ := lineValue(lines, "incomeAntimatter_month")
	assert.Equal(t, "2.5µ", antimatter)

	projects, _ := lineValue(lines, "incomeProjects")
	assert.Equal(t, "5%", projects)

	bonus, ok := lineValue(lines, "CanFoundHabs")
	require.True(t, ok)
	assert.Equal(t, "25%", bonus)

	metals, _ := lineValue(lines, "metals")
	assert.Equal(t, "-1", metals)

	_, ok = lineValue(lines, "money")
	assert.False(t, ok, "money upkeep is netted into income")
	_, ok = lineValue(lines, "fissiles")
	assert.False(t, ok, "zero upkeep is hidden")
	_, ok = lineValue(lines, "allowsShipConstruction")
	assert.True(t, ok)
}

func TestStatLines_MoneyAlwaysShown(t *testing.T) {
	summary := summarize(t, habitat.Mars, "SolarCollector")

	money, ok := lineValue(display.StatLines(summary), "incomeMoney_month")

	assert.True(t, ok)
	assert.Equal(t, "0", money)
}

func TestBonusSections(t *testing.T) {
	summary := summarize(t, habitat.EarthLEO, "EconomicsLab", "Nanofactory", "MilitaryScienceLab", "LifeScienceLab")

	tech := display.TechBonusSection(summary)
	leo := display.LeoBonusSection(summary)

	require.NotNil(t, tech)
	assert.Equal(t, []display.Line{
		{Key: "Economy", Label: "Economy", Value: "4%"},
		{Key: "Military", Label: "Military", Value: "1%"},
		{Key: "Welfare", Label: "Welfare", Value: "3%"},
	}, tech.Lines)

	require.NotNil(t, leo)
	assert.Equal(t, []display.Line{
		{Key: "Economy", Label: "Economy", Value: "2% (Max: 30%)"},
		{Key: "Miltech", Label: "Miltech", Value: "0.03 (Max: 0.3)"},
		{Key: "Welfare", Label: "Welfare", Value: "3% (Max: 30%)"},
	}, leo.Lines)

	away := summarize(t, habitat.Mars, "TradeHub")
	assert.Nil(t, display.TechBonusSection(away))
	assert.Nil(t, display.LeoBonusSection(away))
}

func TestResourceList(t *testing.T) {
	got := display.ResourceList(habitat.ResourceMap{habitat.Metals: 100, habitat.Water: 2.346})

	assert.Equal(t, "Water 2.35, Volatiles 0, Metals 100, Noble Metals 0, Fissiles 0", got)
}

func TestRender_BaseIncludesSite(t *testing.T) {
	state, err := habitat.NewHabitatState(helpers.FixtureModule("Settlement"), habitat.Mars)
	require.NoError(t, err)
	state, err = state.WithSiteYield(habitat.Fissiles, 1)
	require.NoError(t, err)
	engine, err := habitat.NewEngine(helpers.FixtureStaticCatalog(), nil)
	require.NoError(t, err)

	report := display.Render(state.WithName("Tharsis"), engine.Summarize(state))

	assert.Equal(t, "Tharsis", report.Name)
	assert.Equal(t, "Water 0, Volatiles 0, Metals 0, Noble Metals 0, Fissiles 1", report.Site)
	assert.NotEmpty(t, report.Stats)
}

func TestTooltip(t *testing.T) {
	t.Run("empty cell", func(t *testing.T) {
		assert.Equal(t, display.EmptyCellTooltip, display.Tooltip(nil, nil))
	})

	t.Run("consumer with crew upkeep", func(t *testing.T) {
		expected := "Hydroponics Bay\n" +
			"Tier 1 module, 6 crew, 500 tons\n\n" +
			"Monthly Incomes and Bonuses:\n\n" +
			"Monthly Support Costs:\n" +
			"Power: -10, Water: -0.2, Volatiles: -0.2"

		assert.Equal(t, expected, display.Tooltip(helpers.FixtureModule("HydroponicsBay"), nil))
	})

	t.Run("incomes and tech bonuses", func(t *testing.T) {
		expected := "Economics Lab\n" +
			"Tier 1 module, 10 crew, 400 tons\n\n" +
			"Monthly Incomes and Bonuses:\n" +
			"Research: 4, Economy: 2%\n" +
			"Monthly Support Costs:\n" +
			"Power: -5, Water: -0.3, Volatiles: -0.3"

		assert.Equal(t, expected, display.Tooltip(helpers.FixtureModule("EconomicsLab"), habitat.DefaultRules()))
	})

	t.Run("money upkeep listed first", func(t *testing.T) {
		expected := "Shipyard\n" +
			"Tier 2 module, 40 crew, 3000 tons\n\n" +
			"Monthly Incomes and Bonuses:\n\n" +
			"Monthly Support Costs:\n" +
			"Power: -30, Money: -6, Water: -1.2, Volatiles: -1.2, Metals: -1"

		assert.Equal(t, expected, display.Tooltip(helpers.FixtureModule("Shipyard"), nil))
	})
}

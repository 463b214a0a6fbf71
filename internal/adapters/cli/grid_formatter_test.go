package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/test/helpers"
)

func TestGridFormatter_FormatGrid(t *testing.T) {
	// Arrange
	core := helpers.FixtureModule("Settlement")
	state, err := habitat.NewHabitatState(core, habitat.Mars)
	require.NoError(t, err)
	state, err = state.WithModule(habitat.CellLabel{Row: 1, Col: 2}, helpers.FixtureModule("NanofacturingComplex"), helpers.FixtureModule("Citadel"))
	require.NoError(t, err)

	// Act
	plain := NewGridFormatter(false).FormatGrid(state)
	colored := NewGridFormatter(true).FormatGrid(state)

	// Assert
	lines := strings.Split(strings.TrimSuffix(plain, "\n"), "\n")
	require.Len(t, lines, 3)
	blank := strings.Repeat(" ", 16)
	assert.Equal(t, blank+blank+blank+"[mine          ]", lines[0])
	assert.Equal(t, blank+blank+"[Nanofacturing~][Settlement    ][.             ]", lines[1])
	assert.NotContains(t, plain, "\033[")
	assert.Contains(t, colored, colorCore+"[Settlement    ]"+colorReset)
}

func TestGridFormatter_FormatReport(t *testing.T) {
	r := display.Report{
		Name:       "Gateway",
		BuildCosts: "Water 0",
		Stats: []display.Line{
			{Key: "crew", Label: "Crew", Value: "10"},
			{Key: "incomeMoney_month", Label: "Money", Value: "-2"},
		},
		Tech:    &display.Section{Title: "Tech Bonuses", Note: "Diminished past 50%", Lines: []display.Line{{Label: "Economy", Value: "2%"}}},
		Unknown: []string{"Ghost"},
	}

	out := NewGridFormatter(false).FormatReport(r)

	assert.Contains(t, out, "Gateway\n\n")
	assert.Contains(t, out, "  Crew   10\n  Money  -2\n")
	assert.Contains(t, out, "Tech Bonuses (Diminished past 50%)\n  Economy: 2%\n")
	assert.Contains(t, out, "Unknown modules (ignored): Ghost")
	assert.NotContains(t, out, "Site Resources")
}

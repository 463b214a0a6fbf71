package display_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value     float64
		precision int
		expected  string
	}{
		{2, 1, "2"},
		{2.04, 1, "2"},
		{1.25, 1, "1.2"},
		{1.35, 1, "1.4"},
		{-3.5, 1, "-3.5"},
		{0.05, 1, "0.1"},
		{0.15, 1, "0.1"},
		{1234.56, 1, "1234.6"},
		{-0.04, 1, "0"},
		{10.0 / 3, 1, "3.3"},
		{1.005, 2, "1"},
		{0.125, 2, "0.12"},
		{0, 1, "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, display.FormatNumber(tt.value, tt.precision), "FormatNumber(%v, %d)", tt.value, tt.precision)
	}
}

func TestFormatAntimatter(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0.25, "0.25"},
		{1.5, "1.5"},
		{0.0123, ".012"},
		{0.001, ".001"},
		{2.5e-6, "2.5µ"},
		{5e-4, "500µ"},
		{0.00099999, "999.99µ"},
		{3e-10, "300p"},
		{4.2e-13, "420f"},
		{1.5e-19, "0.15a"},
		{0, "0"},
		{-0.5, "-0.5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, display.FormatAntimatter(tt.value), "FormatAntimatter(%v)", tt.value)
	}
}

func TestPercentHelpers(t *testing.T) {
	assert.Equal(t, "4%", display.Percent(0.04))
	assert.Equal(t, "12.5%", display.Percent(0.125))
	assert.Equal(t, "5%", display.ProjectsPercent(1))
	assert.Equal(t, "27%", display.ConstructionBonusPercent(0.268))
	assert.Equal(t, "44%", display.ConstructionBonusPercent(0.4375))
	assert.Equal(t, "50%", display.ConstructionBonusPercent(0.5))
}

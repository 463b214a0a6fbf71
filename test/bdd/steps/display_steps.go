package steps

import (
	"context"
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/test/helpers"
	"github.com/cucumber/godog"
)

type displayContext struct {
	lines []display.Line
}

func (dc *displayContext) reset() {
	dc.lines = nil
}

func (dc *displayContext) theNumberFormattedWithPrecisionShouldBe(value float64, precision int, expected string) error {
	if got := display.FormatNumber(value, precision); got != expected {
		return fmt.Errorf("FormatNumber(%v, %d): expected %q, got %q", value, precision, expected, got)
	}
	return nil
}

func (dc *displayContext) antimatterIncomeOfShouldRead(value float64, expected string) error {
	if got := display.FormatAntimatter(value); got != expected {
		return fmt.Errorf("FormatAntimatter(%v): expected %q, got %q", value, expected, got)
	}
	return nil
}

func (dc *displayContext) theStatLinesAreRendered() error {
	if sharedSummary == nil {
		return fmt.Errorf("no summary computed")
	}
	dc.lines = display.StatLines(sharedSummary)
	return nil
}

func (dc *displayContext) theStatLinesShouldBe(table *godog.Table) error {
	expected := len(table.Rows) - 1
	if len(dc.lines) != expected {
		return fmt.Errorf("expected %d stat lines, got %d: %v", expected, len(dc.lines), dc.lines)
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		line := dc.lines[i-1]
		label := getCellValue(table, row, "label")
		value := getCellValue(table, row, "value")
		if line.Label != label || line.Value != value {
			return fmt.Errorf("line %d: expected %s %s, got %s %s", i, label, value, line.Label, line.Value)
		}
	}
	return nil
}

func (dc *displayContext) findLine(label string) (display.Line, bool) {
	for _, l := range dc.lines {
		if l.Label == label {
			return l, true
		}
	}
	return display.Line{}, false
}

func (dc *displayContext) theStatLineShouldRead(label, expected string) error {
	line, ok := dc.findLine(label)
	if !ok {
		return fmt.Errorf("stat line %q not shown", label)
	}
	if line.Value != expected {
		return fmt.Errorf("stat line %q: expected %q, got %q", label, expected, line.Value)
	}
	return nil
}

func (dc *displayContext) theStatLineShouldNotBeShown(label string) error {
	if line, ok := dc.findLine(label); ok {
		return fmt.Errorf("stat line %q should be hidden, got %q", label, line.Value)
	}
	return nil
}

func (dc *displayContext) theTooltipOfShouldBe(name string, doc *godog.DocString) error {
	m := helpers.FixtureModule(name)
	if m == nil {
		return fmt.Errorf("fixture module %q does not exist", name)
	}
	if got := display.Tooltip(m, habitat.DefaultRules()); got != doc.Content {
		return fmt.Errorf("tooltip of %s:\nexpected:\n%s\ngot:\n%s", name, doc.Content, got)
	}
	return nil
}

func (dc *displayContext) anEmptyCellTooltipShouldRead(expected string) error {
	if got := display.Tooltip(nil, nil); got != expected {
		return fmt.Errorf("expected %q, got %q", expected, got)
	}
	return nil
}

func InitializeDisplayScenario(sc *godog.ScenarioContext) {
	dc := &displayContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		dc.reset()
		return ctx, nil
	})

	sc.Step(`^the number (-?[0-9.eE+-]+) formatted with precision (\d+) should be "([^"]*)"$`, dc.theNumberFormattedWithPrecisionShouldBe)
	sc.Step(`^antimatter income of ([0-9.eE+-]+) should read "([^"]*)"$`, dc.antimatterIncomeOfShouldRead)
	sc.Step(`^the stat lines are rendered$`, dc.theStatLinesAreRendered)
	sc.Step(`^the stat lines should be:$`, dc.theStatLinesShouldBe)
	sc.Step(`^the stat line "([^"]*)" should read "([^"]*)"$`, dc.theStatLineShouldRead)
	sc.Step(`^the stat line "([^"]*)" should not be shown$`, dc.theStatLineShouldNotBeShown)
	sc.Step(`^the tooltip of "([^"]*)" should be:$`, dc.theTooltipOfShouldBe)
	sc.Step(`^an empty cell tooltip should read "([^"]*)"$`, dc.anEmptyCellTooltipShouldRead)
}

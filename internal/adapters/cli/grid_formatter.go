package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/display"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

const (
	colorReset = "\033[0m"
	colorCore  = "\033[1;36m"
	colorMine  = "\033[33m"
	colorEmpty = "\033[90m"
)

// GridFormatter renders a habitat layout and its stats report as text
type GridFormatter struct {
	useColors bool
	cellWidth int
}

// NewGridFormatter creates a new grid formatter
func NewGridFormatter(useColors bool) *GridFormatter {
	return &GridFormatter{
		useColors: useColors,
		cellWidth: 14,
	}
}

// FormatGrid draws the slot layout, one bracketed cell per slot
func (f *GridFormatter) FormatGrid(state habitat.HabitatState) string {
	cells := state.Cells()
	if len(cells) == 0 {
		return "(empty habitat)\n"
	}

	maxRow, maxCol := 0, 0
	byLabel := make(map[habitat.CellLabel]habitat.Cell, len(cells))
	for _, c := range cells {
		byLabel[c.Label] = c.Cell
		if c.Label.Row > maxRow {
			maxRow = c.Label.Row
		}
		if c.Label.Col > maxCol {
			maxCol = c.Label.Col
		}
	}

	var b strings.Builder
	for row := 0; row <= maxRow; row++ {
		var line strings.Builder
		for col := 0; col <= maxCol; col++ {
			cell, ok := byLabel[habitat.CellLabel{Row: row, Col: col}]
			if !ok {
				line.WriteString(strings.Repeat(" ", f.cellWidth+2))
				continue
			}
			line.WriteString(f.formatCell(cell))
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}
	return b.String()
}

func (f *GridFormatter) formatCell(cell habitat.Cell) string {
	text := cell.Module
	color := ""
	switch {
	case cell.Type == habitat.CellCore:
		color = colorCore
	case text == "" && cell.Type == habitat.CellMining:
		text = "mine"
		color = colorEmpty
	case text == "":
		text = "."
		color = colorEmpty
	case cell.Type == habitat.CellMining:
		color = colorMine
	}
	if len(text) > f.cellWidth {
		text = text[:f.cellWidth-1] + "~"
	}
	padded := fmt.Sprintf("[%-*s]", f.cellWidth, text)
	if !f.useColors || color == "" {
		return padded
	}
	return color + padded + colorReset
}

// FormatReport renders the stats block and optional sections
func (f *GridFormatter) FormatReport(r display.Report) string {
	var b strings.Builder
	if r.Name != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Name)
	}
	if r.Site != "" {
		fmt.Fprintf(&b, "Site Resources: %s\n", r.Site)
	}
	fmt.Fprintf(&b, "Build Costs:    %s\n\n", r.BuildCosts)

	width := 0
	for _, l := range r.Stats {
		if len(l.Label) > width {
			width = len(l.Label)
		}
	}
	for _, l := range r.Stats {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, l.Label, l.Value)
	}

	for _, sec := range []*display.Section{r.Tech, r.Leo} {
		if sec == nil {
			continue
		}
		fmt.Fprintf(&b, "\n%s", sec.Title)
		if sec.Note != "" {
			fmt.Fprintf(&b, " (%s)", sec.Note)
		}
		b.WriteString("\n")
		for _, l := range sec.Lines {
			fmt.Fprintf(&b, "  %s: %s\n", l.Label, l.Value)
		}
	}

	if len(r.Unknown) > 0 {
		fmt.Fprintf(&b, "\n⚠️  Unknown modules (ignored): %s\n", strings.Join(r.Unknown, ", "))
	}
	return b.String()
}

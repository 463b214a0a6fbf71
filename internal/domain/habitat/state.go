package habitat

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// CellType is the kind of slot at a grid position
type CellType int

const (
	CellNone   CellType = 0
	CellModule CellType = 1
	CellCore   CellType = 2
	CellMining CellType = 3
)

// IsValid reports whether t is a placeable cell kind
func (t CellType) IsValid() bool {
	return t == CellModule || t == CellCore || t == CellMining
}

// CellLabel is a grid coordinate, serialised as "<row>_<col>"
type CellLabel struct {
	Row int
	Col int
}

func (l CellLabel) String() string {
	return fmt.Sprintf("%d_%d", l.Row, l.Col)
}

// ParseCellLabel parses "<row>_<col>"
func ParseCellLabel(s string) (CellLabel, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 2 {
		return CellLabel{}, fmt.Errorf("cell label %q: expected <row>_<col>", s)
	}
	row, err := strconv.Atoi(parts[0])
	if err != nil || row < 0 {
		return CellLabel{}, fmt.Errorf("cell label %q: invalid row", s)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil || col < 0 {
		return CellLabel{}, fmt.Errorf("cell label %q: invalid column", s)
	}
	return CellLabel{Row: row, Col: col}, nil
}

func (l CellLabel) less(o CellLabel) bool {
	if l.Row != o.Row {
		return l.Row < o.Row
	}
	return l.Col < o.Col
}

// Cell is one grid slot. An empty Module means nothing is installed.
type Cell struct {
	Type   CellType
	Module string
}

// LabeledCell pairs a cell with its position
type LabeledCell struct {
	Label CellLabel
	Cell
}

// Layouts holds the slot grids per habitat type and core tier
var Layouts = map[HabitatType]map[int][][]CellType{
	Station: {
		1: {
			{0, 0, 0, 1, 0, 0, 0},
			{0, 0, 1, 2, 1, 0, 0},
			{0, 0, 0, 1, 0, 0, 0},
		},
		2: {
			{1, 0, 0, 1, 0, 0, 1},
			{1, 1, 1, 2, 1, 1, 1},
			{1, 0, 0, 1, 0, 0, 1},
		},
		3: {
			{0, 0, 1, 1, 1, 0, 0},
			{0, 0, 0, 1, 0, 0, 0},
			{1, 0, 0, 1, 0, 0, 1},
			{1, 1, 1, 2, 1, 1, 1},
			{1, 0, 0, 1, 0, 0, 1},
			{0, 0, 0, 1, 0, 0, 0},
			{0, 0, 1, 1, 1, 0, 0},
		},
	},
	Base: {
		1: {
			{0, 0, 0, 3, 0, 0, 0},
			{0, 0, 1, 2, 1, 0, 0},
			{0, 0, 0, 1, 0, 0, 0},
		},
		2: {
			{1, 0, 0, 3, 0, 0, 1},
			{1, 1, 1, 2, 1, 1, 1},
			{1, 0, 0, 1, 0, 0, 1},
		},
		3: {
			{1, 0, 0, 3, 0, 0, 1},
			{1, 1, 1, 2, 1, 1, 1},
			{1, 0, 0, 1, 0, 0, 1},
			{0, 1, 0, 0, 0, 1, 0},
			{1, 1, 1, 0, 1, 1, 1},
		},
	},
}

// HabitatStateData is the plain form of a habitat used to build or restore a
// HabitatState.
type HabitatStateData struct {
	Cells map[CellLabel]Cell
	Core  string
	Tier  int
	Type  HabitatType
	Body  SolarBody
	Name  string
	Site  ResourceMap
}

// HabitatState is an immutable placed habitat. Every With* method returns a
// new state and leaves the receiver untouched.
type HabitatState struct {
	cells map[CellLabel]Cell
	core  string
	tier  int
	typ   HabitatType
	body  SolarBody
	name  string
	site  ResourceMap
}

// NewHabitatState lays out an empty habitat around core
func NewHabitatState(core *Module, body SolarBody) (HabitatState, error) {
	if core == nil || !core.CoreModule {
		return HabitatState{}, shared.NewInvalidHabitatError("a core module is required")
	}
	typ, ok := HabitatTypeFromHabType(core.HabType)
	if !ok {
		return HabitatState{}, shared.NewInvalidHabitatError(fmt.Sprintf("core %s has unknown habType %q", core.DataName, core.HabType))
	}
	return RestoreHabitatState(HabitatStateData{
		Core: core.DataName,
		Tier: core.Tier,
		Type: typ,
		Body: body,
	})
}

// RestoreHabitatState validates data and builds a state from it. Every cell
// in data must sit on the layout with the layout's type. Layout cells missing
// from data are added empty; the core cell always holds the core.
func RestoreHabitatState(data HabitatStateData) (HabitatState, error) {
	if !data.Type.IsValid() {
		return HabitatState{}, shared.NewInvalidHabitatError(fmt.Sprintf("unknown habitat type %q", data.Type))
	}
	layout, ok := Layouts[data.Type][data.Tier]
	if !ok {
		return HabitatState{}, shared.NewInvalidHabitatError(fmt.Sprintf("tier %d is not available for %s habitats", data.Tier, data.Type))
	}
	if data.Core == "" {
		return HabitatState{}, shared.NewInvalidHabitatError("core is required")
	}

	cells := make(map[CellLabel]Cell, len(data.Cells))
	for label, cell := range data.Cells {
		if !cell.Type.IsValid() {
			return HabitatState{}, shared.NewInvalidHabitatError(fmt.Sprintf("cell %s has invalid type %d", label, cell.Type))
		}
		want := layoutCellType(layout, label)
		if want == CellNone {
			return HabitatState{}, shared.NewInvalidHabitatError(fmt.Sprintf("cell %s is not on the tier %d %s layout", label, data.Tier, data.Type))
		}
		if cell.Type != want {
			return HabitatState{}, shared.NewInvalidHabitatError(fmt.Sprintf("cell %s has type %d, layout expects %d", label, cell.Type, want))
		}
		cells[label] = cell
	}
	for row, cols := range layout {
		for col, ct := range cols {
			if ct == CellNone {
				continue
			}
			label := CellLabel{Row: row, Col: col}
			cell, exists := cells[label]
			if !exists {
				cell = Cell{Type: ct}
			}
			if ct == CellCore {
				cell.Module = data.Core
			}
			cells[label] = cell
		}
	}

	site := NewResourceMap()
	for r, v := range data.Site {
		if v < 0 {
			return HabitatState{}, shared.NewInvalidHabitatError(fmt.Sprintf("site yield for %s is negative", r))
		}
		site[r] = v
	}

	return HabitatState{
		cells: cells,
		core:  data.Core,
		tier:  data.Tier,
		typ:   data.Type,
		body:  data.Body,
		name:  data.Name,
		site:  site,
	}, nil
}

func layoutCellType(layout [][]CellType, l CellLabel) CellType {
	if l.Row >= len(layout) || l.Col >= len(layout[l.Row]) {
		return CellNone
	}
	return layout[l.Row][l.Col]
}

// Data returns an independent plain copy of the state
func (s HabitatState) Data() HabitatStateData {
	cells := make(map[CellLabel]Cell, len(s.cells))
	for k, v := range s.cells {
		cells[k] = v
	}
	return HabitatStateData{
		Cells: cells,
		Core:  s.core,
		Tier:  s.tier,
		Type:  s.typ,
		Body:  s.body,
		Name:  s.name,
		Site:  s.site.Clone(),
	}
}

func (s HabitatState) Core() string      { return s.core }
func (s HabitatState) Tier() int         { return s.tier }
func (s HabitatState) Type() HabitatType { return s.typ }
func (s HabitatState) Body() SolarBody   { return s.body }
func (s HabitatState) Name() string      { return s.name }
func (s HabitatState) Site() ResourceMap { return s.site.Clone() }

// IsZero reports whether s was never initialised
func (s HabitatState) IsZero() bool {
	return s.cells == nil
}

// Cell returns the cell at label
func (s HabitatState) Cell(label CellLabel) (Cell, bool) {
	c, ok := s.cells[label]
	return c, ok
}

// Cells returns every cell ordered by row then column
func (s HabitatState) Cells() []LabeledCell {
	out := make([]LabeledCell, 0, len(s.cells))
	for label, cell := range s.cells {
		out = append(out, LabeledCell{Label: label, Cell: cell})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label.less(out[j].Label) })
	return out
}

// Modules returns installed module names in grid order, core included
func (s HabitatState) Modules() []string {
	var names []string
	for _, c := range s.Cells() {
		if c.Module != "" {
			names = append(names, c.Module)
		}
	}
	return names
}

// ModuleAt returns the module name installed at label, or ""
func (s HabitatState) ModuleAt(label CellLabel) string {
	return s.cells[label].Module
}

// WithModule installs m at label after checking the cell accepts it
func (s HabitatState) WithModule(label CellLabel, m *Module, core *Module) (HabitatState, error) {
	cell, ok := s.cells[label]
	if !ok {
		return s, shared.NewCellNotEditableError(label.String(), "no such cell")
	}
	if cell.Type == CellCore {
		return s, shared.NewCellNotEditableError(label.String(), "core cell")
	}
	if !m.FitsCore(core) {
		return s, shared.NewModuleNotAllowedError(label.String(), m.DataName,
			fmt.Sprintf("requires habType %s or Any, tier <= %d, non-core", core.HabType, core.Tier))
	}
	if cell.Type == CellMining && !m.Mine {
		return s, shared.NewModuleNotAllowedError(label.String(), m.DataName, "mining cells only take mines")
	}
	next := s.clone()
	next.cells[label] = Cell{Type: cell.Type, Module: m.DataName}
	return next, nil
}

// WithoutModule clears label
func (s HabitatState) WithoutModule(label CellLabel) (HabitatState, error) {
	cell, ok := s.cells[label]
	if !ok {
		return s, shared.NewCellNotEditableError(label.String(), "no such cell")
	}
	if cell.Type == CellCore {
		return s, shared.NewCellNotEditableError(label.String(), "core cell")
	}
	next := s.clone()
	next.cells[label] = Cell{Type: cell.Type}
	return next, nil
}

// WithBody moves the habitat to another solar body
func (s HabitatState) WithBody(body SolarBody) HabitatState {
	next := s.clone()
	next.body = body
	return next
}

// WithName renames the habitat
func (s HabitatState) WithName(name string) HabitatState {
	next := s.clone()
	next.name = name
	return next
}

// WithSiteYield sets the declared site yield for one resource
func (s HabitatState) WithSiteYield(r Resource, amount float64) (HabitatState, error) {
	if amount < 0 {
		return s, shared.NewValidationError(string(r), "site yield cannot be negative")
	}
	next := s.clone()
	next.site[r] = amount
	return next, nil
}

func (s HabitatState) clone() HabitatState {
	d := s.Data()
	if d.Site == nil {
		d.Site = NewResourceMap()
	}
	return HabitatState{
		cells: d.Cells,
		core:  d.Core,
		tier:  d.Tier,
		typ:   d.Type,
		body:  d.Body,
		name:  d.Name,
		site:  d.Site,
	}
}

package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// Line is one rendered statistic
type Line struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section groups lines under a heading
type Section struct {
	Title string `json:"title"`
	Note  string `json:"note,omitempty"`
	Lines []Line `json:"lines"`
}

var resourceLabels = map[habitat.Resource]string{
	habitat.Water:       "Water",
	habitat.Volatiles:   "Volatiles",
	habitat.Metals:      "Metals",
	habitat.NobleMetals: "Noble Metals",
	habitat.Fissiles:    "Fissiles",
	habitat.Money:       "Money",
}

// ResourceLabel returns the display name of r
func ResourceLabel(r habitat.Resource) string {
	if l, ok := resourceLabels[r]; ok {
		return l
	}
	return string(r)
}

// StatLines renders the habitat stats block. Zero values are hidden except
// money, which is always shown net of its upkeep.
func StatLines(s *habitat.Summary) []Line {
	t := s.Totals
	var lines []Line
	add := func(key, label string, v float64, value string) {
		if v == 0 {
			return
		}
		lines = append(lines, Line{Key: key, Label: label, Value: value})
	}

	add("crew", "Crew", t.Crew, Number(t.Crew))
	add("power", "Power", t.Power, Number(t.Power))
	lines = append(lines, Line{Key: "incomeMoney_month", Label: "Money", Value: Number(s.NetMoney)})
	add("incomeInfluence_month", "Influence", t.IncomeInfluence, Number(t.IncomeInfluence))
	add("incomeOps_month", "Ops", t.IncomeOps, Number(t.IncomeOps))
	add("incomeResearch_month", "Research", t.IncomeResearch, Number(t.IncomeResearch))
	add("incomeProjects", "Projects", t.IncomeProjects, ProjectsPercent(t.IncomeProjects))
	add("missionControl", "Mission Control", t.MissionControl, Number(t.MissionControl))

	for _, r := range s.NetUpkeep.Keys() {
		// upkeep is shown as a signed flow: consumption negative
		v := -s.NetUpkeep[r]
		add(string(r), ResourceLabel(r), v, Number(v))
	}

	add("incomeAntimatter_month", "Antimatter", t.IncomeAntimatter, FormatAntimatter(t.IncomeAntimatter))
	if t.AllowsResupply {
		lines = append(lines, Line{Key: "allowsResupply", Label: "Allows Resupply", Value: "yes"})
	}
	if t.CanFoundHabs {
		lines = append(lines, Line{Key: "CanFoundHabs", Label: "Construction Bonus", Value: ConstructionBonusPercent(s.ConstructionBonus)})
	}
	if t.AllowsShipConstruction {
		lines = append(lines, Line{Key: "allowsShipConstruction", Label: "Allows Ship Construction", Value: "yes"})
	}
	add("spaceCombatValue", "Space Combat Value", t.SpaceCombatValue, Number(t.SpaceCombatValue))
	return lines
}

// TechBonusSection renders summed tech bonuses as percentages, or nil when empty
func TechBonusSection(s *habitat.Summary) *Section {
	if len(s.Totals.TechBonuses) == 0 {
		return nil
	}
	sec := &Section{Title: "Tech Bonuses", Note: "Diminished past 50%"}
	for _, cat := range sortedKeys(s.Totals.TechBonuses) {
		sec.Lines = append(sec.Lines, Line{Key: cat, Label: cat, Value: Percent(s.Totals.TechBonuses[cat])})
	}
	return sec
}

// LeoBonusSection renders LEO bonuses with their in-game caps, or nil when empty
func LeoBonusSection(s *habitat.Summary) *Section {
	if len(s.Totals.LeoBonuses) == 0 {
		return nil
	}
	sec := &Section{Title: "LEO Bonuses"}
	for _, cat := range sortedKeys(s.Totals.LeoBonuses) {
		sec.Lines = append(sec.Lines, Line{Key: cat, Label: cat, Value: leoBonusValue(cat, s.Totals.LeoBonuses[cat])})
	}
	return sec
}

func leoBonusValue(category string, v float64) string {
	switch category {
	case "Miltech":
		return Raw(v) + " (Max: 0.3)"
	case "Public Campaign", "Alien Detection":
		return Raw(v) + " (Max: 9)"
	}
	return Raw(v) + "% (Max: 30%)"
}

// ResourceList renders a per-material listing such as site resources or build costs
func ResourceList(m habitat.ResourceMap) string {
	parts := make([]string, 0, len(habitat.MaterialResources))
	for _, r := range habitat.MaterialResources {
		parts = append(parts, fmt.Sprintf("%s %s", ResourceLabel(r), FormatNumber(m.Get(r), 2)))
	}
	return strings.Join(parts, ", ")
}

// Report is the complete rendered summary
type Report struct {
	Name       string   `json:"name,omitempty"`
	Site       string   `json:"site,omitempty"`
	BuildCosts string   `json:"build_costs"`
	Stats      []Line   `json:"stats"`
	Tech       *Section `json:"tech,omitempty"`
	Leo        *Section `json:"leo,omitempty"`
	Unknown    []string `json:"unknown_modules,omitempty"`
}

// Render builds a Report for state and its summary
func Render(state habitat.HabitatState, s *habitat.Summary) Report {
	r := Report{
		Name:       state.Name(),
		BuildCosts: ResourceList(s.Totals.WeightedBuildMaterials),
		Stats:      StatLines(s),
		Tech:       TechBonusSection(s),
		Leo:        LeoBonusSection(s),
		Unknown:    s.UnknownModules,
	}
	if state.Type() == habitat.Base {
		r.Site = ResourceList(state.Site())
	}
	return r
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package display

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// EmptyCellTooltip is shown for cells without a module
const EmptyCellTooltip = "Empty Module"

type tooltipIncome struct {
	label string
	value func(m *habitat.Module) float64
	raw   bool
}

var tooltipIncomes = []tooltipIncome{
	{label: "Power", value: func(m *habitat.Module) float64 { return m.Power }},
	{label: "Research", value: func(m *habitat.Module) float64 { return m.IncomeResearch }},
	{label: "Mission Control", value: func(m *habitat.Module) float64 { return m.MissionControl }},
	{label: "Money", value: func(m *habitat.Module) float64 { return m.IncomeMoney }},
	{label: "Antimatter", value: func(m *habitat.Module) float64 { return m.IncomeAntimatter }, raw: true},
	{label: "Projects", value: func(m *habitat.Module) float64 { return m.IncomeProjects }},
	{label: "Influence", value: func(m *habitat.Module) float64 { return m.IncomeInfluence }},
	{label: "Ops", value: func(m *habitat.Module) float64 { return m.IncomeOps }},
}

var tooltipCostOrder = []habitat.Resource{
	habitat.Money,
	habitat.Water,
	habitat.Volatiles,
	habitat.Metals,
	habitat.NobleMetals,
	habitat.Fissiles,
}

// Tooltip describes one module: positive incomes, tech bonuses and monthly
// support costs including crew upkeep.
func Tooltip(m *habitat.Module, rules *habitat.Rules) string {
	if m == nil {
		return EmptyCellTooltip
	}
	if rules == nil {
		rules = habitat.DefaultRules()
	}

	var incomes []string
	for _, inc := range tooltipIncomes {
		v := inc.value(m)
		if v <= 0 {
			continue
		}
		s := Number(v)
		if inc.raw {
			s = Raw(v)
		}
		incomes = append(incomes, fmt.Sprintf("%s: %s", inc.label, s))
	}
	for _, tb := range m.TechBonuses {
		incomes = append(incomes, fmt.Sprintf("%s: %s%%", tb.Category, Number(tb.Bonus*100)))
	}

	costs := m.SupportMaterials.Clone()
	if costs == nil {
		costs = make(habitat.ResourceMap)
	}
	for res, rate := range rules.PopUpkeep {
		costs.Add(res, m.Crew*rate)
	}
	var power string
	if m.Power < 0 {
		power = fmt.Sprintf("Power: %s, ", Number(m.Power))
	}
	var support []string
	for _, r := range tooltipCostOrder {
		if v := costs[r]; v != 0 {
			support = append(support, fmt.Sprintf("%s: -%s", ResourceLabel(r), Number(v)))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.FriendlyName)
	fmt.Fprintf(&b, "Tier %d module, %s crew, %s tons\n\n", m.Tier, Raw(m.Crew), Raw(m.BaseMassTons))
	fmt.Fprintf(&b, "Monthly Incomes and Bonuses:\n%s\n", strings.Join(incomes, ", "))
	fmt.Fprintf(&b, "Monthly Support Costs:\n%s%s", power, strings.Join(support, ", "))
	return b.String()
}

package habitat

import "sort"

// Field enumerates every entry of Totals. Each field has exactly one
// accumulation rule in accumulationRules.
type Field int

const (
	FieldCrew Field = iota
	FieldBaseMass
	FieldPower
	FieldIncomeMoney
	FieldIncomeInfluence
	FieldIncomeOps
	FieldIncomeResearch
	FieldIncomeProjects
	FieldMissionControl
	FieldSupportMaterials
	FieldIncomeAntimatter
	FieldAllowsResupply
	FieldCanFoundHabs
	FieldAllowsShipConstruction
	FieldSpaceCombatValue
	FieldTechBonuses
	FieldLeoBonuses
	FieldWeightedBuildMaterials

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldCrew:                   "crew",
	FieldBaseMass:               "baseMass_tons",
	FieldPower:                  "power",
	FieldIncomeMoney:            "incomeMoney_month",
	FieldIncomeInfluence:        "incomeInfluence_month",
	FieldIncomeOps:              "incomeOps_month",
	FieldIncomeResearch:         "incomeResearch_month",
	FieldIncomeProjects:         "incomeProjects",
	FieldMissionControl:         "missionControl",
	FieldSupportMaterials:       "supportMaterials_month",
	FieldIncomeAntimatter:       "incomeAntimatter_month",
	FieldAllowsResupply:         "allowsResupply",
	FieldCanFoundHabs:           "CanFoundHabs",
	FieldAllowsShipConstruction: "allowsShipConstruction",
	FieldSpaceCombatValue:       "spaceCombatValue",
	FieldTechBonuses:            "techBonuses",
	FieldLeoBonuses:             "leoBonuses",
	FieldWeightedBuildMaterials: "weightedBuildMaterials",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// Fields returns every accumulated field in declaration order
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

type accumulationRule func(a *Accumulator, m *Module, t *Totals, body SolarBody)

var accumulationRules = [fieldCount]accumulationRule{
	FieldCrew:                   accumulateCrew,
	FieldBaseMass:               scalar(func(m *Module) float64 { return m.BaseMassTons }, func(t *Totals) *float64 { return &t.BaseMassTons }),
	FieldPower:                  accumulatePower,
	FieldIncomeMoney:            scalar(func(m *Module) float64 { return m.IncomeMoney }, func(t *Totals) *float64 { return &t.IncomeMoney }),
	FieldIncomeInfluence:        scalar(func(m *Module) float64 { return m.IncomeInfluence }, func(t *Totals) *float64 { return &t.IncomeInfluence }),
	FieldIncomeOps:              scalar(func(m *Module) float64 { return m.IncomeOps }, func(t *Totals) *float64 { return &t.IncomeOps }),
	FieldIncomeResearch:         scalar(func(m *Module) float64 { return m.IncomeResearch }, func(t *Totals) *float64 { return &t.IncomeResearch }),
	FieldIncomeProjects:         scalar(func(m *Module) float64 { return m.IncomeProjects }, func(t *Totals) *float64 { return &t.IncomeProjects }),
	FieldMissionControl:         scalar(func(m *Module) float64 { return m.MissionControl }, func(t *Totals) *float64 { return &t.MissionControl }),
	FieldSupportMaterials:       accumulateSupportMaterials,
	FieldIncomeAntimatter:       scalar(func(m *Module) float64 { return m.IncomeAntimatter }, func(t *Totals) *float64 { return &t.IncomeAntimatter }),
	FieldAllowsResupply:         flag(func(m *Module) bool { return m.AllowsResupply }, func(t *Totals) *bool { return &t.AllowsResupply }),
	FieldCanFoundHabs:           flag((*Module).CanFoundHabs, func(t *Totals) *bool { return &t.CanFoundHabs }),
	FieldAllowsShipConstruction: flag(func(m *Module) bool { return m.AllowsShipConstruction }, func(t *Totals) *bool { return &t.AllowsShipConstruction }),
	FieldSpaceCombatValue:       scalar(func(m *Module) float64 { return m.SpaceCombatValue }, func(t *Totals) *float64 { return &t.SpaceCombatValue }),
	FieldTechBonuses:            accumulateTechBonuses,
	FieldLeoBonuses:             accumulateLeoBonuses,
	FieldWeightedBuildMaterials: accumulateBuildMaterials,
}

// Accumulator folds module records into Totals using a rule table
type Accumulator struct {
	rules *Rules
}

// NewAccumulator creates an accumulator. A nil rules value selects DefaultRules.
func NewAccumulator(rules *Rules) *Accumulator {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Accumulator{rules: rules}
}

// Accumulate folds one module into t and returns t for chaining
func (a *Accumulator) Accumulate(m *Module, t *Totals, body SolarBody) *Totals {
	for _, rule := range accumulationRules {
		rule(a, m, t, body)
	}
	return t
}

// Fold accumulates every module into fresh totals
func (a *Accumulator) Fold(modules []*Module, body SolarBody) *Totals {
	t := NewTotals()
	for _, m := range modules {
		a.Accumulate(m, t, body)
	}
	return t
}

func scalar(get func(*Module) float64, field func(*Totals) *float64) accumulationRule {
	return func(_ *Accumulator, m *Module, t *Totals, _ SolarBody) {
		*field(t) += get(m)
	}
}

// flag rules are monotonic: once set they never reset
func flag(get func(*Module) bool, field func(*Totals) *bool) accumulationRule {
	return func(_ *Accumulator, m *Module, t *Totals, _ SolarBody) {
		if get(m) {
			*field(t) = true
		}
	}
}

func accumulateCrew(a *Accumulator, m *Module, t *Totals, _ SolarBody) {
	t.Crew += m.Crew
	for _, r := range sortedResources(a.rules.PopUpkeep) {
		t.SupportMaterials.Add(r, m.Crew*a.rules.PopUpkeep[r])
	}
}

func accumulatePower(a *Accumulator, m *Module, t *Totals, body SolarBody) {
	if m.HasVariableSolarOutput() {
		t.Power += m.Power * a.rules.SolarModifier(body)
		return
	}
	t.Power += m.Power
}

func accumulateSupportMaterials(_ *Accumulator, m *Module, t *Totals, _ SolarBody) {
	t.SupportMaterials.Merge(m.SupportMaterials)
}

func accumulateTechBonuses(_ *Accumulator, m *Module, t *Totals, _ SolarBody) {
	for _, tb := range m.TechBonuses {
		t.TechBonuses[tb.Category] += tb.Bonus
	}
}

func accumulateLeoBonuses(a *Accumulator, m *Module, t *Totals, body SolarBody) {
	if body != a.rules.LeoBody {
		return
	}
	bonus, ok := a.rules.LeoBonuses[m.FriendlyName]
	if !ok {
		return
	}
	t.LeoBonuses[bonus.Category] += bonus.Bonus
}

func accumulateBuildMaterials(a *Accumulator, m *Module, t *Totals, _ SolarBody) {
	if m.CoreModule {
		return
	}
	multiplier := a.rules.BuildMultipliers[m.DataName]
	for _, r := range m.WeightedBuildMaterials.Keys() {
		t.WeightedBuildMaterials.Add(r, m.WeightedBuildMaterials[r]*multiplier)
	}
}

func sortedResources(m map[Resource]float64) []Resource {
	keys := make([]Resource, 0, len(m))
	for r := range m {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

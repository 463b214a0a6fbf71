package habitat

import "strings"

// TechBonus is a research category bonus granted by a module
type TechBonus struct {
	Category string  `json:"category"`
	Bonus    float64 `json:"bonus"`
}

// Module is one catalog building block. Records are immutable once the
// catalog has been loaded and validated.
type Module struct {
	DataName     string `json:"dataName"`
	FriendlyName string `json:"friendlyName"`
	Tier         int    `json:"tier"`
	HabType      string `json:"habType"`
	CoreModule   bool   `json:"coreModule"`

	Power                  float64     `json:"power"`
	Crew                   float64     `json:"crew"`
	BaseMassTons           float64     `json:"baseMass_tons"`
	IncomeMoney            float64     `json:"incomeMoney_month"`
	IncomeInfluence        float64     `json:"incomeInfluence_month"`
	IncomeOps              float64     `json:"incomeOps_month"`
	IncomeResearch         float64     `json:"incomeResearch_month"`
	IncomeProjects         float64     `json:"incomeProjects"`
	MissionControl         float64     `json:"missionControl"`
	IncomeAntimatter       float64     `json:"incomeAntimatter_month"`
	SpaceCombatValue       float64     `json:"spaceCombatValue"`
	SupportMaterials       ResourceMap `json:"supportMaterials_month,omitempty"`
	WeightedBuildMaterials ResourceMap `json:"weightedBuildMaterials,omitempty"`
	TechBonuses            []TechBonus `json:"techBonuses,omitempty"`
	SpecialRules           []string    `json:"specialRules,omitempty"`

	// MiningModifier scales the habitat site's declared yield when this module
	// occupies the mining cell.
	MiningModifier float64 `json:"miningModifier"`

	AllowsResupply         bool `json:"allowsResupply"`
	AllowsShipConstruction bool `json:"allowsShipConstruction"`
	Mine                   bool `json:"mine"`
}

// HasSpecialRule reports whether the module carries the given flag
func (m *Module) HasSpecialRule(rule string) bool {
	for _, r := range m.SpecialRules {
		if r == rule {
			return true
		}
	}
	return false
}

// HasVariableSolarOutput reports whether power output depends on the solar body
func (m *Module) HasVariableSolarOutput() bool {
	return m.HasSpecialRule(SolarVariableOutputRule)
}

// CanFoundHabs reports whether any special rule unlocks habitat founding
func (m *Module) CanFoundHabs() bool {
	for _, r := range m.SpecialRules {
		if strings.HasPrefix(r, CanFoundRulePrefix) {
			return true
		}
	}
	return false
}

// FitsCore reports whether m may be installed on a habitat built around core
func (m *Module) FitsCore(core *Module) bool {
	if m.CoreModule {
		return false
	}
	if m.HabType != core.HabType && m.HabType != "Any" {
		return false
	}
	return m.Tier <= core.Tier
}

// ModuleCatalog resolves modules by dataName
type ModuleCatalog interface {
	Lookup(dataName string) (*Module, bool)
}

// Snapshotter is a catalog that may be swapped while in use. Snapshot pins the
// active version so one computation never mixes two catalogs.
type Snapshotter interface {
	Snapshot() ModuleCatalog
}

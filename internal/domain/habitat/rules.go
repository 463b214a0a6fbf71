package habitat

import (
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// LeoBonus is a category bonus a module grants only while in Earth low orbit
type LeoBonus struct {
	Category string  `yaml:"category" json:"category"`
	Bonus    float64 `yaml:"bonus" json:"bonus"`
}

// FoundingTier describes one tier of the habitat-founding building line.
// Coefficients apply by installation position: 1st, 2nd, 3rd, 4th and later.
type FoundingTier struct {
	Tier         int       `yaml:"tier" json:"tier"`
	Module       string    `yaml:"module" json:"module"`
	BaseRate     float64   `yaml:"base_rate" json:"base_rate"`
	Coefficients []float64 `yaml:"coefficients" json:"coefficients"`
}

// Rules holds every lookup table the aggregation engine consults. Tables are
// keyed by catalog dataName unless noted otherwise.
type Rules struct {
	// SolarModifiers scales power of variable-output solar modules per body
	SolarModifiers map[SolarBody]float64 `yaml:"solar_modifiers"`

	// PopUpkeep is the monthly consumption per crew member
	PopUpkeep map[Resource]float64 `yaml:"pop_upkeep"`

	// FarmSupply is the crew count a farm module feeds
	FarmSupply map[string]float64 `yaml:"farm_supply"`

	// LeoBonuses is keyed by module friendlyName
	LeoBonuses map[string]LeoBonus `yaml:"leo_bonuses"`
	LeoBody    SolarBody           `yaml:"leo_body"`

	BuildMultipliers map[string]float64 `yaml:"build_multipliers"`

	// FoundingTiers is ordered highest tier first
	FoundingTiers        []FoundingTier `yaml:"founding_tiers"`
	ConstructionBonusCap float64        `yaml:"construction_bonus_cap"`

	MiningTierMultipliers map[int]float64 `yaml:"mining_tier_multipliers"`
	MiningCell            string          `yaml:"mining_cell"`
}

const (
	SolarVariableOutputRule = "Solar_Power_Variable_Output"
	CanFoundRulePrefix      = "CanFoundTier"
)

// DefaultRules returns the game's shipped rule tables
func DefaultRules() *Rules {
	return &Rules{
		SolarModifiers: map[SolarBody]float64{
			EarthLEO:             1,
			Mercury:              6.672,
			Venus:                1.9,
			EarthLuna:            1,
			InnerSystemAsteroids: 0.616,
			Mars:                 0.432,
			InnerBeltAsteroids:   0.168,
			MiddleBeltAsteroids:  0.128,
			OuterBeltAsteroids:   0.12,
			OuterSystemBodies:    0.1,
		},
		PopUpkeep: map[Resource]float64{
			Water:     7.0 / 240.0,
			Volatiles: 7.0 / 240.0,
		},
		FarmSupply: map[string]float64{
			"HydroponicsBay":     50,
			"Farm":               300,
			"AgricultureComplex": 3000,
		},
		LeoBody: EarthLEO,
		LeoBonuses: map[string]LeoBonus{
			"Communications Hub":                  {"Unity", 1},
			"Media Center":                        {"Unity", 2},
			"Nanofactory":                         {"Economy", 2},
			"Nanofacturing Complex":               {"Economy", 5},
			"Life Science Lab":                    {"Welfare", 3},
			"Life Science Research Center":        {"Welfare", 6},
			"Life Science Institute":              {"Welfare", 10},
			"Information Science Lab":             {"Knowledge", 3},
			"Information Science Research Center": {"Knowledge", 6},
			"Information Science Institute":       {"Knowledge", 10},
			"Materials Lab":                       {"Military", 3},
			"Materials Research Center":           {"Military", 6},
			"Materials Institute":                 {"Military", 10},
			"Energy Lab":                          {"Boost", 3},
			"Energy Research Center":              {"Boost", 6},
			"Energy Institute":                    {"Boost", 10},
			"Space Science Lab":                   {"Mission Control", 3},
			"Space Science Research Center":       {"Mission Control", 6},
			"Space Science Institute":             {"Mission Control", 10},
			"Military Science Lab":                {"Miltech", 0.03},
			"Military Science Research Center":    {"Miltech", 0.06},
			"Military Science Institute":          {"Miltech", 0.1},
			"Social Science Lab":                  {"Public Campaign", 1},
			"Social Science Research Center":      {"Public Campaign", 2},
			"Social Science Institute":            {"Public Campaign", 3},
			"Xenology Lab":                        {"Alien Detection", 1},
			"Xenoscience Research Center":         {"Alien Detection", 2},
			"Xenoscience Institute":               {"Alien Detection", 3},
		},
		// Placeholder weights, not game data: listed modules count at 1, all
		// others contribute no build cost. Override via build_multipliers.
		BuildMultipliers: map[string]float64{
			"HydroponicsBay":       1,
			"Farm":                 1,
			"AgricultureComplex":   1,
			"ConstructionModule":   1,
			"Nanofactory":          1,
			"NanofacturingComplex": 1,
		},
		FoundingTiers: []FoundingTier{
			{Tier: 3, Module: "NanofacturingComplex", BaseRate: 0.40, Coefficients: []float64{1, 0.15, 0.06, 0.028}},
			{Tier: 2, Module: "Nanofactory", BaseRate: 0.25, Coefficients: []float64{1, 0.18, 0.08, 0.040}},
			{Tier: 1, Module: "ConstructionModule", BaseRate: 0.10, Coefficients: []float64{1, 0.20, 0.10, 0.050}},
		},
		ConstructionBonusCap: 0.50,
		MiningTierMultipliers: map[int]float64{
			0: 0,
			1: 1.0,
			2: 1.5,
			3: 2.0,
		},
		MiningCell: "0_3",
	}
}

// SolarModifier returns the power multiplier for body. Unknown bodies are neutral.
func (r *Rules) SolarModifier(body SolarBody) float64 {
	if m, ok := r.SolarModifiers[body]; ok {
		return m
	}
	return 1
}

// MiningMultiplierForTier maps a mining module tier to its site-yield multiplier
func (r *Rules) MiningMultiplierForTier(tier int) float64 {
	return r.MiningTierMultipliers[tier]
}

// FoundingTier returns the founding tier whose building has the given dataName
func (r *Rules) FoundingTier(dataName string) (FoundingTier, bool) {
	for _, ft := range r.FoundingTiers {
		if ft.Module == dataName {
			return ft, true
		}
	}
	return FoundingTier{}, false
}

// Validate checks the tables for values the engine cannot work with
func (r *Rules) Validate() error {
	for body, m := range r.SolarModifiers {
		if m < 0 {
			return fmt.Errorf("%w: solar modifier for %q is negative", shared.ErrInvalidRuleTables, body)
		}
	}
	for res, rate := range r.PopUpkeep {
		if rate < 0 {
			return fmt.Errorf("%w: pop upkeep for %q is negative", shared.ErrInvalidRuleTables, res)
		}
	}
	for name, supply := range r.FarmSupply {
		if supply < 0 {
			return fmt.Errorf("%w: farm supply for %q is negative", shared.ErrInvalidRuleTables, name)
		}
	}
	for name, m := range r.BuildMultipliers {
		if m < 0 {
			return fmt.Errorf("%w: build multiplier for %q is negative", shared.ErrInvalidRuleTables, name)
		}
	}
	for tier, m := range r.MiningTierMultipliers {
		if m < 0 {
			return fmt.Errorf("%w: mining multiplier for tier %d is negative", shared.ErrInvalidRuleTables, tier)
		}
	}
	for i, ft := range r.FoundingTiers {
		if len(ft.Coefficients) == 0 {
			return fmt.Errorf("%w: founding tier %d has no coefficients", shared.ErrInvalidRuleTables, ft.Tier)
		}
		if ft.BaseRate < 0 {
			return fmt.Errorf("%w: founding tier %d has a negative base rate", shared.ErrInvalidRuleTables, ft.Tier)
		}
		if i > 0 && ft.Tier >= r.FoundingTiers[i-1].Tier {
			return fmt.Errorf("%w: founding tiers must be ordered highest first", shared.ErrInvalidRuleTables)
		}
	}
	if r.ConstructionBonusCap <= 0 || r.ConstructionBonusCap > 1 {
		return fmt.Errorf("%w: construction bonus cap %v outside (0, 1]", shared.ErrInvalidRuleTables, r.ConstructionBonusCap)
	}
	if _, err := ParseCellLabel(r.MiningCell); err != nil {
		return fmt.Errorf("%w: mining cell: %v", shared.ErrInvalidRuleTables, err)
	}
	return nil
}

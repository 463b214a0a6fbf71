package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
)

// rulesFile mirrors habitat.Rules with every field optional. Map entries are
// merged into the defaults key by key; founding tiers replace the default list.
type rulesFile struct {
	SolarModifiers        map[habitat.SolarBody]float64 `yaml:"solar_modifiers"`
	PopUpkeep             map[habitat.Resource]float64  `yaml:"pop_upkeep"`
	FarmSupply            map[string]float64            `yaml:"farm_supply"`
	LeoBonuses            map[string]habitat.LeoBonus   `yaml:"leo_bonuses"`
	LeoBody               *habitat.SolarBody            `yaml:"leo_body"`
	BuildMultipliers      map[string]float64            `yaml:"build_multipliers"`
	FoundingTiers         []habitat.FoundingTier        `yaml:"founding_tiers"`
	ConstructionBonusCap  *float64                      `yaml:"construction_bonus_cap"`
	MiningTierMultipliers map[int]float64               `yaml:"mining_tier_multipliers"`
	MiningCell            *string                       `yaml:"mining_cell"`
}

// LoadRules returns the default rule tables merged with the YAML file at path.
// An empty path yields the defaults.
func LoadRules(path string) (*habitat.Rules, error) {
	if path == "" {
		return habitat.DefaultRules(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	rules, err := ParseRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// ParseRules merges YAML overrides from r into the default rule tables and
// validates the result. Unknown keys are rejected.
func ParseRules(r io.Reader) (*habitat.Rules, error) {
	var file rulesFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	rules := habitat.DefaultRules()
	mergeInto(rules.SolarModifiers, file.SolarModifiers)
	mergeInto(rules.PopUpkeep, file.PopUpkeep)
	mergeInto(rules.FarmSupply, file.FarmSupply)
	mergeInto(rules.LeoBonuses, file.LeoBonuses)
	mergeInto(rules.BuildMultipliers, file.BuildMultipliers)
	mergeInto(rules.MiningTierMultipliers, file.MiningTierMultipliers)
	if file.LeoBody != nil {
		rules.LeoBody = *file.LeoBody
	}
	if len(file.FoundingTiers) > 0 {
		rules.FoundingTiers = file.FoundingTiers
	}
	if file.ConstructionBonusCap != nil {
		rules.ConstructionBonusCap = *file.ConstructionBonusCap
	}
	if file.MiningCell != nil {
		rules.MiningCell = *file.MiningCell
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

func mergeInto[K comparable, V any](dst, src map[K]V) {
	for k, v := range src {
		dst[k] = v
	}
}

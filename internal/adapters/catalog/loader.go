package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// DefaultExcludedFlags are record flags that remove a module from the catalog
var DefaultExcludedFlags = []string{"alienModule", "destroyed", "automated"}

// LoadOptions controls catalog loading
type LoadOptions struct {
	// ExcludedFlags drops records where any of these boolean keys is true
	ExcludedFlags []string

	// MiningTierMultipliers derives miningModifier for mines that omit it
	MiningTierMultipliers map[int]float64
}

// DefaultLoadOptions uses the shipped exclusion list and mining table
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		ExcludedFlags:         DefaultExcludedFlags,
		MiningTierMultipliers: habitat.DefaultRules().MiningTierMultipliers,
	}
}

// moduleRecord mirrors one catalog JSON object. Required fields are pointers so
// absence can be told apart from zero.
type moduleRecord struct {
	DataName     *string  `json:"dataName" validate:"required,min=1"`
	FriendlyName *string  `json:"friendlyName" validate:"required"`
	Tier         *int     `json:"tier" validate:"required,min=1,max=3"`
	HabType      *string  `json:"habType" validate:"required,oneof=Station Base Any"`
	CoreModule   *bool    `json:"coreModule" validate:"required"`
	Power        *float64 `json:"power" validate:"required"`
	Crew         *float64 `json:"crew" validate:"required,gte=0"`

	BaseMassTons           float64             `json:"baseMass_tons"`
	IncomeMoney            float64             `json:"incomeMoney_month"`
	IncomeInfluence        float64             `json:"incomeInfluence_month"`
	IncomeOps              float64             `json:"incomeOps_month"`
	IncomeResearch         float64             `json:"incomeResearch_month"`
	IncomeProjects         float64             `json:"incomeProjects"`
	MissionControl         float64             `json:"missionControl"`
	IncomeAntimatter       float64             `json:"incomeAntimatter_month"`
	SpaceCombatValue       float64             `json:"spaceCombatValue"`
	SupportMaterials       habitat.ResourceMap `json:"supportMaterials_month"`
	WeightedBuildMaterials habitat.ResourceMap `json:"weightedBuildMaterials"`
	TechBonuses            []habitat.TechBonus `json:"techBonuses"`
	SpecialRules           []string            `json:"specialRules"`
	MiningModifier         *float64            `json:"miningModifier" validate:"omitempty,gte=0"`
	AllowsResupply         bool                `json:"allowsResupply"`
	AllowsShipConstruction bool                `json:"allowsShipConstruction"`
	Mine                   bool                `json:"mine"`
}

func (r *moduleRecord) toModule(miningTiers map[int]float64) *habitat.Module {
	m := &habitat.Module{
		DataName:               *r.DataName,
		FriendlyName:           *r.FriendlyName,
		Tier:                   *r.Tier,
		HabType:                *r.HabType,
		CoreModule:             *r.CoreModule,
		Power:                  *r.Power,
		Crew:                   *r.Crew,
		BaseMassTons:           r.BaseMassTons,
		IncomeMoney:            r.IncomeMoney,
		IncomeInfluence:        r.IncomeInfluence,
		IncomeOps:              r.IncomeOps,
		IncomeResearch:         r.IncomeResearch,
		IncomeProjects:         r.IncomeProjects,
		MissionControl:         r.MissionControl,
		IncomeAntimatter:       r.IncomeAntimatter,
		SpaceCombatValue:       r.SpaceCombatValue,
		SupportMaterials:       r.SupportMaterials,
		WeightedBuildMaterials: r.WeightedBuildMaterials,
		TechBonuses:            r.TechBonuses,
		SpecialRules:           r.SpecialRules,
		AllowsResupply:         r.AllowsResupply,
		AllowsShipConstruction: r.AllowsShipConstruction,
		Mine:                   r.Mine,
	}
	switch {
	case r.MiningModifier != nil:
		m.MiningModifier = *r.MiningModifier
	case r.Mine:
		m.MiningModifier = miningTiers[m.Tier]
	}
	return m
}

var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadFile reads a catalog JSON file
func LoadFile(path string, opts LoadOptions) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	c, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Load decodes a JSON array of module records. Any malformed record fails
// the whole load.
func Load(r io.Reader, opts LoadOptions) (*Catalog, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	modules := make([]*habitat.Module, 0, len(raw))
	for i, msg := range raw {
		excluded, err := isExcluded(msg, opts.ExcludedFlags)
		if err != nil {
			return nil, fmt.Errorf("catalog record #%d: %w", i, err)
		}
		if excluded {
			continue
		}

		var rec moduleRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, fmt.Errorf("catalog record #%d: %w", i, err)
		}
		if err := validateRecord(i, &rec); err != nil {
			return nil, err
		}
		modules = append(modules, rec.toModule(opts.MiningTierMultipliers))
	}
	return New(modules)
}

func isExcluded(msg json.RawMessage, flags []string) (bool, error) {
	if len(flags) == 0 {
		return false, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg, &fields); err != nil {
		return false, err
	}
	for _, flag := range flags {
		v, ok := fields[flag]
		if !ok {
			continue
		}
		var set bool
		if err := json.Unmarshal(v, &set); err == nil && set {
			return true, nil
		}
	}
	return false, nil
}

func validateRecord(index int, rec *moduleRecord) error {
	err := recordValidator.Struct(rec)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var missing, invalid []string
	for _, e := range verrs {
		if e.Tag() == "required" {
			missing = append(missing, e.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s failed %s (value: '%v')", e.Field(), e.Tag(), e.Value()))
	}

	name := ""
	if rec.DataName != nil {
		name = *rec.DataName
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return shared.NewMissingFieldError(index, name, missing)
	}
	return fmt.Errorf("catalog record %s (#%d): %s", name, index, strings.Join(invalid, "; "))
}

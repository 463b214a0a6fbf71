package habitat

import (
	"fmt"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// SiteContext is where a module list is evaluated
type SiteContext struct {
	Body SolarBody
	Type HabitatType

	// Site is the declared per-resource yield; only base habitats mine it
	Site ResourceMap

	// MiningModule occupies the mining cell, nil when empty
	MiningModule *Module
}

// Summary is the result of one full recomputation pass
type Summary struct {
	Totals            *Totals     `json:"totals"`
	FarmDiscount      ResourceMap `json:"farm_discount"`
	SiteYield         ResourceMap `json:"site_yield"`
	NetUpkeep         ResourceMap `json:"net_upkeep"`
	MiningMultiplier  float64     `json:"mining_multiplier"`
	ConstructionBonus float64     `json:"construction_bonus"`
	NetMoney          float64     `json:"net_money"`
	UnknownModules    []string    `json:"unknown_modules,omitempty"`
}

// Engine folds module lists into summaries. It holds no per-computation state
// and is safe to share.
type Engine struct {
	catalog     ModuleCatalog
	rules       *Rules
	accumulator *Accumulator
	miningCell  CellLabel
}

// NewEngine creates an engine over catalog. A nil rules value selects DefaultRules.
func NewEngine(catalog ModuleCatalog, rules *Rules) (*Engine, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	miningCell, err := ParseCellLabel(rules.MiningCell)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidRuleTables, err)
	}
	return &Engine{
		catalog:     catalog,
		rules:       rules,
		accumulator: NewAccumulator(rules),
		miningCell:  miningCell,
	}, nil
}

// Rules returns the tables the engine computes with
func (e *Engine) Rules() *Rules {
	return e.rules
}

// MiningCell returns the grid position whose module scales site yield
func (e *Engine) MiningCell() CellLabel {
	return e.miningCell
}

// Compute folds modules and runs post-processing: farm discount first, then
// site yield.
func (e *Engine) Compute(modules []*Module, ctx SiteContext) *Summary {
	totals := e.accumulator.Fold(modules, ctx.Body)

	farm := e.rules.FarmDiscount(modules)
	net := NetUpkeep(totals.SupportMaterials, farm)

	var multiplier float64
	yield := make(ResourceMap)
	if ctx.Type == Base {
		multiplier = MiningMultiplier(ctx.MiningModule)
		yield = SiteYield(ctx.Site, multiplier)
		net = ApplySiteYield(net, yield)
	}

	return &Summary{
		Totals:            totals,
		FarmDiscount:      farm,
		SiteYield:         yield,
		NetUpkeep:         net,
		MiningMultiplier:  multiplier,
		ConstructionBonus: e.rules.ConstructionBonus(e.rules.FoundingCounts(modules)),
		NetMoney:          totals.NetMoney(),
	}
}

// Summarize resolves every installed module of state and computes its summary.
// Names missing from the catalog contribute nothing and are reported.
func (e *Engine) Summarize(state HabitatState) *Summary {
	catalog := e.catalog
	if s, ok := catalog.(Snapshotter); ok {
		catalog = s.Snapshot()
	}

	var modules []*Module
	var unknown []string
	for _, name := range state.Modules() {
		m, ok := catalog.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		modules = append(modules, m)
	}

	var mining *Module
	if name := state.ModuleAt(e.miningCell); name != "" {
		mining, _ = catalog.Lookup(name)
	}

	summary := e.Compute(modules, SiteContext{
		Body:         state.Body(),
		Type:         state.Type(),
		Site:         state.Site(),
		MiningModule: mining,
	})
	summary.UnknownModules = unknown
	return summary
}

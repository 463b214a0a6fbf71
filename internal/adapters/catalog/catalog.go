// Package catalog loads the static module dataset and answers lookups over it.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/ti-habitat-planner/internal/domain/habitat"
	"github.com/andrescamacho/ti-habitat-planner/internal/domain/shared"
)

// Catalog is an immutable, validated module collection
type Catalog struct {
	modules map[string]*habitat.Module
	order   []string
}

// New indexes modules. Duplicate dataNames are rejected.
func New(modules []*habitat.Module) (*Catalog, error) {
	c := &Catalog{
		modules: make(map[string]*habitat.Module, len(modules)),
		order:   make([]string, 0, len(modules)),
	}
	for _, m := range modules {
		if m == nil || m.DataName == "" {
			return nil, fmt.Errorf("%w: module without dataName", shared.ErrMissingField)
		}
		if _, dup := c.modules[m.DataName]; dup {
			return nil, fmt.Errorf("duplicate module %q in catalog", m.DataName)
		}
		c.modules[m.DataName] = m
		c.order = append(c.order, m.DataName)
	}
	return c, nil
}

// Lookup implements habitat.ModuleCatalog
func (c *Catalog) Lookup(dataName string) (*habitat.Module, bool) {
	m, ok := c.modules[dataName]
	return m, ok
}

// Len returns the number of modules
func (c *Catalog) Len() int {
	return len(c.order)
}

// All returns every module in load order
func (c *Catalog) All() []*habitat.Module {
	out := make([]*habitat.Module, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.modules[name])
	}
	return out
}

// Resolve finds a module by dataName, falling back to a case-insensitive match
// on dataName or friendlyName. Unknown names yield suggestions.
func (c *Catalog) Resolve(name string) (*habitat.Module, error) {
	if m, ok := c.modules[name]; ok {
		return m, nil
	}
	for _, key := range c.order {
		m := c.modules[key]
		if strings.EqualFold(m.DataName, name) || strings.EqualFold(m.FriendlyName, name) {
			return m, nil
		}
	}
	return nil, shared.NewUnknownModuleError(name, c.Suggest(name, 3))
}

// Cores lists core modules of the given habitat type ordered by tier then name
func (c *Catalog) Cores(t habitat.HabitatType) []*habitat.Module {
	var out []*habitat.Module
	for _, m := range c.All() {
		if m.CoreModule && m.HabType == t.HabType() {
			out = append(out, m)
		}
	}
	sortByTierAndName(out)
	return out
}

// Filter narrows Eligible results
type Filter struct {
	// Tiers restricts module tiers; empty means every tier up to the core's
	Tiers []int

	// Incomes keeps modules with a positive value in any listed income key
	Incomes []string
}

// incomeFields are the keys usable in Filter.Incomes
var incomeFields = map[string]func(*habitat.Module) float64{
	"power":                  func(m *habitat.Module) float64 { return m.Power },
	"incomeMoney_month":      func(m *habitat.Module) float64 { return m.IncomeMoney },
	"incomeInfluence_month":  func(m *habitat.Module) float64 { return m.IncomeInfluence },
	"incomeOps_month":        func(m *habitat.Module) float64 { return m.IncomeOps },
	"incomeResearch_month":   func(m *habitat.Module) float64 { return m.IncomeResearch },
	"incomeProjects":         func(m *habitat.Module) float64 { return m.IncomeProjects },
	"missionControl":         func(m *habitat.Module) float64 { return m.MissionControl },
	"incomeAntimatter_month": func(m *habitat.Module) float64 { return m.IncomeAntimatter },
	"spaceCombatValue":       func(m *habitat.Module) float64 { return m.SpaceCombatValue },
}

// IncomeFilterKeys lists accepted Filter.Incomes keys, sorted
func IncomeFilterKeys() []string {
	keys := make([]string, 0, len(incomeFields))
	for k := range incomeFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate rejects unknown income keys and out-of-range tiers
func (f Filter) Validate() error {
	for _, t := range f.Tiers {
		if t < 1 || t > 3 {
			return shared.NewValidationError("tiers", fmt.Sprintf("tier %d outside 1-3", t))
		}
	}
	for _, key := range f.Incomes {
		if _, ok := incomeFields[key]; !ok {
			return shared.NewValidationError("incomes", fmt.Sprintf("unknown income %q", key))
		}
	}
	return nil
}

// Eligible lists modules that may be installed in a cell of cellType on a
// habitat built around core, ordered by tier then name.
func (c *Catalog) Eligible(core *habitat.Module, cellType habitat.CellType, f Filter) []*habitat.Module {
	return c.match(f, func(m *habitat.Module) bool {
		if !m.FitsCore(core) {
			return false
		}
		return cellType != habitat.CellMining || m.Mine
	})
}

// Match lists every non-core module passing f, ordered by tier then name
func (c *Catalog) Match(f Filter) []*habitat.Module {
	return c.match(f, func(m *habitat.Module) bool { return !m.CoreModule })
}

func (c *Catalog) match(f Filter, keep func(*habitat.Module) bool) []*habitat.Module {
	tiers := make(map[int]bool)
	for _, t := range f.Tiers {
		tiers[t] = true
	}

	var out []*habitat.Module
	for _, m := range c.All() {
		if !keep(m) {
			continue
		}
		if len(tiers) > 0 && !tiers[m.Tier] {
			continue
		}
		if len(f.Incomes) > 0 && !hasIncome(m, f.Incomes) {
			continue
		}
		out = append(out, m)
	}
	sortByTierAndName(out)
	return out
}

func hasIncome(m *habitat.Module, keys []string) bool {
	for _, k := range keys {
		if get, ok := incomeFields[k]; ok && get(m) > 0 {
			return true
		}
	}
	return false
}

func sortByTierAndName(mods []*habitat.Module) {
	sort.SliceStable(mods, func(i, j int) bool {
		if mods[i].Tier != mods[j].Tier {
			return mods[i].Tier < mods[j].Tier
		}
		return mods[i].FriendlyName < mods[j].FriendlyName
	})
}

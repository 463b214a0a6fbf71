package habitat

// FarmDiscount returns the pop-support offset farms provide for each
// farm-discountable resource.
func (r *Rules) FarmDiscount(modules []*Module) ResourceMap {
	discount := make(ResourceMap, len(FarmDiscountable))
	for _, res := range FarmDiscountable {
		rate := r.PopUpkeep[res]
		var total float64
		for _, m := range modules {
			total += r.FarmSupply[m.DataName] * rate
		}
		discount[res] = total
	}
	return discount
}

// NetUpkeep applies the farm discount to raw upkeep. Discountable resources
// are clamped at zero; money is excluded because it is netted against income.
func NetUpkeep(raw, farmDiscount ResourceMap) ResourceMap {
	net := make(ResourceMap, len(raw))
	for _, res := range raw.Keys() {
		if res == Money {
			continue
		}
		v := raw[res]
		if IsFarmDiscountable(res) {
			v -= farmDiscount.Get(res)
			if v < 0 {
				v = 0
			}
		}
		net[res] = v
	}
	return net
}

// SiteYield scales the declared site yield by the mining multiplier
func SiteYield(site ResourceMap, multiplier float64) ResourceMap {
	out := make(ResourceMap, len(site))
	for _, res := range site.Keys() {
		out[res] = site[res] * multiplier
	}
	return out
}

// ApplySiteYield subtracts yield from net upkeep. The result is not clamped:
// mining can turn net consumption into net production.
func ApplySiteYield(net, yield ResourceMap) ResourceMap {
	out := net.Clone()
	if out == nil {
		out = make(ResourceMap)
	}
	for _, res := range yield.Keys() {
		if res == Money {
			continue
		}
		out[res] = out[res] - yield[res]
	}
	return out
}

// MiningMultiplier returns the site-yield multiplier of the module in the
// mining cell, or zero when the cell is empty or holds no mine.
func MiningMultiplier(m *Module) float64 {
	if m == nil || !m.Mine {
		return 0
	}
	return m.MiningModifier
}

// FoundingCounts counts installed founding buildings by dataName
func (r *Rules) FoundingCounts(modules []*Module) map[string]int {
	counts := make(map[string]int, len(r.FoundingTiers))
	for _, m := range modules {
		if _, ok := r.FoundingTier(m.DataName); ok {
			counts[m.DataName]++
		}
	}
	return counts
}

// ConstructionBonus computes the diminishing-returns founding bonus. The first
// instance of the highest tier present contributes its full base rate and
// selects the coefficient row; every later instance, highest tier first,
// contributes its own base rate times the next coefficient. The last
// coefficient repeats. The total is capped.
func (r *Rules) ConstructionBonus(counts map[string]int) float64 {
	var coefficients []float64
	var total float64
	applied := 0
	for _, ft := range r.FoundingTiers {
		for i := 0; i < counts[ft.Module]; i++ {
			if coefficients == nil {
				coefficients = ft.Coefficients
			}
			idx := applied
			if idx >= len(coefficients) {
				idx = len(coefficients) - 1
			}
			total += ft.BaseRate * coefficients[idx]
			applied++
		}
	}
	if total > r.ConstructionBonusCap {
		return r.ConstructionBonusCap
	}
	return total
}

// ConstructionBonusFor is ConstructionBonus keyed by per-tier counts, highest
// tier first.
func (r *Rules) ConstructionBonusFor(tier3, tier2, tier1 int) float64 {
	counts := make(map[string]int, 3)
	for _, ft := range r.FoundingTiers {
		switch ft.Tier {
		case 1:
			counts[ft.Module] = tier1
		case 2:
			counts[ft.Module] = tier2
		case 3:
			counts[ft.Module] = tier3
		}
	}
	return r.ConstructionBonus(counts)
}

package habitat

import "sort"

// Resource is a support or build material key as it appears in the module catalog
type Resource string

const (
	Water       Resource = "water"
	Volatiles   Resource = "volatiles"
	Metals      Resource = "metals"
	NobleMetals Resource = "nobleMetals"
	Fissiles    Resource = "fissiles"

	// Money shows up in supportMaterials_month as a monthly cost; it is netted
	// against incomeMoney_month and never displayed as upkeep.
	Money Resource = "money"
)

// MaterialResources lists the five physical resources in display order
var MaterialResources = []Resource{Water, Volatiles, Metals, NobleMetals, Fissiles}

// FarmDiscountable are the resources farms offset, which are also the ones crew consume
var FarmDiscountable = []Resource{Water, Volatiles}

// IsFarmDiscountable reports whether farms offset consumption of r
func IsFarmDiscountable(r Resource) bool {
	for _, fr := range FarmDiscountable {
		if fr == r {
			return true
		}
	}
	return false
}

// ResourceMap maps a resource to an amount. Missing keys read as zero.
type ResourceMap map[Resource]float64

// NewResourceMap returns a map with all material resources initialised to zero
func NewResourceMap() ResourceMap {
	m := make(ResourceMap, len(MaterialResources))
	for _, r := range MaterialResources {
		m[r] = 0
	}
	return m
}

// Get returns the amount for r, or zero
func (m ResourceMap) Get(r Resource) float64 {
	if m == nil {
		return 0
	}
	return m[r]
}

// Add adds amount to r
func (m ResourceMap) Add(r Resource, amount float64) {
	m[r] = m[r] + amount
}

// Merge adds every entry of other into m
func (m ResourceMap) Merge(other ResourceMap) {
	for _, r := range other.Keys() {
		m.Add(r, other[r])
	}
}

// Clone returns an independent copy
func (m ResourceMap) Clone() ResourceMap {
	if m == nil {
		return nil
	}
	out := make(ResourceMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Keys returns the keys with material resources first, in display order,
// followed by any other keys sorted by name.
func (m ResourceMap) Keys() []Resource {
	keys := make([]Resource, 0, len(m))
	seen := make(map[Resource]bool, len(m))
	for _, r := range MaterialResources {
		if _, ok := m[r]; ok {
			keys = append(keys, r)
			seen[r] = true
		}
	}
	var rest []Resource
	for r := range m {
		if !seen[r] {
			rest = append(rest, r)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(keys, rest...)
}

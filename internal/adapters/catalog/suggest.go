package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type suggestion struct {
	name string
	dist int
}

// Suggest returns up to limit dataNames close to name, nearest first. Both
// dataName and friendlyName are compared, case-insensitively.
func (c *Catalog) Suggest(name string, limit int) []string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" || limit <= 0 {
		return nil
	}

	var cands []suggestion
	for _, key := range c.order {
		m := c.modules[key]
		best := -1
		for _, alias := range []string{m.DataName, m.FriendlyName} {
			alias = strings.ToLower(alias)
			dist := levenshtein.ComputeDistance(needle, alias)
			if dist > levenshteinLimit(len(alias)) {
				continue
			}
			if best < 0 || dist < best {
				best = dist
			}
		}
		if best >= 0 {
			cands = append(cands, suggestion{name: m.DataName, dist: best})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]string, len(cands))
	for i, s := range cands {
		out[i] = s.name
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Package display turns aggregation results into the strings users see.
package display

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber rounds to precision decimals (half to even) and renders
// values without a fractional part as integers.
func FormatNumber(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Number formats with the default one-decimal precision
func Number(v float64) string {
	return FormatNumber(v, 1)
}

// Raw renders v in its shortest round-trip form
func Raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var siPrefixes = []struct {
	symbol string
	scale  float64
}{
	{"", 1},
	{"µ", 1e-6},
	{"n", 1e-9},
	{"p", 1e-12},
	{"f", 1e-15},
	{"a", 1e-18},
}

// FormatAntimatter renders antimatter income, which is usually tiny
func FormatAntimatter(v float64) string {
	switch {
	case v >= 0.1:
		return FormatNumber(v, 2)
	case v >= 0.001:
		s := strconv.FormatFloat(v, 'f', 3, 64)
		return "." + s[strings.IndexByte(s, '.')+1:]
	case v > 0:
		for i, p := range siPrefixes {
			if math.Abs(v) >= p.scale || i == len(siPrefixes)-1 {
				s := strconv.FormatFloat(v/p.scale, 'f', 3, 64)
				s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
				return s + p.symbol
			}
		}
	}
	return Raw(v)
}

// Percent renders a fraction as a percentage
func Percent(fraction float64) string {
	return Number(fraction*100) + "%"
}

// ProjectsPercent renders project income, each project point being 5%
func ProjectsPercent(projects float64) string {
	return Number(projects*5) + "%"
}

// ConstructionBonusPercent renders the founding bonus as a whole percentage
func ConstructionBonusPercent(bonus float64) string {
	return strconv.Itoa(int(math.RoundToEven(bonus*100))) + "%"
}

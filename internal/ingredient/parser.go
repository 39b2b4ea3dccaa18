// Package ingredient parses free-text ingredient lines and computes the
// identity key and grocery category used when merging shopping lists.
package ingredient

import (
	"regexp"
	"strconv"
	"strings"
)

// Parsed is a single ingredient line split into its structured parts.
type Parsed struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Name     string  `json:"name"`
	Raw      string  `json:"raw"`
}

var (
	unitLineRe   = regexp.MustCompile(`(?i)^([\d\s/.]+)?\s*(cups?|tbsp|tablespoons?|tsp|teaspoons?|oz|ounces?|lbs?|pounds?|g|grams?|kg|kilograms?|ml|liters?|litres?|large|medium|small|bunch|cloves?|slices?|pieces?|cans?)\s+(.+)$`)
	simpleLineRe = regexp.MustCompile(`^([\d\s/.]+)\s+(.+)$`)
)

var unitSynonyms = map[string]string{
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"ounce":       "oz",
	"ounces":      "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"lbs":         "lb",
	"gram":        "g",
	"grams":       "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"liter":       "L",
	"litre":       "L",
	"liters":      "L",
	"litres":      "L",
	"cups":        "cup",
	"slices":      "slice",
	"pieces":      "piece",
	"cloves":      "clove",
	"cans":        "can",
}

// ParseLine parses one line such as "1 1/2 cups flour". It never fails: an
// empty line yields the zero value and an unrecognized line becomes a name
// with quantity 1.
func ParseLine(line string) Parsed {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Parsed{}
	}

	if m := unitLineRe.FindStringSubmatch(trimmed); m != nil {
		qty := strings.TrimSpace(m[1])
		if qty == "" {
			qty = "1"
		}
		return Parsed{
			Quantity: ParseQuantity(qty),
			Unit:     NormalizeUnit(m[2]),
			Name:     strings.ToLower(strings.TrimSpace(m[3])),
			Raw:      trimmed,
		}
	}

	if m := simpleLineRe.FindStringSubmatch(trimmed); m != nil {
		return Parsed{
			Quantity: ParseQuantity(m[1]),
			Name:     strings.ToLower(strings.TrimSpace(m[2])),
			Raw:      trimmed,
		}
	}

	return Parsed{Quantity: 1, Name: strings.ToLower(trimmed), Raw: trimmed}
}

// ParseQuantity reads integers, decimals, fractions ("1/2") and mixed
// numbers ("1 1/2"). Anything it cannot read counts as 1.
func ParseQuantity(s string) float64 {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return 1
	case 1:
		return parseSimpleQuantity(fields[0])
	}

	whole, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 1
	}
	return whole + parseSimpleQuantity(strings.Join(fields[1:], " "))
}

func parseSimpleQuantity(s string) float64 {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			return 1
		}
		d, err := strconv.Atoi(strings.TrimSpace(den))
		if err != nil || d == 0 {
			return 1
		}
		return float64(n) / float64(d)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return 1
	}
	return v
}

// NormalizeUnit maps a unit synonym to its canonical abbreviation.
func NormalizeUnit(unit string) string {
	lower := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitSynonyms[lower]; ok {
		return canonical
	}
	return lower
}

// FormatQuantity renders a quantity without trailing zeros ("1.5", "2").
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

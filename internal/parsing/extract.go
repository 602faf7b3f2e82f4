package parsing

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// The Extract functions are pure and total. An empty description is treated as
// missing, and every failure mode yields nil rather than an error.

// ExtractModelName returns a short letter+digit code such as "AM-967".
func ExtractModelName(description string) *string {
	if description == "" {
		return nil
	}
	return stringMatch(ModelNameRules, strings.ToUpper(foldSpace(description)))
}

// ExtractModelNumber returns a parenthesized code such as "RYX-02-020" or "2628".
func ExtractModelNumber(description string) *string {
	if description == "" {
		return nil
	}
	return stringMatch(ModelNumberRules, foldSpace(description))
}

// ExtractCapacity returns the capacity figure, e.g. "10" for "10PCS SET".
func ExtractCapacity(description string) *string {
	if description == "" {
		return nil
	}
	return stringMatch(CapacityRules, strings.ToUpper(foldSpace(description)))
}

// ExtractMaterialType returns the first material keyword contained in the description.
func ExtractMaterialType(description string) *string {
	if description == "" {
		return nil
	}

	upper := strings.ToUpper(foldSpace(description))
	for _, rule := range MaterialRules {
		if strings.Contains(upper, rule.Keyword) {
			label := rule.Label
			return &label
		}
	}
	return nil
}

// ExtractEmbeddedQuantity returns a quantity written into the text, e.g. "QTY: 600 PCS".
func ExtractEmbeddedQuantity(description string) *float64 {
	if description == "" {
		return nil
	}

	raw, ok := firstMatch(QuantityRules, strings.ToUpper(foldSpace(description)))
	if !ok {
		return nil
	}
	return parseNonNegative(strings.ReplaceAll(raw, ",", ""))
}

// ExtractUnitPriceUSD returns a unit price written into the text, e.g. "USD 2.03 PER PCS".
func ExtractUnitPriceUSD(description string) *float64 {
	if description == "" {
		return nil
	}

	raw, ok := firstMatch(UnitPriceUSDRules, strings.ToUpper(foldSpace(description)))
	if !ok {
		return nil
	}
	return parseNonNegative(raw)
}

// foldSpace maps every Unicode space, including NBSP and vertical tab, to ' '
// so that `\s` in the rule tables sees it.
func foldSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func stringMatch(rules []Rule, text string) *string {
	v, ok := firstMatch(rules, text)
	if !ok {
		return nil
	}
	return &v
}

// parseNonNegative discards malformed captures instead of coercing them.
func parseNonNegative(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

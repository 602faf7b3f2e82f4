// Package parsing extracts structured attributes from free-text goods descriptions.
package parsing

import (
	"regexp"
	"strings"
)

// Rule is a single extraction pattern. The first capture group is the value.
type Rule struct {
	Name  string
	Regex *regexp.Regexp
}

// Match returns the trimmed first capture group when the rule matches text.
func (r Rule) Match(text string) (string, bool) {
	m := r.Regex.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// MaterialRule maps a keyword found in the description to a material label.
type MaterialRule struct {
	Keyword string
	Label   string
}

func newRule(name, expr string) Rule {
	return Rule{Name: name, Regex: regexp.MustCompile(expr)}
}

// Rule tables are evaluated top-down and the first match wins, so the
// declaration order below is the priority order.
var (
	// \b is an ASCII word boundary: "ÉAB-12" yields "AB-12".
	ModelNameRules = []Rule{
		newRule("code", `\b([A-Z]{1,3}-?\d{1,5})\b`),
		newRule("parenthesized code", `\(([A-Z]{1,3}-?\d{1,5})\)`),
		newRule("model label", `MODEL[:\s]+([A-Z]{1,3}-?\d{1,5})`),
	}

	// Matched against the text as written: lower-case codes are not model numbers.
	ModelNumberRules = []Rule{
		newRule("parenthesized code", `\(([A-Z]{2,4}-?\d{1,3}-?\d{1,3})\)`),
		newRule("parenthesized number", `\((\d{3,6})\)`),
		newRule("model no label", `MODEL\s+NO[:\s]+([A-Z0-9-]+)`),
	}

	CapacityRules = []Rule{
		newRule("piece set", `(\d+)\s*PCS?\s*SET`),
		newRule("capacity label", `CAPACITY[:\s]+([\d.]+)`),
		newRule("litres", `(\d+)\s*L`),
		newRule("millilitres", `(\d+)\s*ML`),
	}

	QuantityRules = []Rule{
		newRule("qty label", `QTY[:\s]+([\d,]+)\s*(?:PCS?|SETS?|NOS?|KGS?|KG)`),
		newRule("quantity label", `QUANTITY[:\s]+([\d,]+)`),
	}

	UnitPriceUSDRules = []Rule{
		newRule("usd per unit", `USD[:\s]+([\d.]+)\s*PER\s*(?:PCS?|SETS?|NOS?|KGS?|KG)`),
		newRule("usd per", `USD\s+([\d.]+)\s*PER`),
		newRule("dollar per", `\$([\d.]+)\s*PER`),
	}

	// Compound keywords precede STEEL so that it cannot mask them.
	MaterialRules = []MaterialRule{
		{Keyword: "MILD STEEL", Label: "MILD_STEEL"},
		{Keyword: "STAINLESS STEEL", Label: "STAINLESS_STEEL"},
		{Keyword: "STEEL", Label: "STEEL"},
		{Keyword: "ALUMINUM", Label: "ALUMINUM"},
		{Keyword: "PLASTIC", Label: "PLASTIC"},
		{Keyword: "WOOD", Label: "WOOD"},
		{Keyword: "GLASS", Label: "GLASS"},
		{Keyword: "CERAMIC", Label: "CERAMIC"},
		{Keyword: "BRASS", Label: "BRASS"},
		{Keyword: "COPPER", Label: "COPPER"},
	}
)

// firstMatch evaluates rules in order and stops at the first match.
func firstMatch(rules []Rule, text string) (string, bool) {
	for _, rule := range rules {
		if v, ok := rule.Match(text); ok {
			return v, true
		}
	}
	return "", false
}

// Package classification assigns categories to shipments from HSN codes and goods descriptions.
package classification

import (
	"errors"
	"fmt"
	"strings"
)

// OtherCategory is assigned whenever no rule applies.
const OtherCategory = "Other"

// prefixLength is the number of HSN code characters that select a category.
const prefixLength = 4

// ErrInvalidRules is returned for rule tables that cannot be evaluated.
var ErrInvalidRules = errors.New("invalid classification rules")

// CategoryRule maps an HSN code prefix to a category.
type CategoryRule struct {
	Prefix   string `yaml:"prefix"`
	Category string `yaml:"category"`
}

// SubcategoryRule maps a description keyword to a sub-category.
type SubcategoryRule struct {
	Keyword     string `yaml:"keyword"`
	SubCategory string `yaml:"sub_category"`
}

// Rules holds the ordered rule tables. Earlier entries take priority.
type Rules struct {
	HouseholdPrefix string            `yaml:"household_prefix"`
	HouseholdLabel  string            `yaml:"household_label"`
	Categories      []CategoryRule    `yaml:"categories"`
	Subcategories   []SubcategoryRule `yaml:"subcategories"`
}

// Validate checks that every rule can match something.
func (r Rules) Validate() error {
	for i, rule := range r.Categories {
		if strings.TrimSpace(rule.Prefix) == "" {
			return fmt.Errorf("%w: category rule %d has an empty prefix", ErrInvalidRules, i)
		}
		if strings.TrimSpace(rule.Category) == "" {
			return fmt.Errorf("%w: category rule %d has an empty category", ErrInvalidRules, i)
		}
	}
	for i, rule := range r.Subcategories {
		if strings.TrimSpace(rule.Keyword) == "" {
			return fmt.Errorf("%w: sub-category rule %d has an empty keyword", ErrInvalidRules, i)
		}
		if strings.TrimSpace(rule.SubCategory) == "" {
			return fmt.Errorf("%w: sub-category rule %d has an empty sub-category", ErrInvalidRules, i)
		}
	}
	if r.HouseholdPrefix != "" && r.HouseholdLabel == "" {
		return fmt.Errorf("%w: household prefix %q has no label", ErrInvalidRules, r.HouseholdPrefix)
	}
	return nil
}

// Categorizer evaluates the rule tables. It is safe for concurrent use.
type Categorizer struct {
	rules Rules
}

// NewCategorizer creates a categorizer from validated rules.
// Keywords are upper-cased so that matching is case-insensitive.
func NewCategorizer(rules Rules) (*Categorizer, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	normalized := Rules{
		HouseholdPrefix: strings.TrimSpace(rules.HouseholdPrefix),
		HouseholdLabel:  rules.HouseholdLabel,
		Categories:      make([]CategoryRule, len(rules.Categories)),
		Subcategories:   make([]SubcategoryRule, len(rules.Subcategories)),
	}
	for i, rule := range rules.Categories {
		normalized.Categories[i] = CategoryRule{Prefix: strings.TrimSpace(rule.Prefix), Category: rule.Category}
	}
	for i, rule := range rules.Subcategories {
		normalized.Subcategories[i] = SubcategoryRule{Keyword: strings.ToUpper(rule.Keyword), SubCategory: rule.SubCategory}
	}

	return &Categorizer{rules: normalized}, nil
}

// NewDefaultCategorizer creates a categorizer with the built-in rules.
func NewDefaultCategorizer() *Categorizer {
	c, err := NewCategorizer(DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("default classification rules are invalid: %v", err))
	}
	return c
}

// Rules returns a copy of the rule tables in use.
func (c *Categorizer) Rules() Rules {
	return Rules{
		HouseholdPrefix: c.rules.HouseholdPrefix,
		HouseholdLabel:  c.rules.HouseholdLabel,
		Categories:      append([]CategoryRule(nil), c.rules.Categories...),
		Subcategories:   append([]SubcategoryRule(nil), c.rules.Subcategories...),
	}
}

// CategoryFromCode maps the first four characters of an HSN code to a category.
func (c *Categorizer) CategoryFromCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return OtherCategory
	}

	prefix := code
	if len(code) >= prefixLength {
		prefix = code[:prefixLength]
	}

	for _, rule := range c.rules.Categories {
		if rule.Prefix == prefix {
			return rule.Category
		}
	}
	return OtherCategory
}

// SubcategoryFromDescription returns the sub-category of the first keyword found
// in description. Without a keyword match, household-heading codes get a generic
// label. An empty description is never categorized.
func (c *Categorizer) SubcategoryFromDescription(description, code string) string {
	if description == "" {
		return OtherCategory
	}

	upper := strings.ToUpper(description)
	for _, rule := range c.rules.Subcategories {
		if strings.Contains(upper, rule.Keyword) {
			return rule.SubCategory
		}
	}

	if c.rules.HouseholdPrefix != "" && strings.HasPrefix(strings.TrimSpace(code), c.rules.HouseholdPrefix) {
		return c.rules.HouseholdLabel
	}
	return OtherCategory
}

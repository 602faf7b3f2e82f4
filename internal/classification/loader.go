package classification

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads an ordered rule file. Tables omitted from the file keep
// their built-in defaults; tables present replace them wholesale.
//
// Example:
//
//	categories:
//	  - prefix: "7323"
//	    category: Household Articles
//	subcategories:
//	  - keyword: HOLDER
//	    sub_category: Holders & Stands
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes YAML rules on top of DefaultRules.
func ParseRules(data []byte) (Rules, error) {
	var file struct {
		HouseholdPrefix *string           `yaml:"household_prefix"`
		HouseholdLabel  *string           `yaml:"household_label"`
		Categories      []CategoryRule    `yaml:"categories"`
		Subcategories   []SubcategoryRule `yaml:"subcategories"`
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	rules := DefaultRules()
	if file.Categories != nil {
		rules.Categories = file.Categories
	}
	if file.Subcategories != nil {
		rules.Subcategories = file.Subcategories
	}
	if file.HouseholdPrefix != nil {
		rules.HouseholdPrefix = *file.HouseholdPrefix
	}
	if file.HouseholdLabel != nil {
		rules.HouseholdLabel = *file.HouseholdLabel
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

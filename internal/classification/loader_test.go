package classification

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	tests := []struct {
		check   func(t *testing.T, rules Rules)
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "empty file keeps defaults",
			yaml: "",
			check: func(t *testing.T, rules Rules) {
				assert.Equal(t, DefaultRules(), rules)
			},
		},
		{
			name: "subcategories replaced in declared order",
			yaml: `
subcategories:
  - keyword: BASKET
    sub_category: Baskets
  - keyword: HOLDER
    sub_category: Holders
`,
			check: func(t *testing.T, rules Rules) {
				require.Len(t, rules.Subcategories, 2)
				assert.Equal(t, "BASKET", rules.Subcategories[0].Keyword)
				assert.Equal(t, DefaultRules().Categories, rules.Categories)
			},
		},
		{
			name: "household fallback can be disabled",
			yaml: `
household_prefix: ""
household_label: ""
`,
			check: func(t *testing.T, rules Rules) {
				assert.Empty(t, rules.HouseholdPrefix)
			},
		},
		{
			name:    "unknown field",
			yaml:    "colour: red\n",
			wantErr: true,
		},
		{
			name: "invalid rule",
			yaml: `
categories:
  - prefix: ""
    category: Nothing
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := ParseRules([]byte(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, rules)
		})
	}
}

func TestLoadRules_ReorderingChangesPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `
subcategories:
  - keyword: BASKET
    sub_category: Baskets & Containers
  - keyword: HOLDER
    sub_category: Holders & Stands
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	c, err := NewCategorizer(rules)
	require.NoError(t, err)

	assert.Equal(t, "Baskets & Containers", c.SubcategoryFromDescription("BASKET HOLDER", ""))
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rules file")
}

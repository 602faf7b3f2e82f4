package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertStringResult(t *testing.T, want string, got *string) {
	t.Helper()
	if want == "" {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func assertFloatResult(t *testing.T, want *float64, got *float64) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.Equal(t, *want, *got)
}

func ptr[T any](v T) *T {
	return &v
}

func TestExtractModelName(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "hyphenated code", description: "BOTTLE HOLDER AM-967 STEEL", want: "AM-967"},
		{name: "joined code", description: "TH5170 KITCHEN SCRUBBER", want: "TH5170"},
		{name: "lower case input", description: "hand cart sb-12", want: "SB-12"},
		{name: "code inside parentheses", description: "HANGER (NP-55)", want: "NP-55"},
		{name: "too many letters", description: "ABCD123 RACK", want: ""},
		{name: "ascii word boundary", description: "\u00c9AB-12 RACK", want: "AB-12"},
		{name: "no code", description: "PLAIN STEEL BOTTLE", want: ""},
		{name: "empty", description: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertStringResult(t, tt.want, ExtractModelName(tt.description))
		})
	}
}

func TestExtractModelNumber(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "parenthesized code", description: "SPRINKLER (RYX-02-020)", want: "RYX-02-020"},
		{name: "parenthesized number", description: "BOTTLE HOLDER (2628)", want: "2628"},
		{name: "code wins over number", description: "(3888) SPRINKLER (RYX-02-020)", want: "RYX-02-020"},
		{name: "model no label", description: "STRAINER MODEL NO: AB-12X", want: "AB-12X"},
		{name: "matching is case sensitive", description: "sprinkler (ryx-02-020)", want: ""},
		{name: "number too short", description: "HOOK (12)", want: ""},
		{name: "empty", description: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertStringResult(t, tt.want, ExtractModelNumber(tt.description))
		})
	}
}

func TestExtractCapacity(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "piece set", description: "STEEL CUTLERY 10PCS SET", want: "10"},
		{name: "single piece set", description: "KNIFE 6 PC SET", want: "6"},
		{name: "capacity label", description: "JUG CAPACITY: 1.5 LTR", want: "1.5"},
		{name: "litres", description: "WATER BOTTLE 1L", want: "1"},
		{name: "millilitres", description: "WATER BOTTLE 750ML", want: "750"},
		{name: "piece set wins over litres", description: "2L JUG 4PCS SET", want: "4"},
		{name: "no capacity", description: "STEEL BASKET", want: ""},
		{name: "empty", description: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertStringResult(t, tt.want, ExtractCapacity(tt.description))
		})
	}
}

func TestExtractMaterialType(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "stainless steel is not masked by steel", description: "STAINLESS STEEL BOTTLE", want: "STAINLESS_STEEL"},
		{name: "mild steel", description: "mild steel rack", want: "MILD_STEEL"},
		{name: "plain steel", description: "STEEL RACK", want: "STEEL"},
		{name: "plastic", description: "PLASTIC HANGER", want: "PLASTIC"},
		{name: "substring match", description: "GLASSWARE SET", want: "GLASS"},
		{name: "steel listed before copper", description: "COPPER COATED STEEL HOOK", want: "STEEL"},
		{name: "no material", description: "COTTON CLOTH", want: ""},
		{name: "empty", description: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertStringResult(t, tt.want, ExtractMaterialType(tt.description))
		})
	}
}

func TestExtractEmbeddedQuantity(t *testing.T) {
	tests := []struct {
		want        *float64
		name        string
		description string
	}{
		{name: "qty with pieces", description: "HOLDER QTY: 600 PCS", want: ptr(600.0)},
		{name: "qty without space and commas", description: "HOOK QTY:336,000 SETS", want: ptr(336000.0)},
		{name: "qty with space only", description: "QTY 6336 PCS STEEL", want: ptr(6336.0)},
		{name: "lower case", description: "qty: 12 kgs", want: ptr(12.0)},
		{name: "quantity label without unit", description: "QUANTITY: 1,200", want: ptr(1200.0)},
		{name: "non-breaking space", description: "QTY:\u00a0600 PCS", want: ptr(600.0)},
		{name: "vertical tab", description: "QTY\v600 PCS", want: ptr(600.0)},
		{name: "qty requires a unit", description: "QTY: 600", want: nil},
		{name: "malformed number is absent", description: "QTY: , PCS", want: nil},
		{name: "no quantity", description: "STEEL BOTTLE", want: nil},
		{name: "empty", description: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFloatResult(t, tt.want, ExtractEmbeddedQuantity(tt.description))
		})
	}
}

func TestExtractUnitPriceUSD(t *testing.T) {
	tests := []struct {
		want        *float64
		name        string
		description string
	}{
		{name: "usd per pieces", description: "HOLDER USD 2.03 PER PCS", want: ptr(2.03)},
		{name: "usd with colon", description: "USD:0.139 PER SETS", want: ptr(0.139)},
		{name: "four decimals", description: "USD 0.9718 PER PCS", want: ptr(0.9718)},
		{name: "unknown unit falls through to generic rule", description: "USD 5 PER DOZEN", want: ptr(5.0)},
		{name: "dollar sign", description: "$4.5 PER DOZEN", want: ptr(4.5)},
		{name: "malformed number is absent", description: "USD 1.2.3 PER PCS", want: nil},
		{name: "non-breaking space", description: "USD\u00a02.03 PER PCS", want: ptr(2.03)},
		{name: "price without per", description: "USD 2.03", want: nil},
		{name: "empty", description: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertFloatResult(t, tt.want, ExtractUnitPriceUSD(tt.description))
		})
	}
}

func TestExtract_NoRecognizablePattern(t *testing.T) {
	for _, desc := range []string{"", "ASSORTED HOUSEHOLD GOODS", "misc items", "()", "QTY"} {
		t.Run(desc, func(t *testing.T) {
			assert.NotPanics(t, func() {
				fields := Extract(desc)
				assert.Equal(t, Fields{}, fields)
			})
		})
	}
}

func TestRulesFirstMatchWins(t *testing.T) {
	rules := []Rule{
		newRule("first", `(A\d)`),
		newRule("second", `(\d+)`),
	}

	got, ok := firstMatch(rules, "123 A9")
	require.True(t, ok)
	assert.Equal(t, "A9", got)
}

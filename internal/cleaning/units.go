package cleaning

import "strings"

// unitSynonyms maps lower-cased unit spellings to their canonical form.
var unitSynonyms = map[string]string{
	"nos":       "pcs",
	"pieces":    "pcs",
	"piece":     "pcs",
	"pc":        "pcs",
	"pcs":       "pcs",
	"set":       "set",
	"sets":      "set",
	"kgs":       "kgs",
	"kg":        "kgs",
	"kilograms": "kgs",
}

// NormalizeUnit lower-cases and trims a unit, then maps known synonyms.
// Unknown units are returned in their lower-cased, trimmed form.
func NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitSynonyms[u]; ok {
		return canonical
	}
	return u
}

// Package cleaning normalizes raw shipment columns before parsing and categorization.
package cleaning

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// extraDateLayouts covers export formats that cast does not recognise.
// Slash dates are read month-first.
var extraDateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"01/02/2006 15:04:05",
	"2006/01/02",
	"02-Jan-2006",
	"02-Jan-06",
	"2-Jan-2006",
	"02.01.2006",
}

// ParseDate coerces v to a time. Unparsable values report false.
func ParseDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return val, !val.IsZero()
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		if t, err := cast.ToTimeE(s); err == nil {
			return t, true
		}
		for _, layout := range extraDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		// Numbers are not dates here, even though cast would read them as epochs.
		return time.Time{}, false
	}
}

// ToNumber coerces v to a finite float. Thousands separators are ignored.
func ToNumber(v any) (float64, bool) {
	var (
		f   float64
		err error
	)

	switch val := v.(type) {
	case nil:
		return 0, false
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if s == "" {
			return 0, false
		}
		f, err = cast.ToFloat64E(s)
	case bool:
		return 0, false
	default:
		f, err = cast.ToFloat64E(val)
	}

	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToNumberOrZero applies the zero-fill policy for numeric columns.
func ToNumberOrZero(v any) float64 {
	f, ok := ToNumber(v)
	if !ok {
		return 0
	}
	return f
}

// Quarter returns the calendar quarter (1-4) of t.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

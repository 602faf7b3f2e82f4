// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Textual forms used for time values leaving the pipeline.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// FormatTime renders t as a date when it has no time-of-day component.
func FormatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(TimestampLayout)
}

// Record represents a single shipment row from any source.
// A column missing from the map is absent; a nil value is treated the same way.
type Record map[string]any

// Get returns the value stored under name and whether it is present.
func (r Record) Get(name string) (any, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether name holds a non-nil value.
func (r Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// String returns the value under name rendered as text.
func (r Record) String(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok {
		return "", false
	}

	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	case time.Time:
		return FormatTime(val), true
	default:
		return fmt.Sprint(val), true
	}
}

// StringPtr is String with absence expressed as nil.
func (r Record) StringPtr(name string) *string {
	s, ok := r.String(name)
	if !ok {
		return nil
	}
	return &s
}

// Float returns a numeric value stored under name. Text is not parsed here;
// coercion belongs to the cleaning stage.
func (r Record) Float(name string) (float64, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}

	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

// Time returns a time value stored under name.
func (r Record) Time(name string) (time.Time, bool) {
	v, ok := r.Get(name)
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}

// Set stores v under name. Nil values and nil pointers delete the column
// from the record so that absence has exactly one representation.
func (r Record) Set(name string, v any) {
	switch val := v.(type) {
	case nil:
		delete(r, name)
	case *string:
		if val == nil {
			delete(r, name)
			return
		}
		r[name] = *val
	case *float64:
		if val == nil {
			delete(r, name)
			return
		}
		r[name] = *val
	case *time.Time:
		if val == nil {
			delete(r, name)
			return
		}
		r[name] = *val
	default:
		r[name] = v
	}
}

// Clone returns a shallow copy. Values are scalars, so the copy is independent.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

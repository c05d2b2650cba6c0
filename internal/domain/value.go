package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is an optional float64. A missing cell stays missing through the
// pipeline instead of riding along as a NaN sentinel, so downstream formulas
// must handle absence explicitly.
type Value struct {
	V  float64
	OK bool
}

// Some wraps a present float64.
func Some(v float64) Value { return Value{V: v, OK: true} }

// Missing is the absent Value.
var Missing = Value{}

// ParseValue coerces a raw forecast cell to a numeric Value. Unparsable
// cells become missing rather than failing the whole assembly.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing
	}
	return Some(f)
}

// Sanitize maps NaN and ±Inf to missing. Applied at the aggregation boundary
// so degenerate physical inputs surface as gaps, not exceptions.
func (v Value) Sanitize() Value {
	if !v.OK || math.IsNaN(v.V) || math.IsInf(v.V, 0) {
		return Missing
	}
	return v
}

// MarshalJSON encodes a present Value as a number and a missing one as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.OK {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}

// UnmarshalJSON decodes null as missing and a number as present.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Missing
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

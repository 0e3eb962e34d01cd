package core

import (
	"encoding/json"
	"strconv"
)

// Measure is a statistic that may be undefined, e.g. the mean of nothing.
// The zero value is the "no data" sentinel.
type Measure struct {
	Value float64
	Valid bool
}

// Defined wraps a computed value.
func Defined(v float64) Measure {
	return Measure{Value: v, Valid: true}
}

// Undefined returns the "no data" sentinel
func Undefined() Measure {
	return Measure{}
}

// String renders the value, or "undefined" when there is no data.
func (m Measure) String() string {
	if !m.Valid {
		return "undefined"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// MarshalJSON encodes undefined measures as null.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

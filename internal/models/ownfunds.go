package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is an optional non-negative capital figure. "Missing" and "zero"
// are distinct states: a reported zero is Present with Value 0.
type Amount struct {
	Value   float64
	Present bool
}

// SomeAmount wraps a known figure. Negative or non-finite input yields the
// absent Amount, never a clamped value.
func SomeAmount(v float64) Amount {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{Value: v, Present: true}
}

// MarshalJSON renders absent amounts as null so the serialized record keeps
// the missing/zero distinction.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Present {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON coerces model output into an optional figure. Accepted
// forms: JSON number, numeric string (optionally suffixed with '%').
// Anything else, and any negative or non-finite value, is treated as
// missing rather than as an error.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = SomeAmount(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
		if s == "" {
			return nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			*a = SomeAmount(n)
		}
		return nil
	}

	// Arrays, objects, booleans: unusable for a figure, treated as missing.
	return nil
}

// StructuredOwnFunds is the schema-validated output of the extraction step.
// All four fields are independently optional: partial extraction is an
// expected outcome, handled downstream by validation.
type StructuredOwnFunds struct {
	CET1  Amount `json:"CET1"`
	AT1   Amount `json:"AT1"`
	Tier2 Amount `json:"Tier2"`
	RWA   Amount `json:"RWA"`
}

// Package core provides money handling for expense amounts.
//
// Amounts travel as text in both directions: the create and edit forms
// submit whatever the user typed, and the server may answer with a JSON
// number or a numeric string. Amount keeps the raw text and coerces it to
// a decimal only when a number is needed for display or totals.
package core

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a leniently decoded monetary value.
type Amount struct {
	raw string
}

// NewAmount wraps raw text as an Amount.
func NewAmount(raw string) Amount {
	return Amount{raw: raw}
}

// String returns the raw text of the amount.
func (a Amount) String() string {
	return a.raw
}

// Decimal coerces the amount to a number. Absent or non-numeric values
// count as zero.
func (a Amount) Decimal() decimal.Decimal {
	s := strings.TrimSpace(a.raw)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Fixed2 formats the coerced amount with exactly two decimal places.
func (a Amount) Fixed2() string {
	return a.Decimal().StringFixed(2)
}

// UnmarshalJSON accepts numbers, numeric or non-numeric strings and null.
// Any other JSON value is kept verbatim and coerces to zero.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		a.raw = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		a.raw = s
	default:
		a.raw = string(b)
	}
	return nil
}

// MarshalJSON writes numeric amounts as JSON numbers and anything else as
// a string.
func (a Amount) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(a.raw)
	if _, err := decimal.NewFromString(s); err == nil && json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	return json.Marshal(a.raw)
}

// Package handlers – flexible numeric binding.
//
// The dealership frontend posts form values, so `ano` and `preco` may arrive
// either as JSON numbers or as numeric strings ("2022", "95000.50"). The
// field types here accept both, mirroring how the API has always been
// consumed. A JSON null or empty string decodes to the zero value, which the
// service layer treats as a missing field; anything non-numeric is a binding
// error and yields a 400 before any store call.
package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

// IntField is an int that unmarshals from a JSON number or numeric string.
// Fractional input is truncated toward zero.
type IntField int

// UnmarshalJSON implements json.Unmarshaler.
func (n *IntField) UnmarshalJSON(b []byte) error {
	f, err := parseNumeric(b)
	if err != nil {
		return fmt.Errorf("ano: %w", err)
	}
	*n = IntField(int(f))
	return nil
}

// FloatField is a float64 that unmarshals from a JSON number or numeric string.
type FloatField float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *FloatField) UnmarshalJSON(b []byte) error {
	f, err := parseNumeric(b)
	if err != nil {
		return fmt.Errorf("preco: %w", err)
	}
	*n = FloatField(f)
	return nil
}

// parseNumeric decodes a raw JSON token into a float64. null and "" map to 0
// (absent); quoted values are trimmed and parsed.
func parseNumeric(b []byte) (float64, error) {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return 0, nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
		if s == "" {
			return 0, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value %q", s)
	}
	return f, nil
}

package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexString decodes a JSON string or number into its string form.
// The backend is not consistent about quoting codes and receipt numbers.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// Amount is a money value that tolerates empty strings and nulls from the backend.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		a.Decimal = decimal.Zero
		return nil
	}
	return a.Decimal.UnmarshalJSON(data)
}

// Level is a course level, 1 to 10. Zero means unset.
type Level int

const (
	MinLevel Level = 1
	MaxLevel Level = 10
)

// Valid reports whether l is within 1..10.
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

func (l Level) String() string {
	if l == 0 {
		return ""
	}
	return strconv.Itoa(int(l))
}

// ParseLevel parses "3" or " 3 ". An empty string yields zero.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return Level(n), nil
}

// MarshalJSON writes the level as a string, the form the backend stores.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var f FlexString
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := ParseLevel(f.String())
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

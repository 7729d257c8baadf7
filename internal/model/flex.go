package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexNumber is a numeric field that upstream extraction may deliver as a
// JSON number, a numeric string, or an empty string. It round-trips all
// three without error; consumers ask for the float form explicitly.
type FlexNumber string

// UnmarshalJSON accepts numbers, strings, and null.
func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = FlexNumber(strings.TrimSpace(str))
		return nil
	}
	*f = FlexNumber(s)
	return nil
}

// MarshalJSON emits a bare number when the value parses as one,
// otherwise a string (empty included).
func (f FlexNumber) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(f), 64); err == nil {
		return []byte(f), nil
	}
	return json.Marshal(string(f))
}

// Float returns the numeric value and whether parsing succeeded.
func (f FlexNumber) Float() (float64, bool) {
	v, err := strconv.ParseFloat(string(f), 64)
	return v, err == nil
}

// IsEmpty reports whether no value is present.
func (f FlexNumber) IsEmpty() bool {
	return strings.TrimSpace(string(f)) == ""
}

// FlexFromFloat formats a float with at most one decimal place,
// trimming a trailing ".0" the way the enrichment output expects.
func FlexFromFloat(v float64) FlexNumber {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return FlexNumber(s)
}

// Package form reads quote-form snapshots and validates them.
package form

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// State is a read-only snapshot of form fields keyed by field identifier.
// Unchecked checkboxes and missing fields read as "".
type State interface {
	Value(field string) string
	Values(field string) []string
}

type valuesState url.Values

// FromValues adapts submitted HTML form values.
func FromValues(v url.Values) State {
	return valuesState(v)
}

func (s valuesState) Value(field string) string {
	return url.Values(s).Get(field)
}

func (s valuesState) Values(field string) []string {
	return url.Values(s)[field]
}

type mapState map[string]any

// FromMap adapts a decoded JSON object. Numbers and booleans are rendered as
// strings, false as "", and arrays as value lists.
func FromMap(m map[string]any) State {
	return mapState(m)
}

func (s mapState) Value(field string) string {
	values := s.Values(field)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (s mapState) Values(field string) []string {
	raw, ok := s[field]
	if !ok || raw == nil {
		return nil
	}
	if list, ok := raw.([]any); ok {
		out := make([]string, 0, len(list))
		for _, item := range list {
			if v := scalar(item); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	if list, ok := raw.([]string); ok {
		return list
	}
	if v := scalar(raw); v != "" {
		return []string{v}
	}
	return nil
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case interface{ String() string }:
		return x.String()
	default:
		return ""
	}
}

// Text returns the trimmed value of field.
func Text(s State, field string) string {
	return strings.TrimSpace(s.Value(field))
}

// Number parses field as a decimal number, accepting a decimal comma.
// Unparseable and non-finite input reads as zero.
func Number(s State, field string) float64 {
	raw := strings.ReplaceAll(Text(s, field), ",", ".")
	raw = strings.ReplaceAll(raw, " ", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Count parses field as a whole number, truncating decimals. Negative and
// out-of-range counts read as zero.
func Count(s State, field string) int {
	v := Number(s, field)
	if v < 0 || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

// Checked reports whether a checkbox or yes/no radio field is set.
func Checked(s State, field string) bool {
	switch strings.ToLower(Text(s, field)) {
	case "on", "true", "1", "ja", "yes":
		return true
	default:
		return false
	}
}

// List returns the trimmed, non-empty values of a multi-value field.
func List(s State, field string) []string {
	values := s.Values(field)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func textOr(s State, field, fallback string) string {
	if v := Text(s, field); v != "" {
		return v
	}
	return fallback
}

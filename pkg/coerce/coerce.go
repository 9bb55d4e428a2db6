// Package coerce turns raw dataset cells into numbers without ever failing.
// Missing, blank, non-numeric and non-finite cells yield the supplied default.
package coerce

import (
	"math"
	"strconv"
	"strings"
)

// Float parses raw as a float64, returning def when raw is not a finite number.
func Float(raw string, def float64) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return def
	}
	return parsed
}

// PositiveInt parses raw as a number, truncates it toward zero and returns def
// unless the result is at least 1. Results above limit are capped at limit.
func PositiveInt(raw string, def, limit int) int {
	value := math.Trunc(Float(raw, 0))
	if value < 1 {
		return def
	}
	if value > float64(limit) {
		return limit
	}
	return int(value)
}

// Value coerces an arbitrary decoded value (YAML, JSON, form input) to a
// float64, falling back to def.
func Value(value interface{}, def float64) float64 {
	switch v := value.(type) {
	case nil:
		return def
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return v
	case float32:
		return Value(float64(v), def)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return Float(v, def)
	case *float64:
		if v == nil {
			return def
		}
		return Value(*v, def)
	}
	return def
}

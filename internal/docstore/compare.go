package docstore

import "reflect"

// toFloat normalizes the numeric types that survive a JSON round trip plus
// the raw Go numerics callers put into filters.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// compareValues orders two document field values: -1, 0, or 1. Numbers
// compare numerically, strings lexicographically; anything else (or a type
// mismatch) is unordered.
func compareValues(a, b any) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case sa < sb:
			return -1, true
		case sa > sb:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// equalValues reports field equality for OpEqual filters. Numbers compare
// numerically; everything else requires an exact match.
func equalValues(a, b any) bool {
	if c, ok := compareValues(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

// matches applies every filter conjunctively.
func matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		v, ok := doc[f.Field]
		if !ok {
			return false
		}
		switch f.Op {
		case OpEqual:
			if !equalValues(v, f.Value) {
				return false
			}
		case OpGreaterThan:
			c, ok := compareValues(v, f.Value)
			if !ok || c <= 0 {
				return false
			}
		case OpLessThan:
			c, ok := compareValues(v, f.Value)
			if !ok || c >= 0 {
				return false
			}
		}
	}
	return true
}

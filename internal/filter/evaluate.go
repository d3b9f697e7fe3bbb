package filter

import "strings"

// Evaluate reports whether one entity matches the group. The entity is
// a map of field name to value, as produced by the entity's
// FilterFields projection. A nil group matches everything.
//
// Callers are expected to pass a normalized group; incomplete rules
// that slip through evaluate to false rather than erroring.
func Evaluate(entity map[string]interface{}, g *Group) bool {
	if g == nil || len(g.Rules) == 0 {
		return true
	}
	if g.Operator == CombineOr {
		for _, r := range g.Rules {
			if matchRule(entity, r) {
				return true
			}
		}
		return false
	}
	for _, r := range g.Rules {
		if !matchRule(entity, r) {
			return false
		}
	}
	return true
}

// Apply filters items, preserving their relative order. fields projects
// an item to its filterable field map.
func Apply[T any](g *Group, items []T, fields func(T) map[string]interface{}) []T {
	if g == nil || len(g.Rules) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Evaluate(fields(it), g) {
			out = append(out, it)
		}
	}
	return out
}

func matchRule(entity map[string]interface{}, r Rule) bool {
	got, present := entity[r.Field]
	if !present || got == nil {
		// A missing value can only satisfy the negative operators.
		return r.Operator == OpNotEquals || r.Operator == OpNotContains
	}

	switch r.Operator {
	case OpEquals:
		return strings.EqualFold(toString(got), toString(r.Value))
	case OpNotEquals:
		return !strings.EqualFold(toString(got), toString(r.Value))
	case OpContains:
		return containsFold(toString(got), toString(r.Value))
	case OpNotContains:
		return !containsFold(toString(got), toString(r.Value))
	case OpGreaterThan:
		a, b, ok := numericPair(got, r.Value)
		return ok && a > b
	case OpGreaterThanOrEqual:
		a, b, ok := numericPair(got, r.Value)
		return ok && a >= b
	case OpLessThan:
		a, b, ok := numericPair(got, r.Value)
		return ok && a < b
	case OpLessThanOrEqual:
		a, b, ok := numericPair(got, r.Value)
		return ok && a <= b
	case OpBetween:
		v, ok := toNumber(got)
		if !ok {
			return false
		}
		lo, okLo := toNumber(r.Value)
		hi, okHi := toNumber(r.Value2)
		if !okLo || !okHi {
			return false
		}
		// A reversed range (hi < lo) matches nothing.
		return v >= lo && v <= hi
	default:
		return false
	}
}

func numericPair(got, want interface{}) (float64, float64, bool) {
	a, okA := toNumber(got)
	b, okB := toNumber(want)
	return a, b, okA && okB
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

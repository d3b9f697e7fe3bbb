// Package filter implements the advanced-filter rule groups used by the
// catalog list screens. A group is a flat list of field/operator/value
// rules combined with a single AND or OR; there is no nesting. The same
// evaluator serves every entity type, parameterized by a field schema.
package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Rule operators.
const (
	OpEquals             = "equals"
	OpNotEquals          = "not_equals"
	OpContains           = "contains"
	OpNotContains        = "not_contains"
	OpGreaterThan        = "greater_than"
	OpGreaterThanOrEqual = "greater_than_or_equal"
	OpLessThan           = "less_than"
	OpLessThanOrEqual    = "less_than_or_equal"
	OpBetween            = "between"
)

// Group combinators.
const (
	CombineAnd = "AND"
	CombineOr  = "OR"
)

// FieldType classifies a filterable field.
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
)

var validTextOps = map[string]bool{
	OpEquals:      true,
	OpNotEquals:   true,
	OpContains:    true,
	OpNotContains: true,
}

var validNumberOps = map[string]bool{
	OpEquals:             true,
	OpNotEquals:          true,
	OpGreaterThan:        true,
	OpGreaterThanOrEqual: true,
	OpLessThan:           true,
	OpLessThanOrEqual:    true,
	OpBetween:            true,
}

var knownOps = map[string]bool{
	OpEquals:             true,
	OpNotEquals:          true,
	OpContains:           true,
	OpNotContains:        true,
	OpGreaterThan:        true,
	OpGreaterThanOrEqual: true,
	OpLessThan:           true,
	OpLessThanOrEqual:    true,
	OpBetween:            true,
}

// FieldSpec describes one filterable field of an entity type.
type FieldSpec struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

// Operators returns the operators valid for the field's type.
func (f FieldSpec) Operators() []string {
	if f.Type == FieldNumber {
		return []string{
			OpEquals, OpNotEquals,
			OpGreaterThan, OpGreaterThanOrEqual,
			OpLessThan, OpLessThanOrEqual,
			OpBetween,
		}
	}
	return []string{OpEquals, OpNotEquals, OpContains, OpNotContains}
}

// Schema is the ordered field table for one entity type. Order matters
// for UI display only.
type Schema []FieldSpec

// Field looks up a field spec by name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// OperatorValid reports whether op is allowed for the given field type.
func OperatorValid(t FieldType, op string) bool {
	switch t {
	case FieldNumber:
		return validNumberOps[op]
	default:
		return validTextOps[op]
	}
}

// Rule is a single predicate. Value holds a string or number literal;
// nil or empty means the rule is not yet filled in and is skipped at
// apply-time. Value2 is the upper bound for between.
type Rule struct {
	ID       string      `json:"id"`
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
	Value2   interface{} `json:"value2,omitempty"`
}

// Group is a flat list of rules joined by one combinator.
type Group struct {
	ID       string `json:"id"`
	Operator string `json:"operator"`
	Rules    []Rule `json:"rules"`
}

// Complete reports whether the rule carries enough values to evaluate:
// a known field, a valid operator for that field's type, a non-empty
// value, and for numeric fields a value that parses as a number (both
// values for between).
func (r Rule) Complete(schema Schema) bool {
	spec, ok := schema.Field(r.Field)
	if !ok {
		return false
	}
	if !OperatorValid(spec.Type, r.Operator) {
		return false
	}
	if isEmpty(r.Value) {
		return false
	}
	if spec.Type == FieldNumber {
		if _, ok := toNumber(r.Value); !ok {
			return false
		}
		if r.Operator == OpBetween {
			if isEmpty(r.Value2) {
				return false
			}
			if _, ok := toNumber(r.Value2); !ok {
				return false
			}
		}
	}
	return true
}

// Normalize drops incomplete rules and collapses an effectively empty
// group to nil, which means "no filter". The input is not mutated and
// the result is stable under re-normalization.
func Normalize(g *Group, schema Schema) *Group {
	if g == nil {
		return nil
	}
	kept := make([]Rule, 0, len(g.Rules))
	for _, r := range g.Rules {
		if r.Complete(schema) {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	op := g.Operator
	if op != CombineOr {
		op = CombineAnd
	}
	return &Group{ID: g.ID, Operator: op, Rules: kept}
}

// RemoveRule returns the group without the named rule, re-normalized.
// Removing the last rule yields nil.
func RemoveRule(g *Group, ruleID string, schema Schema) *Group {
	if g == nil {
		return nil
	}
	kept := make([]Rule, 0, len(g.Rules))
	for _, r := range g.Rules {
		if r.ID != ruleID {
			kept = append(kept, r)
		}
	}
	return Normalize(&Group{ID: g.ID, Operator: g.Operator, Rules: kept}, schema)
}

func isEmpty(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}

// toNumber coerces a literal to float64. Strings are parsed so that
// values typed into a text input still compare numerically.
func toNumber(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

package filter

import "fmt"

// Chip is the display projection of one active rule, rendered by the
// front end as a removable tag.
type Chip struct {
	RuleID string `json:"rule_id"`
	Label  string `json:"label"`
}

var operatorLabels = map[string]string{
	OpEquals:             "is",
	OpNotEquals:          "is not",
	OpContains:           "contains",
	OpNotContains:        "doesn't contain",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpBetween:            "between",
}

// Chips renders a label per rule in group order. Unknown fields fall
// back to the raw field name so a chip is never blank.
func Chips(g *Group, schema Schema) []Chip {
	if g == nil {
		return nil
	}
	chips := make([]Chip, 0, len(g.Rules))
	for _, r := range g.Rules {
		label := r.Field
		if spec, ok := schema.Field(r.Field); ok {
			label = spec.Label
		}
		opLabel := operatorLabels[r.Operator]
		var text string
		if r.Operator == OpBetween {
			text = fmt.Sprintf("%s %s %s and %s", label, opLabel, toString(r.Value), toString(r.Value2))
		} else {
			text = fmt.Sprintf("%s %s %s", label, opLabel, toString(r.Value))
		}
		chips = append(chips, Chip{RuleID: r.ID, Label: text})
	}
	return chips
}

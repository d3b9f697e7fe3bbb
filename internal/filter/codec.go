package filter

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned when stored filter data cannot be parsed
// back into a group. Callers surface it as a recoverable condition and
// leave any active filter untouched.
var ErrInvalidFormat = errors.New("invalid filter format")

// Encode serializes a group to the string stored in
// saved_filters.filter_data. A nil group encodes to "null".
func Encode(g *Group) (string, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode filter: %w", err)
	}
	return string(b), nil
}

// Decode parses stored filter data and validates its shape. Any parse
// failure, unknown operator, or unknown combinator reports
// ErrInvalidFormat; the evaluator never sees a malformed group.
func Decode(data string) (*Group, error) {
	if data == "" || data == "null" {
		return nil, nil
	}
	var g Group
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if g.Operator != CombineAnd && g.Operator != CombineOr {
		return nil, fmt.Errorf("%w: unknown combinator %q", ErrInvalidFormat, g.Operator)
	}
	for _, r := range g.Rules {
		if !knownOps[r.Operator] {
			return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidFormat, r.Operator)
		}
		if r.Field == "" {
			return nil, fmt.Errorf("%w: rule missing field", ErrInvalidFormat)
		}
	}
	return &g, nil
}

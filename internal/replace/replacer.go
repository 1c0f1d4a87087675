package replace

import (
	"errors"

	"github.com/apertium/apgrep/internal/types"
)

// ErrEmptyPattern is returned for a rule whose source side has no units.
// An empty pattern would match at every position.
var ErrEmptyPattern = errors.New("empty replacement pattern")

// Equal compares two atomic units.
type Equal func(a, b string) bool

// Exact is the default unit comparison.
func Exact(a, b string) bool {
	return a == b
}

// Sequence replaces every non-overlapping occurrence of pattern in units
// with replacement, scanning left to right. After a match the scan resumes
// right after it, so a match never starts inside an earlier one.
func Sequence(units, pattern, replacement []string, eq Equal) ([]string, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	if eq == nil {
		eq = Exact
	}

	result := make([]string, 0, len(units))
	i := 0
	for i+len(pattern) <= len(units) {
		if matchAt(units, i, pattern, eq) {
			result = append(result, replacement...)
			i += len(pattern)
			continue
		}
		result = append(result, units[i])
		i++
	}
	return append(result, units[i:]...), nil
}

func matchAt(units []string, at int, pattern []string, eq Equal) bool {
	for j, p := range pattern {
		if !eq(units[at+j], p) {
			return false
		}
	}
	return true
}

// Apply runs the rules one after another; each rule sees the output of
// the previous one.
func Apply(units []string, rules []types.Rule, eq Equal) ([]string, error) {
	var err error
	for _, rule := range rules {
		units, err = Sequence(units, rule.Source, rule.Target, eq)
		if err != nil {
			return nil, err
		}
	}
	return units, nil
}

// Scalar rewrites a whole symbol. A rule applies only when both sides are
// a single unit and the symbol equals the source unit; rules chain in
// order.
func Scalar(symbol string, rules []types.Rule) string {
	for _, rule := range rules {
		if len(rule.Source) == 1 && len(rule.Target) == 1 && symbol == rule.Source[0] {
			symbol = rule.Target[0]
		}
	}
	return symbol
}

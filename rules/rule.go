// Package rules parses replacement rules from the command line and from
// rule-set files.
package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apertium/apgrep/internal/token"
	"github.com/apertium/apgrep/internal/types"
)

// ErrMalformedRule is returned for rules that could never apply.
var ErrMalformedRule = errors.New("malformed rule")

// Parse reads a rule of the form "source/target". Each side is a list of
// whitespace-separated units. The separator is the only '/' not escaped by
// the dialect's escape character.
func Parse(dialect types.Dialect, spec string) (types.Rule, error) {
	seps := separators(spec, dialect.Escape())
	if len(seps) != 1 {
		return types.Rule{}, fmt.Errorf("%w: %q: expected exactly one unescaped '/', found %d", ErrMalformedRule, spec, len(seps))
	}

	rule := types.Rule{
		Name:   spec,
		Source: strings.Fields(spec[:seps[0]]),
		Target: strings.Fields(spec[seps[0]+1:]),
	}
	if err := Validate(dialect, rule); err != nil {
		return types.Rule{}, err
	}
	return rule, nil
}

// ParseAll parses every rule in order.
func ParseAll(dialect types.Dialect, specs []string) ([]types.Rule, error) {
	rules := make([]types.Rule, 0, len(specs))
	for _, spec := range specs {
		rule, err := Parse(dialect, spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func separators(spec string, escape byte) []int {
	var seps []int
	for i := 0; i < len(spec); i++ {
		switch spec[i] {
		case escape:
			i++
		case '/':
			seps = append(seps, i)
		}
	}
	return seps
}

// Validate rejects rules with an empty source, and scalar-dialect rules
// whose sides are not exactly one unit.
func Validate(dialect types.Dialect, rule types.Rule) error {
	if len(rule.Source) == 0 {
		return fmt.Errorf("%w: %q: empty source pattern", ErrMalformedRule, rule.Name)
	}
	if !dialect.IsList() && (len(rule.Source) != 1 || len(rule.Target) != 1) {
		return fmt.Errorf("%w: %q: %s rules must replace one symbol with one symbol", ErrMalformedRule, rule.Name, dialect)
	}
	return nil
}

// Warnings reports source units of list-dialect rules that the dialect
// tokenizer would split into several units. Such rules are valid but can
// never match.
func Warnings(dialect types.Dialect, rules []types.Rule) []string {
	tok, ok := token.ForDialect(dialect)
	if !ok {
		return nil
	}

	var warnings []string
	for _, rule := range rules {
		for _, unit := range rule.Source {
			if !tok.IsUnit(unit) {
				warnings = append(warnings, fmt.Sprintf("rule %q: %q is not a single %s unit and will never match", rule.Name, unit, dialect))
			}
		}
	}
	return warnings
}

// Package token splits the replaceable text of lexicon entries into atomic
// units: single characters, escaped characters and bracketed multichar
// symbols.
package token

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/apertium/apgrep/internal/types"
)

// Unit patterns are written for a backtracking engine and evaluated
// leftmost-first. The trailing "." alternative (single-line mode, so it
// also matches newlines) makes every position of the input match.
const (
	lexdUnitPattern = `<[^>\\]*>|\{[^}\\]*\}|\\.|.`
	lexcUnitPattern = `%<(?:[^>%]|%.)*%>|%\{(?:[^}%]|%.)*%\}|%.|.`
)

var (
	lexdTokenizer = MustCompile(lexdUnitPattern)
	lexcTokenizer = MustCompile(lexcUnitPattern)
)

// Tokenizer segments text spans into atomic units.
type Tokenizer struct {
	re *regexp2.Regexp
}

// MustCompile builds a Tokenizer from a unit pattern and panics if the
// pattern is invalid.
func MustCompile(pattern string) *Tokenizer {
	return &Tokenizer{re: regexp2.MustCompile(pattern, regexp2.Singleline)}
}

// ForDialect returns the tokenizer of a list dialect. Scalar dialects
// have none.
func ForDialect(d types.Dialect) (*Tokenizer, bool) {
	switch d {
	case types.Lexd:
		return lexdTokenizer, true
	case types.Lexc:
		return lexcTokenizer, true
	default:
		return nil, false
	}
}

// Tokenize returns the ordered atomic units of span. Joining the result
// reproduces span exactly. Characters the pattern does not claim become
// single-character units, so malformed input never fails to tokenize.
func (t *Tokenizer) Tokenize(span string) ([]string, error) {
	if span == "" {
		return nil, nil
	}

	runes := []rune(span)
	units := make([]string, 0, len(runes))
	pos := 0

	m, err := t.re.FindStringMatch(span)
	for m != nil {
		for ; pos < m.Index; pos++ {
			units = append(units, string(runes[pos]))
		}
		if m.Length > 0 {
			units = append(units, m.String())
			pos = m.Index + m.Length
		}
		m, err = t.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("tokenize %q: %w", span, err)
	}

	for ; pos < len(runes); pos++ {
		units = append(units, string(runes[pos]))
	}
	return units, nil
}

// IsUnit reports whether s is exactly one atomic unit.
func (t *Tokenizer) IsUnit(s string) bool {
	units, err := t.Tokenize(s)
	return err == nil && len(units) == 1
}

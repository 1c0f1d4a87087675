package internal

import (
	"fmt"
	"strings"

	"github.com/apertium/apgrep/internal/replace"
	"github.com/apertium/apgrep/internal/selector"
	"github.com/apertium/apgrep/internal/syntax"
	"github.com/apertium/apgrep/internal/token"
	"github.com/apertium/apgrep/internal/types"
	"github.com/apertium/apgrep/rules"
)

// strategy binds the parts used to rewrite one dialect. A nil tokenizer
// marks a scalar dialect.
type strategy struct {
	parser    syntax.Parser
	selector  selector.Selector
	tokenizer *token.Tokenizer
}

func strategyFor(d types.Dialect) (strategy, error) {
	parser, err := syntax.ForDialect(d)
	if err != nil {
		return strategy{}, err
	}
	tok, _ := token.ForDialect(d)

	switch d {
	case types.Lexd:
		return strategy{
			parser: parser,
			selector: selector.Segments{
				Kind: syntax.KindLexiconSegment,
				Excluded: map[string]bool{
					syntax.KindTagSetting: true,
					syntax.KindRegex:      true,
					syntax.KindColon:      true,
				},
			},
			tokenizer: tok,
		}, nil
	case types.Lexc:
		return strategy{
			parser: parser,
			selector: selector.Segments{
				Kind:     syntax.KindLexiconString,
				Excluded: map[string]bool{syntax.KindColon: true},
			},
			tokenizer: tok,
		}, nil
	default:
		return strategy{
			parser:   parser,
			selector: selector.Symbols{Kind: syntax.KindSymbol},
		}, nil
	}
}

// Engine rewrites documents of one dialect with an ordered rule list.
type Engine struct {
	dialect  types.Dialect
	rules    []types.Rule
	strategy strategy
}

// NewEngine creates an engine for dialect. Every rule is validated up
// front so a malformed rule never reaches a document.
func NewEngine(d types.Dialect, rs []types.Rule) (*Engine, error) {
	s, err := strategyFor(d)
	if err != nil {
		return nil, err
	}
	for _, rule := range rs {
		if err := rules.Validate(d, rule); err != nil {
			return nil, err
		}
	}

	return &Engine{
		dialect:  d,
		rules:    append([]types.Rule(nil), rs...),
		strategy: s,
	}, nil
}

func (e *Engine) Dialect() types.Dialect {
	return e.dialect
}

func (e *Engine) Rules() []types.Rule {
	return append([]types.Rule(nil), e.rules...)
}

// Edit replaces the bytes of Range with Text.
type Edit struct {
	types.Range
	Text string
}

// Result describes one rewritten document.
type Result struct {
	Output  string
	Ranges  int
	Changed int
}

// Edits returns, in document order, an edit for every selected range whose
// rewritten text differs from the original. The second result is the
// number of ranges that were considered.
func (e *Engine) Edits(doc []byte) ([]Edit, int, error) {
	tree := e.strategy.parser.Parse(doc)
	ranges := e.strategy.selector.Ranges(tree)

	var edits []Edit
	for _, r := range ranges {
		original := string(doc[r.Start:r.End])
		rewritten, err := e.rewrite(original)
		if err != nil {
			return nil, 0, fmt.Errorf("range %s: %w", r, err)
		}
		if rewritten != original {
			edits = append(edits, Edit{Range: r, Text: rewritten})
		}
	}
	return edits, len(ranges), nil
}

func (e *Engine) rewrite(text string) (string, error) {
	if e.strategy.tokenizer == nil {
		return replace.Scalar(text, e.rules), nil
	}

	units, err := e.strategy.tokenizer.Tokenize(text)
	if err != nil {
		return "", err
	}
	units, err = replace.Apply(units, e.rules, replace.Exact)
	if err != nil {
		return "", err
	}
	return strings.Join(units, ""), nil
}

// Run validates, rewrites and reassembles doc.
func (e *Engine) Run(doc []byte) (Result, error) {
	if err := ValidateEncoding(doc); err != nil {
		return Result{}, err
	}

	edits, n, err := e.Edits(doc)
	if err != nil {
		return Result{}, err
	}

	out, err := Reassemble(doc, edits)
	if err != nil {
		return Result{}, err
	}
	return Result{Output: out, Ranges: n, Changed: len(edits)}, nil
}

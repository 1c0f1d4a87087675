package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apertium/apgrep/internal/syntax"
	"github.com/apertium/apgrep/internal/types"
)

var lexdExcluded = map[string]bool{
	syntax.KindTagSetting: true,
	syntax.KindRegex:      true,
	syntax.KindColon:      true,
}

func segmentTree(start, end int, children ...*syntax.Node) *syntax.Tree {
	seg := &syntax.Node{Type: syntax.KindLexiconSegment, Start: start, End: end, Children: children}
	root := &syntax.Node{Type: syntax.KindSource, Start: 0, End: end, Children: []*syntax.Node{seg}}
	return &syntax.Tree{Root: root, Source: make([]byte, end)}
}

func child(kind string, start, end int) *syntax.Node {
	return &syntax.Node{Type: kind, Start: start, End: end}
}

func TestSegmentsGaps(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		tree     *syntax.Tree
		expected []types.Range
	}{
		{
			name:     "excluded child in the middle",
			tree:     segmentTree(0, 20, child(syntax.KindTagSetting, 5, 10)),
			expected: []types.Range{{Start: 0, End: 5}, {Start: 10, End: 20}},
		},
		{
			name:     "excluded child at the start",
			tree:     segmentTree(0, 8, child(syntax.KindColon, 0, 1)),
			expected: []types.Range{{Start: 1, End: 8}},
		},
		{
			name: "abutting excluded children",
			tree: segmentTree(0, 12,
				child(syntax.KindColon, 3, 4),
				child(syntax.KindTagSetting, 4, 9),
			),
			expected: []types.Range{{Start: 0, End: 3}, {Start: 9, End: 12}},
		},
		{
			name:     "excluded child at the end",
			tree:     segmentTree(0, 9, child(syntax.KindRegex, 4, 9)),
			expected: []types.Range{{Start: 0, End: 4}},
		},
		{
			name: "non excluded children are part of the gaps",
			tree: segmentTree(0, 6,
				child(syntax.KindLexiconString, 0, 2),
				child(syntax.KindColon, 2, 3),
				child(syntax.KindLexiconString, 3, 6),
			),
			expected: []types.Range{{Start: 0, End: 2}, {Start: 3, End: 6}},
		},
		{
			name:     "segment fully excluded",
			tree:     segmentTree(0, 5, child(syntax.KindTagSetting, 0, 5)),
			expected: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sel := Segments{Kind: syntax.KindLexiconSegment, Excluded: lexdExcluded}
			got := sel.Ranges(tt.tree)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSegmentsOnParsedLexd(t *testing.T) {
	t.Parallel()
	src := []byte("LEXICON X\nab:c[x]d /re/ e # c:d\n")
	tree := syntax.ParseLexd(src)
	sel := Segments{Kind: syntax.KindLexiconSegment, Excluded: lexdExcluded}

	var got []string
	for _, r := range sel.Ranges(tree) {
		got = append(got, string(src[r.Start:r.End]))
	}
	assert.Equal(t, []string{"ab", "c", "d", "e"}, got)
}

func TestSymbols(t *testing.T) {
	t.Parallel()
	src := []byte("Alphabet a b %{aA%}:a ;")
	tree := syntax.ParseTwolc(src)

	var got []string
	for _, r := range (Symbols{Kind: syntax.KindSymbol}).Ranges(tree) {
		got = append(got, string(src[r.Start:r.End]))
	}
	assert.Equal(t, []string{"a", "b", "%{aA%}", "a"}, got)
}

func TestNormalizeDropsOverlaps(t *testing.T) {
	t.Parallel()
	got := normalize([]types.Range{
		{Start: 10, End: 12},
		{Start: 0, End: 5},
		{Start: 3, End: 4},
		{Start: 5, End: 5},
		{Start: 5, End: 7},
	})
	assert.Equal(t, []types.Range{{Start: 0, End: 5}, {Start: 5, End: 7}, {Start: 10, End: 12}}, got)
}

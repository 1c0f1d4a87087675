// Package selector extracts the byte ranges of a parsed document that are
// eligible for rewriting.
package selector

import (
	"sort"

	"github.com/apertium/apgrep/internal/syntax"
	"github.com/apertium/apgrep/internal/types"
)

// Selector yields ordered, non-overlapping ranges of a tree's source.
type Selector interface {
	Ranges(tree *syntax.Tree) []types.Range
}

// Symbols selects every node of one kind as a whole.
type Symbols struct {
	Kind string
}

func (s Symbols) Ranges(tree *syntax.Tree) []types.Range {
	var ranges []types.Range
	for _, n := range tree.Query(s.Kind) {
		ranges = append(ranges, n.Range())
	}
	return normalize(ranges)
}

// Segments selects the text of every node of kind Kind minus the spans of
// its children whose kind is in Excluded.
type Segments struct {
	Kind     string
	Excluded map[string]bool
}

func (s Segments) Ranges(tree *syntax.Tree) []types.Range {
	var ranges []types.Range
	for _, seg := range tree.Query(s.Kind) {
		ranges = append(ranges, s.gaps(seg)...)
	}
	return normalize(ranges)
}

// gaps walks the children of seg with a cursor. Each excluded child ends
// the current gap (if it is not empty) and moves the cursor past itself.
func (s Segments) gaps(seg *syntax.Node) []types.Range {
	var ranges []types.Range
	loc := seg.Start
	for _, c := range seg.Children {
		if !s.Excluded[c.Type] {
			continue
		}
		if c.Start > loc {
			ranges = append(ranges, types.Range{Start: loc, End: c.Start})
		}
		if c.End > loc {
			loc = c.End
		}
	}
	if loc < seg.End {
		ranges = append(ranges, types.Range{Start: loc, End: seg.End})
	}
	return ranges
}

// normalize sorts ranges and drops empty ones and any range that overlaps
// an earlier one, which can only happen when selected nodes nest.
func normalize(ranges []types.Range) []types.Range {
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	out := ranges[:0]
	end := -1
	for _, r := range ranges {
		if r.Len() <= 0 || r.Start < end {
			continue
		}
		out = append(out, r)
		end = r.End
	}
	return out
}

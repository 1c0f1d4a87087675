// Package syntax parses lexd, lexc, twolc and xfst sources into shallow
// syntax trees whose nodes carry byte offsets into the original input.
//
// The parsers are tolerant: every input produces a tree, and constructs
// that are never closed are read as plain text. Nodes never overlap their
// siblings and children always lie inside their parent.
package syntax

import (
	"fmt"

	"github.com/apertium/apgrep/internal/types"
)

// Node kinds shared by several dialects.
const (
	KindSource    = "source_file"
	KindComment   = "comment"
	KindKeyword   = "keyword"
	KindSymbol    = "symbol"
	KindOperator  = "operator"
	KindColon     = "colon"
	KindRegex     = "regex"
	KindText      = "text"
	KindSemicolon = "semicolon"
)

// Node is a syntax tree node covering src[Start:End].
type Node struct {
	Type     string
	Start    int
	End      int
	Children []*Node
}

func newNode(kind string, start, end int) *Node {
	return &Node{Type: kind, Start: start, End: end}
}

func (n *Node) add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Text returns the source text covered by the node.
func (n *Node) Text(src []byte) string {
	return string(src[n.Start:n.End])
}

// Range returns the node's byte span.
func (n *Node) Range() types.Range {
	return types.Range{Start: n.Start, End: n.End}
}

func (n *Node) String() string {
	return fmt.Sprintf("%s[%d,%d)", n.Type, n.Start, n.End)
}

// Tree is the parse result for one document.
type Tree struct {
	Root   *Node
	Source []byte
}

// Walk visits nodes in document order (pre-order). Returning false from
// fn skips the node's children.
func (t *Tree) Walk(fn func(*Node) bool) {
	var visit func(*Node)
	visit = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	if t.Root != nil {
		visit(t.Root)
	}
}

// Query returns every node of the given kind in document order.
func (t *Tree) Query(kind string) []*Node {
	var nodes []*Node
	t.Walk(func(n *Node) bool {
		if n.Type == kind {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// Parser turns raw source bytes into a syntax tree.
type Parser interface {
	Parse(src []byte) *Tree
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(src []byte) *Tree

func (f ParserFunc) Parse(src []byte) *Tree {
	return f(src)
}

// ForDialect returns the parser of a dialect.
func ForDialect(d types.Dialect) (Parser, error) {
	switch d {
	case types.Lexd:
		return ParserFunc(ParseLexd), nil
	case types.Lexc:
		return ParserFunc(ParseLexc), nil
	case types.Twolc:
		return ParserFunc(ParseTwolc), nil
	case types.Xfst:
		return ParserFunc(ParseXfst), nil
	}
	return nil, fmt.Errorf("no parser for dialect %s", d)
}

// Package ast holds the GemXML syntax tree: a NodeList of TagNodes and
// TextNodes. Nodes are produced once by the parser and consumed once by the
// compiler; nothing mutates them afterwards.
package ast

import (
	"github.com/creeperdoesredstone/gemmarkups/internal/source"
)

type Pos source.Span

func (p Pos) Span() source.Span {
	return source.Span(p)
}

type Node interface {
	Span() source.Span
}

// NodeList is an ordered sequence of sibling nodes, spanning from its first
// child to its last.
type NodeList struct {
	Pos

	Body []Node
}

type TextNode struct {
	Pos

	Content string
}

// TagNode is an element with its attribute mapping (unique keys, last write
// wins) and one child NodeList. Its span covers open tag to close tag.
type TagNode struct {
	Pos

	Name       string
	Attributes map[string]string
	Content    *NodeList
}

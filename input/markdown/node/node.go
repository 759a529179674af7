/*
Package node defines the document tree of a Markdown file.

The tree is a closed sum type: every node implements interface Node, and
Node.Type discriminates the concrete variant. Variants fall into three groups:
block nodes (headings, lists, tables, …), inline nodes (text, code spans,
links, macro invocations) and processed nodes, which replace macro
invocations once macros have been applied (numbered pictures, citation keys,
application listings, …).

Every node covers a half-open range of byte offsets into the source text.
A child's range is contained in its parent's range, and siblings are ordered
by position without overlapping. Parent links are plain back-references used
for lookups only; ownership runs from parent to children.

During parsing, a TokensNode provides a view over a slice of tokens, bound to
the node currently under construction.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package node

import (
	"fmt"

	"github.com/npillmayer/mdtree/core/source"
)

// Node is the interface every tree node implements.
type Node interface {
	Type() Type
	Pos() source.Span
	Parent() Node
	base() *leaf
}

// Container is a node owning an ordered sequence of children.
type Container interface {
	Node
	Children() []Node
	content() *container
}

// leaf is the common part of all nodes.
type leaf struct {
	pos    source.Span
	parent Node
}

func (l *leaf) Pos() source.Span { return l.pos }
func (l *leaf) Parent() Node     { return l.parent }
func (l *leaf) base() *leaf      { return l }

// SetPos sets the range covered by a node.
func SetPos(n Node, pos source.Span) {
	n.base().pos = pos
}

type container struct {
	leaf
	children []Node
}

func (c *container) Children() []Node     { return c.children }
func (c *container) content() *container { return c }

// Append adds children to the end of a container and sets their parent.
func Append(parent Container, children ...Node) {
	c := parent.content()
	for _, ch := range children {
		if ch == nil {
			continue
		}
		ch.base().parent = parent
		c.children = append(c.children, ch)
	}
}

// SetChildren replaces all children of a container.
func SetChildren(parent Container, children []Node) {
	parent.content().children = nil
	Append(parent, children...)
}

// Adopt sets the parent of nodes which are not stored as children of
// parent, e.g. argument nodes of a macro or caption nodes.
func Adopt(parent Node, nodes ...Node) {
	for _, n := range nodes {
		if n != nil {
			n.base().parent = parent
		}
	}
}

// Detach removes the child at index i from a container and clears its parent.
func Detach(parent Container, i int) Node {
	c := parent.content()
	if i < 0 || i >= len(c.children) {
		return nil
	}
	ch := c.children[i]
	c.children = append(c.children[:i:i], c.children[i+1:]...)
	ch.base().parent = nil
	return ch
}

// Replace substitutes the child at index i with zero or more nodes.
func Replace(parent Container, i int, nodes ...Node) {
	c := parent.content()
	if i < 0 || i >= len(c.children) {
		return
	}
	c.children[i].base().parent = nil
	rest := append([]Node{}, c.children[i+1:]...)
	c.children = c.children[:i]
	Append(parent, nodes...)
	c.children = append(c.children, rest...)
}

// Insert places nodes before the child at index i. An index past the last
// child appends.
func Insert(parent Container, i int, nodes ...Node) {
	c := parent.content()
	if i < 0 {
		i = 0
	}
	if i >= len(c.children) {
		Append(parent, nodes...)
		return
	}
	rest := append([]Node{}, c.children[i:]...)
	c.children = c.children[:i]
	Append(parent, nodes...)
	c.children = append(c.children, rest...)
}

// IndexOf returns the position of child within parent, or -1.
func IndexOf(parent Container, child Node) int {
	for i, ch := range parent.Children() {
		if ch == child {
			return i
		}
	}
	return -1
}

// Children returns the children of n, or nil if n is not a container.
func Children(n Node) []Node {
	if c, ok := n.(Container); ok {
		return c.Children()
	}
	return nil
}

// Cover returns the smallest span covering all nodes.
func Cover(nodes []Node) source.Span {
	var s source.Span
	for i, n := range nodes {
		if i == 0 {
			s = n.Pos()
			continue
		}
		s = s.Cover(n.Pos())
	}
	return s
}

// WalkFunc is called for every node during a walk. Returning false skips the
// children of n.
type WalkFunc func(n Node, depth int) bool

// Walk visits n and its descendants in document order.
func Walk(n Node, visit WalkFunc) {
	walk(n, 0, visit)
}

func walk(n Node, depth int, visit WalkFunc) {
	if n == nil || !visit(n, depth) {
		return
	}
	for _, ch := range Children(n) {
		walk(ch, depth+1, visit)
	}
}

// Find returns all nodes below and including n for which pred is true.
func Find(n Node, pred func(Node) bool) []Node {
	var r []Node
	Walk(n, func(x Node, _ int) bool {
		if pred(x) {
			r = append(r, x)
		}
		return true
	})
	return r
}

// OfType returns all nodes of type t below and including n.
func OfType(n Node, t Type) []Node {
	return Find(n, func(x Node) bool { return x.Type() == t })
}

// CheckRanges verifies the range invariants for the tree rooted at n:
// children lie inside their parent, siblings are ordered and do not overlap,
// and parent links match. It returns the first violation found.
func CheckRanges(n Node) error {
	var err error
	Walk(n, func(x Node, _ int) bool {
		if err != nil {
			return false
		}
		var prev Node
		for _, ch := range Children(x) {
			if ch.Parent() != x {
				err = fmt.Errorf("%s at %s has wrong parent", ch.Type(), ch.Pos())
				return false
			}
			if !x.Pos().Contains(ch.Pos()) {
				err = fmt.Errorf("%s at %s outside of parent %s at %s", ch.Type(), ch.Pos(),
					x.Type(), x.Pos())
				return false
			}
			if prev != nil && !prev.Pos().Before(ch.Pos()) {
				err = fmt.Errorf("%s at %s overlaps preceding %s at %s", ch.Type(), ch.Pos(),
					prev.Type(), prev.Pos())
				return false
			}
			prev = ch
		}
		return true
	})
	return err
}

// TextContent concatenates the text of all text-like nodes below n.
func TextContent(n Node) string {
	var b []byte
	Walk(n, func(x Node, _ int) bool {
		switch t := x.(type) {
		case *TextNode:
			b = append(b, t.Text...)
		case *CodeSpanNode:
			b = append(b, t.Text...)
		case *CodeNode:
			b = append(b, t.Text...)
		}
		return true
	})
	return string(b)
}

// TextOf concatenates the text content of a node list.
func TextOf(nodes []Node) string {
	s := ""
	for _, n := range nodes {
		s += TextContent(n)
	}
	return s
}

/*
Package query implements XPath queries over document trees.

We use this library for XPath queries:

	github.com/antchfx/xpath

Package query implements an xpath.NodeNavigator to enable antchfx/xpath to
access a document tree. Element names are node type names, e.g.

	//Heading[@level='2']
	//PictureProcessed[@label='setup']/@index
	//AllApplications/*

Listings expose their items as children. Node properties are exposed as
attributes; every element has an attribute "span" holding its source range.

For a description of the various methods of interface xpath.NodeNavigator
please refer to the documentation of antchfx/xpath. It is not replicated here.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package query

import (
	"errors"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtree.query'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.query")
}

// NodeNavigator navigates a document tree for XPath evaluation.
type NodeNavigator struct {
	root, current node.Node
	attr          int // attributes index
}

// NewNavigator creates a new xpath.NodeNavigator for a document tree.
func NewNavigator(n node.Node) *NodeNavigator {
	return &NodeNavigator{
		current: n,
		root:    n,
		attr:    -1,
	}
}

// CurrentNode returns the node a navigator is positioned at.
func CurrentNode(nav xpath.NodeNavigator) (node.Node, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type query.NodeNavigator")
	}
	return mynav.current, nil
}

// children returns the nodes a navigator visits below n.
func children(n node.Node) []node.Node {
	if l, ok := n.(*node.ListingNode); ok {
		items := make([]node.Node, len(l.Items))
		for i, item := range l.Items {
			items[i] = item
		}
		return items
	}
	return node.Children(n)
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	if nav.attr != -1 {
		return xpath.AttributeNode
	}
	switch nav.current.Type() {
	case node.File:
		return xpath.RootNode
	case node.Text:
		return xpath.TextNode
	case node.Comment:
		return xpath.CommentNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.attr != -1 {
		return attributes(nav.current)[nav.attr].key
	}
	return nav.current.Type().String()
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	if nav.attr != -1 {
		return attributes(nav.current)[nav.attr].val
	}
	switch n := nav.current.(type) {
	case *node.CommentNode:
		return n.Text
	case *node.ListingNode:
		s := ""
		for _, item := range n.Items {
			s += node.TextContent(item)
		}
		return s
	}
	return node.TextContent(nav.current)
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if nav.current == nav.root || nav.current.Parent() == nil {
		return false
	}
	nav.current = nav.current.Parent()
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.attr >= len(attributes(nav.current))-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	ch := children(nav.current)
	if len(ch) == 0 {
		return false
	}
	nav.current = ch[0]
	return true
}

// siblings returns the siblings of the current node and its index among them.
func (nav *NodeNavigator) siblings() ([]node.Node, int) {
	if nav.current == nav.root || nav.current.Parent() == nil {
		return nil, -1
	}
	sibs := children(nav.current.Parent())
	for i, s := range sibs {
		if s == nav.current {
			return sibs, i
		}
	}
	return nil, -1
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 {
		return false
	}
	sibs, i := nav.siblings()
	if i <= 0 {
		return false
	}
	nav.current = sibs[0]
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

func (nav *NodeNavigator) MoveToNext() bool {
	if nav.attr != -1 {
		return false
	}
	sibs, i := nav.siblings()
	if i < 0 || i+1 >= len(sibs) {
		return false
	}
	nav.current = sibs[i+1]
	return true
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	if nav.attr != -1 {
		return false
	}
	sibs, i := nav.siblings()
	if i <= 0 {
		return false
	}
	nav.current = sibs[i-1]
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.attr = n.attr
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}

package node

import (
	"github.com/npillmayer/mdtree/core/source"
)

// TextNode is plain text.
type TextNode struct {
	leaf
	Text string
}

// NewText creates a text node.
func NewText(text string, pos source.Span) *TextNode {
	t := &TextNode{Text: text}
	t.pos = pos
	return t
}

func (*TextNode) Type() Type { return Text }

// CodeSpanNode is inline code.
type CodeSpanNode struct {
	leaf
	Text string
}

func (*CodeSpanNode) Type() Type { return CodeSpan }

// LinkNode is a hyperlink. Children are the link text.
type LinkNode struct {
	container
	Href string
}

func (*LinkNode) Type() Type { return Link }

// ImageNode is an image. Children are the alternative text.
type ImageNode struct {
	container
	Src string
}

func (*ImageNode) Type() Type { return Image }

// SpanNode is inline formatting: strong, emphasis or strikethrough.
type SpanNode struct {
	container
	Kind   Type
	Marker string
}

// NewSpan creates a formatting span of a given kind.
func NewSpan(kind Type, marker string) *SpanNode {
	return &SpanNode{Kind: kind, Marker: marker}
}

func (s *SpanNode) Type() Type { return s.Kind }

// Arg is a positional macro argument.
type Arg struct {
	Nodes []Node
	Pos   source.Span
}

// KeyArg is a keyed macro argument, written as "(@key value)".
type KeyArg struct {
	Key    string
	KeyPos source.Span // range of the key name
	Value  []Node
	Pos    source.Span
}

// OpCodeNode is a macro invocation:
//
//     !Name[label|arg|…](arg)(@key value)
//
// Bracket segments come first in PosArgs, followed by parenthesized
// arguments. Repeated keys are kept in KeyArgs in source order.
type OpCodeNode struct {
	leaf
	Name      string
	NamePos   source.Span
	Bracketed int // number of PosArgs written in brackets
	PosArgs   []Arg
	KeyArgs   []KeyArg
}

func (*OpCodeNode) Type() Type { return OpCode }

// ArgNodes returns all argument nodes, positional arguments first.
func (op *OpCodeNode) ArgNodes() []Node {
	var nodes []Node
	for _, a := range op.PosArgs {
		nodes = append(nodes, a.Nodes...)
	}
	for _, k := range op.KeyArgs {
		nodes = append(nodes, k.Value...)
	}
	return nodes
}

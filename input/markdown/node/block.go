package node

import (
	"github.com/npillmayer/mdtree/core/source"
)

// FileNode is the root of a document tree.
type FileNode struct {
	container
	Path   string
	Source *source.Source
}

// NewFile creates a root node for a source.
func NewFile(src *source.Source) *FileNode {
	f := &FileNode{Path: src.Path, Source: src}
	f.pos = source.Span{Start: 0, End: src.Len()}
	return f
}

func (*FileNode) Type() Type { return File }

// RawNode stands for unparsed tokens, typically a whole source.
type RawNode struct {
	leaf
	View *TokensNode
}

// NewRaw wraps a token view.
func NewRaw(view *TokensNode) *RawNode {
	r := &RawNode{View: view}
	r.pos = view.Span()
	return r
}

func (*RawNode) Type() Type { return Raw }

// CommentNode is a line comment, starting with "//".
type CommentNode struct {
	leaf
	Text string // without the comment marker
}

func (*CommentNode) Type() Type { return Comment }

// HeadingNode is an ATX heading. Children are inline nodes.
type HeadingNode struct {
	container
	Level int
	Slug  string // anchor identifier derived from the heading text
}

func (*HeadingNode) Type() Type { return Heading }

// ParagraphNode groups consecutive inline nodes.
type ParagraphNode struct {
	container
}

func (*ParagraphNode) Type() Type { return Paragraph }

// ListNode is an ordered or unordered list. Children are list items.
type ListNode struct {
	container
	Ordered bool
	Start   int  // number of the first item of an ordered list
	Loose   bool // always false, list items are never wrapped into paragraphs
}

func (*ListNode) Type() Type { return List }

// ListItemNode is an item of a list. Children are inline nodes and nested
// lists.
type ListItemNode struct {
	container
	Indent int
	Marker string
}

func (*ListItemNode) Type() Type { return ListItem }

// Alignment of a table column.
type Alignment int8

// Column alignments.
const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "none"
}

// TableNode is a pipe table. Children are rows; the second row is the control
// row, holding column alignments.
type TableNode struct {
	container
	Align []Alignment
}

func (*TableNode) Type() Type { return Table }

// Header returns the header row of a table.
func (t *TableNode) Header() *TableRowNode {
	if len(t.children) == 0 {
		return nil
	}
	return t.children[0].(*TableRowNode)
}

// Rows returns the body rows of a table.
func (t *TableNode) Rows() []*TableRowNode {
	var rows []*TableRowNode
	for _, ch := range t.children {
		if r := ch.(*TableRowNode); !r.Control && r != t.Header() {
			rows = append(rows, r)
		}
	}
	return rows
}

// TableRowNode is a row of a table.
type TableRowNode struct {
	container
	Control bool
}

func (*TableRowNode) Type() Type { return TableRow }

// TableCellNode is a cell of a header or body row. Children are inline nodes.
type TableCellNode struct {
	container
}

func (*TableCellNode) Type() Type { return TableCell }

// TableControlCellNode is a cell of the control row.
type TableControlCellNode struct {
	leaf
	Align Alignment
}

func (*TableControlCellNode) Type() Type { return TableControlCell }

// CodeNode is a fenced code block. Its body is kept verbatim.
type CodeNode struct {
	leaf
	Lang   string
	Text   string
	Closed bool // false if the closing fence is missing
}

func (*CodeNode) Type() Type { return Code }

// BlockquoteNode is a quoted block. Children are re-parsed quote content.
type BlockquoteNode struct {
	container
}

func (*BlockquoteNode) Type() Type { return Blockquote }

// ThematicBreakNode is a horizontal rule, rendered as a page break.
type ThematicBreakNode struct {
	leaf
}

func (*ThematicBreakNode) Type() Type { return ThematicBreak }

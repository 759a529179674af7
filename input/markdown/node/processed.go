package node

import (
	"github.com/npillmayer/mdtree/core/source"
)

// Declared is the numbering state of a declared entity.
type Declared struct {
	Label       string
	LabelPos    source.Span
	Index       int    // 1-based, 0 until resolved
	Designation string // letter designation of applications
}

// Declaration returns the numbering state itself.
func (d *Declared) Declaration() *Declared { return d }

// Declaration is implemented by every node introducing a label.
type Declaration interface {
	Node
	Category() Category
	Declaration() *Declared
}

// PictureProcessedNode is a numbered picture.
type PictureProcessedNode struct {
	leaf
	Declared
	Name   []Node // caption, taken from the image's alternative text
	Src    string
	Height string
}

func (*PictureProcessedNode) Type() Type         { return PictureProcessed }
func (*PictureProcessedNode) Category() Category { return PictureCategory }

// TableProcessedNode is a numbered table. Its single child is the table.
type TableProcessedNode struct {
	container
	Declared
	Name   []Node
	Width  string
	Height string
}

func (*TableProcessedNode) Type() Type         { return TableProcessed }
func (*TableProcessedNode) Category() Category { return TableCategory }

// Table returns the wrapped table.
func (t *TableProcessedNode) Table() *TableNode {
	if len(t.children) == 0 {
		return nil
	}
	tbl, _ := t.children[0].(*TableNode)
	return tbl
}

// CodeProcessedNode is a numbered code listing.
type CodeProcessedNode struct {
	leaf
	Declared
	Name []Node
	Lang string
	Text string
}

func (*CodeProcessedNode) Type() Type         { return CodeProcessed }
func (*CodeProcessedNode) Category() Category { return CodeCategory }

// KeyNode is a citation of a declared label.
type KeyNode struct {
	leaf
	Kind        Type
	Label       string
	Index       int  // index of the cited entity, set by resolution
	Resolved    bool // true once the label has been found
	Designation string
}

// NewKey creates a citation of a given kind.
func NewKey(kind Type, label string, pos source.Span) *KeyNode {
	k := &KeyNode{Kind: kind, Label: label}
	k.pos = pos
	return k
}

func (k *KeyNode) Type() Type { return k.Kind }

// Category returns the category a key cites.
func (k *KeyNode) Category() Category {
	switch k.Kind {
	case TableKey:
		return TableCategory
	case CodeKey:
		return CodeCategory
	case ApplicationKey:
		return ApplicationCategory
	case ReferenceKey:
		return ReferenceCategory
	}
	return PictureCategory
}

// AmountNode evaluates to the number of pictures or tables of a document.
type AmountNode struct {
	leaf
	Kind  Type
	Count int
}

// NewAmount creates a counter node.
func NewAmount(kind Type, pos source.Span) *AmountNode {
	a := &AmountNode{Kind: kind}
	a.pos = pos
	return a
}

func (a *AmountNode) Type() Type { return a.Kind }

// Category returns the category an amount counts.
func (a *AmountNode) Category() Category {
	if a.Kind == TableAmount {
		return TableCategory
	}
	return PictureCategory
}

// ListingNode lists all applications or all references of a document.
// Items are filled in by resolution, in declaration order. Items are detached
// from their declaration sites and are not children of the listing, as their
// ranges lie elsewhere in the source.
type ListingNode struct {
	leaf
	Kind  Type
	Items []Declaration
}

// NewListing creates an empty listing of a given kind.
func NewListing(kind Type, pos source.Span) *ListingNode {
	l := &ListingNode{Kind: kind}
	l.pos = pos
	return l
}

func (l *ListingNode) Type() Type { return l.Kind }

// Application is implemented by the three kinds of application nodes.
type Application interface {
	Declaration
	application()
}

// RawApplicationNode is an application with arbitrary content, which is
// stored as its children.
type RawApplicationNode struct {
	container
	Declared
	Title []Node
}

func (*RawApplicationNode) Type() Type         { return RawApplication }
func (*RawApplicationNode) Category() Category { return ApplicationCategory }
func (*RawApplicationNode) application()       {}

// PictureApplicationNode is an application showing a picture file.
type PictureApplicationNode struct {
	leaf
	Declared
	Title   []Node
	Src     string
	Rotated bool // landscape page
}

func (*PictureApplicationNode) Type() Type         { return PictureApplication }
func (*PictureApplicationNode) Category() Category { return ApplicationCategory }
func (*PictureApplicationNode) application()       {}

// CodeApplicationNode is an application listing a source file.
type CodeApplicationNode struct {
	leaf
	Declared
	Directory string
	Filename  string
	Lang      string
	Columns   int
}

func (*CodeApplicationNode) Type() Type         { return CodeApplication }
func (*CodeApplicationNode) Category() Category { return ApplicationCategory }
func (*CodeApplicationNode) application()       {}

// ReferenceNode is a bibliographic reference. Children are its text.
type ReferenceNode struct {
	container
	Declared
}

func (*ReferenceNode) Type() Type         { return Reference }
func (*ReferenceNode) Category() Category { return ReferenceCategory }

// Compile time checks
var (
	_ Declaration = (*PictureProcessedNode)(nil)
	_ Declaration = (*TableProcessedNode)(nil)
	_ Declaration = (*CodeProcessedNode)(nil)
	_ Declaration = (*ReferenceNode)(nil)
	_ Application = (*RawApplicationNode)(nil)
	_ Application = (*PictureApplicationNode)(nil)
	_ Application = (*CodeApplicationNode)(nil)
	_ Container   = (*TableProcessedNode)(nil)
	_ Container   = (*FileNode)(nil)
)

package node

// Type discriminates node variants.
type Type int8

// Block nodes.
const (
	File Type = iota
	Raw
	Comment
	Heading
	Paragraph
	List
	ListItem
	Table
	TableRow
	TableCell
	TableControlCell
	Code
	Blockquote
	ThematicBreak
)

// Inline nodes.
const (
	Text Type = iota + 32
	CodeSpan
	Link
	Image
	Strong
	Emphasis
	Strikethrough
	OpCode
)

// Processed nodes, produced by macros.
const (
	PictureProcessed Type = iota + 64
	TableProcessed
	CodeProcessed
	PictureKey
	TableKey
	CodeKey
	ApplicationKey
	ReferenceKey
	PictureAmount
	TableAmount
	AllApplications
	AllReferences
	RawApplication
	PictureApplication
	CodeApplication
	Reference
)

var typeNames = map[Type]string{
	File:               "File",
	Raw:                "Raw",
	Comment:            "Comment",
	Heading:            "Heading",
	Paragraph:          "Paragraph",
	List:               "List",
	ListItem:           "ListItem",
	Table:              "Table",
	TableRow:           "TableRow",
	TableCell:          "TableCell",
	TableControlCell:   "TableControlCell",
	Code:               "Code",
	Blockquote:         "Blockquote",
	ThematicBreak:      "ThematicBreak",
	Text:               "Text",
	CodeSpan:           "CodeSpan",
	Link:               "Link",
	Image:              "Image",
	Strong:             "Strong",
	Emphasis:           "Emphasis",
	Strikethrough:      "Strikethrough",
	OpCode:             "OpCode",
	PictureProcessed:   "PictureProcessed",
	TableProcessed:     "TableProcessed",
	CodeProcessed:      "CodeProcessed",
	PictureKey:         "PictureKey",
	TableKey:           "TableKey",
	CodeKey:            "CodeKey",
	ApplicationKey:     "ApplicationKey",
	ReferenceKey:       "ReferenceKey",
	PictureAmount:      "PictureAmount",
	TableAmount:        "TableAmount",
	AllApplications:    "AllApplications",
	AllReferences:      "AllReferences",
	RawApplication:     "RawApplication",
	PictureApplication: "PictureApplication",
	CodeApplication:    "CodeApplication",
	Reference:          "Reference",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "?"
}

// IsInline is true for inline node types.
func (t Type) IsInline() bool {
	return t >= Text && t <= OpCode
}

// IsSpan is true for node types allowed in span-only macro arguments:
// text and inline formatting, but no macros.
func (t Type) IsSpan() bool {
	return t >= Text && t < OpCode
}

// IsProcessed is true for node types created by macros.
func (t Type) IsProcessed() bool {
	return t >= PictureProcessed
}

// Category groups cross-referenced entities. Each category is numbered
// independently.
type Category int8

// Categories of numbered entities.
const (
	PictureCategory Category = iota
	TableCategory
	CodeCategory
	ApplicationCategory
	ReferenceCategory
)

// Categories lists all categories in a stable order.
var Categories = []Category{PictureCategory, TableCategory, CodeCategory,
	ApplicationCategory, ReferenceCategory}

func (c Category) String() string {
	switch c {
	case PictureCategory:
		return "picture"
	case TableCategory:
		return "table"
	case CodeCategory:
		return "code"
	case ApplicationCategory:
		return "application"
	case ReferenceCategory:
		return "reference"
	}
	return "?"
}

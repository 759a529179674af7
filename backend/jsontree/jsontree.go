/*
Package jsontree serializes resolved document trees to JSON, for renderers
living outside of Go.

Every node is written as an object with its type name, its source range and
its type-specific properties. Containers list their children, listings list
their items, and numbered entities carry captions or titles as node lists:

	{
	  "type": "PictureProcessed",
	  "span": [120, 160],
	  "attrs": { "label": "setup", "index": 1, "src": "img/setup.png" },
	  "name": [ { "type": "Text", "span": [124, 142], "text": "Experimental setup" } ]
	}

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package jsontree

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtree.jsontree'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.jsontree")
}

// Node is the JSON form of a tree node.
type Node struct {
	Type     string                 `json:"type"`
	Span     [2]int                 `json:"span"`
	Attrs    map[string]interface{} `json:"attrs,omitempty"`
	Text     string                 `json:"text,omitempty"`
	Name     []*Node                `json:"name,omitempty"`
	Children []*Node                `json:"children,omitempty"`
	Items    []*Node                `json:"items,omitempty"`
}

// Diagnostic is the JSON form of a diagnostic.
type Diagnostic struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Span     [2]int `json:"span"`
}

// Document is the JSON form of a processed document.
type Document struct {
	File        string       `json:"file"`
	Root        *Node        `json:"root"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Convert creates the JSON form of a document and its diagnostics.
func Convert(file *node.FileNode, diags diag.List) *Document {
	doc := &Document{File: file.Path, Root: convert(file)}
	for _, d := range diags {
		jd := Diagnostic{
			Severity: d.Severity.String(),
			Kind:     d.Kind.String(),
			Message:  d.Message,
			File:     d.File,
			Span:     [2]int{d.Pos.Start, d.Pos.End},
		}
		if file.Source != nil {
			pos := file.Source.Position(d.Pos.Start)
			jd.Line, jd.Column = pos.Line, pos.Column
		}
		doc.Diagnostics = append(doc.Diagnostics, jd)
	}
	return doc
}

// Marshal serializes a document with indentation.
func Marshal(file *node.FileNode, diags diag.List) ([]byte, error) {
	b, err := json.MarshalIndent(Convert(file, diags), "", "  ")
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot serialize %s", file.Path)
	}
	tracer().Debugf("serialized %s to %d bytes", file.Path, len(b))
	return b, nil
}

// Encode writes a serialized document to w.
func Encode(w io.Writer, file *node.FileNode, diags diag.List) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Convert(file, diags))
}

func convertAll(nodes []node.Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	r := make([]*Node, len(nodes))
	for i, n := range nodes {
		r[i] = convert(n)
	}
	return r
}

func convert(n node.Node) *Node {
	jn := &Node{
		Type:     n.Type().String(),
		Span:     [2]int{n.Pos().Start, n.Pos().End},
		Children: convertAll(node.Children(n)),
	}
	attrs := map[string]interface{}{}
	switch x := n.(type) {
	case *node.TextNode:
		jn.Text = x.Text
	case *node.CommentNode:
		jn.Text = x.Text
	case *node.CodeSpanNode:
		jn.Text = x.Text
	case *node.CodeNode:
		jn.Text = x.Text
		attrs["lang"] = x.Lang
		attrs["closed"] = x.Closed
	case *node.HeadingNode:
		attrs["level"] = x.Level
		attrs["slug"] = x.Slug
	case *node.ListNode:
		attrs["ordered"] = x.Ordered
		attrs["loose"] = x.Loose
		if x.Ordered {
			attrs["start"] = x.Start
		}
	case *node.ListItemNode:
		attrs["marker"] = x.Marker
	case *node.TableNode:
		align := make([]string, len(x.Align))
		for i, a := range x.Align {
			align[i] = a.String()
		}
		attrs["align"] = align
	case *node.TableControlCellNode:
		attrs["align"] = x.Align.String()
	case *node.LinkNode:
		attrs["href"] = x.Href
	case *node.ImageNode:
		attrs["src"] = x.Src
	case *node.OpCodeNode:
		attrs["name"] = x.Name
	case *node.PictureProcessedNode:
		declared(attrs, &x.Declared)
		attrs["src"] = x.Src
		setIf(attrs, "height", x.Height)
		jn.Name = convertAll(x.Name)
	case *node.TableProcessedNode:
		declared(attrs, &x.Declared)
		setIf(attrs, "width", x.Width)
		setIf(attrs, "height", x.Height)
		jn.Name = convertAll(x.Name)
	case *node.CodeProcessedNode:
		declared(attrs, &x.Declared)
		attrs["lang"] = x.Lang
		jn.Text = x.Text
		jn.Name = convertAll(x.Name)
	case *node.KeyNode:
		attrs["label"] = x.Label
		attrs["index"] = x.Index
		attrs["resolved"] = x.Resolved
		setIf(attrs, "designation", x.Designation)
	case *node.AmountNode:
		attrs["count"] = x.Count
	case *node.ListingNode:
		items := make([]node.Node, len(x.Items))
		for i, item := range x.Items {
			items[i] = item
		}
		jn.Items = convertAll(items)
	case *node.RawApplicationNode:
		declared(attrs, &x.Declared)
		jn.Name = convertAll(x.Title)
	case *node.PictureApplicationNode:
		declared(attrs, &x.Declared)
		attrs["src"] = x.Src
		attrs["rotated"] = x.Rotated
		jn.Name = convertAll(x.Title)
	case *node.CodeApplicationNode:
		declared(attrs, &x.Declared)
		attrs["directory"] = x.Directory
		attrs["filename"] = x.Filename
		attrs["columns"] = x.Columns
		setIf(attrs, "lang", x.Lang)
	case *node.ReferenceNode:
		declared(attrs, &x.Declared)
	}
	if len(attrs) > 0 {
		jn.Attrs = attrs
	}
	return jn
}

func declared(attrs map[string]interface{}, d *node.Declared) {
	attrs["label"] = d.Label
	attrs["index"] = d.Index
	setIf(attrs, "designation", d.Designation)
}

func setIf(attrs map[string]interface{}, key, val string) {
	if val != "" {
		attrs[key] = val
	}
}

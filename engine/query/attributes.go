package query

import (
	"strconv"

	"github.com/npillmayer/mdtree/input/markdown/node"
)

type attribute struct {
	key, val string
}

func attr(key, val string) attribute {
	return attribute{key, val}
}

func intAttr(key string, val int) attribute {
	return attribute{key, strconv.Itoa(val)}
}

func boolAttr(key string, val bool) attribute {
	return attribute{key, strconv.FormatBool(val)}
}

// declared adds the attributes of a numbered entity.
func declared(attrs []attribute, d *node.Declared) []attribute {
	attrs = append(attrs, attr("label", d.Label), intAttr("index", d.Index))
	if d.Designation != "" {
		attrs = append(attrs, attr("designation", d.Designation))
	}
	return attrs
}

// attributes lists the properties of a node, starting with its span.
func attributes(n node.Node) []attribute {
	attrs := []attribute{attr("span", n.Pos().String())}
	switch x := n.(type) {
	case *node.FileNode:
		attrs = append(attrs, attr("path", x.Path))
	case *node.HeadingNode:
		attrs = append(attrs, intAttr("level", x.Level), attr("slug", x.Slug))
	case *node.ListNode:
		attrs = append(attrs, boolAttr("ordered", x.Ordered), boolAttr("loose", x.Loose))
		if x.Ordered {
			attrs = append(attrs, intAttr("start", x.Start))
		}
	case *node.ListItemNode:
		attrs = append(attrs, intAttr("indent", x.Indent), attr("marker", x.Marker))
	case *node.TableControlCellNode:
		attrs = append(attrs, attr("align", x.Align.String()))
	case *node.TableRowNode:
		attrs = append(attrs, boolAttr("control", x.Control))
	case *node.CodeNode:
		attrs = append(attrs, attr("lang", x.Lang), boolAttr("closed", x.Closed))
	case *node.LinkNode:
		attrs = append(attrs, attr("href", x.Href))
	case *node.ImageNode:
		attrs = append(attrs, attr("src", x.Src))
	case *node.SpanNode:
		attrs = append(attrs, attr("marker", x.Marker))
	case *node.OpCodeNode:
		attrs = append(attrs, attr("name", x.Name))
	case *node.PictureProcessedNode:
		attrs = declared(attrs, &x.Declared)
		attrs = append(attrs, attr("src", x.Src), attr("height", x.Height),
			attr("name", node.TextOf(x.Name)))
	case *node.TableProcessedNode:
		attrs = declared(attrs, &x.Declared)
		attrs = append(attrs, attr("width", x.Width), attr("height", x.Height),
			attr("name", node.TextOf(x.Name)))
	case *node.CodeProcessedNode:
		attrs = declared(attrs, &x.Declared)
		attrs = append(attrs, attr("lang", x.Lang), attr("name", node.TextOf(x.Name)))
	case *node.KeyNode:
		attrs = append(attrs, attr("label", x.Label), intAttr("index", x.Index),
			boolAttr("resolved", x.Resolved))
		if x.Designation != "" {
			attrs = append(attrs, attr("designation", x.Designation))
		}
	case *node.AmountNode:
		attrs = append(attrs, intAttr("count", x.Count))
	case *node.ListingNode:
		attrs = append(attrs, intAttr("count", len(x.Items)))
	case *node.RawApplicationNode:
		attrs = declared(attrs, &x.Declared)
		attrs = append(attrs, attr("title", node.TextOf(x.Title)))
	case *node.PictureApplicationNode:
		attrs = declared(attrs, &x.Declared)
		attrs = append(attrs, attr("title", node.TextOf(x.Title)), attr("src", x.Src),
			boolAttr("rotated", x.Rotated))
	case *node.CodeApplicationNode:
		attrs = declared(attrs, &x.Declared)
		attrs = append(attrs, attr("directory", x.Directory), attr("filename", x.Filename),
			attr("lang", x.Lang), intAttr("columns", x.Columns))
	case *node.ReferenceNode:
		attrs = declared(attrs, &x.Declared)
	}
	return attrs
}

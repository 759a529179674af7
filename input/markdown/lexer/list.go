package lexer

import (
	"math"
	"strconv"

	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/mdtree/input/markdown/token"
)

// List items start with an optional indentation, followed by a marker and a
// space. Markers are "*", "-", "+" for unordered lists and a number followed
// by "." or ")" for ordered lists.
//
// The body of an item runs up to the next line starting an item with the same
// or less indentation. A blank line ends the item, two blank lines end the
// whole list. Deeper indented items are parsed as nested lists from within
// the body of their parent item.

// itemMarker describes the start of a list item line.
type itemMarker struct {
	indent  int
	ordered bool
	number  int
	marker  string
	body    int // index of the first body token
}

// matchMarker checks if a list item starts at token i.
func matchMarker(view *node.TokensNode, i int) (m itemMarker, ok bool) {
	tok, ok := view.At(i)
	if !ok {
		return m, false
	}
	if tok.Type == token.Spacer {
		m.indent = len(tok.Text)
		i++
		if tok, ok = view.At(i); !ok {
			return m, false
		}
	}
	markerStart := i
	switch {
	case tok.Type == token.Letter && isDigits(tok.Text):
		sep, ok := view.At(i + 1)
		if !ok || !(sep.Is(token.SeparatedSpecial, ".") || sep.Is(token.SeparatedSpecial, ")")) {
			return m, false
		}
		m.ordered = true
		m.number = itemNumber(tok.Text)
		i += 2
	case tok.Type == token.JoinableSpecial && (tok.Text == "*" || tok.Text == "-" || tok.Text == "+"):
		i++
	default:
		return m, false
	}
	if sp, ok := view.At(i); !ok || sp.Type != token.Spacer {
		return m, false
	}
	m.marker = view.Text(markerStart, i)
	m.body = i + 1
	return m, true
}

func isDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// itemNumber converts the digits of an ordered marker, saturating numbers
// too large for an int.
func itemNumber(digits string) int {
	n, err := strconv.ParseInt(digits, 10, strconv.IntSize)
	if err != nil {
		return math.MaxInt
	}
	return int(n)
}

type listItemResult struct {
	item    *node.ListItemNode
	marker  itemMarker
	next    int
	endList bool
	diags   diag.List
}

func parseListItem(d *Dispatcher, view *node.TokensNode, i int) *listItemResult {
	m, ok := matchMarker(view, i)
	if !ok || m.body >= view.Len() {
		return nil
	}
	res := &listItemResult{marker: m}
	end := view.Len()
	for delim := view.LineEnd(m.body); delim < view.Len(); delim = view.LineEnd(delim + 1) {
		breaks := token.Breaks(view.Tokens[delim])
		if breaks > 2 {
			end, res.endList = delim, true
			break
		}
		if breaks > 1 {
			end = delim
			break
		}
		if next, ok := matchMarker(view, delim+1); ok && next.indent <= m.indent {
			end = delim
			break
		}
	}
	item := &node.ListItemNode{Indent: m.indent, Marker: m.marker}
	node.SetPos(item, view.SpanOf(i, end))
	_, res.diags = d.applyTo(item, view, m.body, end)
	res.item = item
	res.next = nextLine(view, end)
	return res
}

func parseList(d *Dispatcher, view *node.TokensNode, i int) *Result {
	if view.HasParentType(node.TableCell, true) || view.HasParentType(node.TableControlCell, true) {
		return nil
	}
	first := parseListItem(d, view, i)
	if first == nil {
		return nil
	}
	list := &node.ListNode{Ordered: first.marker.ordered, Start: 1}
	if list.Ordered {
		list.Start = first.marker.number
	}
	r := &Result{}
	for it := first; it != nil; {
		node.Append(list, it.item)
		r.Diagnostics.Add(it.diags...)
		r.Next = it.next
		if it.endList || it.next >= view.Len() {
			break
		}
		it = parseListItem(d, view, it.next)
	}
	items := list.Children()
	node.SetPos(list, items[0].Pos().Cover(items[len(items)-1].Pos()))
	r.Nodes = []node.Node{list}
	return r
}

/*
Package lexer builds a document tree from a Markdown token stream.

Parsing is organized as a dispatcher over a registry of node parsers. The
dispatcher walks a token view from left to right and, at each position, asks
the registered parsers in priority order whether a construct starts there.
The first parser returning a result owns the tokens it consumed; tokens no
parser claims are folded into running text. Parsers recurse into the
dispatcher for the inner parts of a construct (cells of a table, the body of
a list item, arguments of a macro), binding the sub-view to the node under
construction.

Parsing never fails. Malformed input is parsed as text or as a best-effort
node, accompanied by a diagnostic.

Block parsers are only tried at the start of a line and only in block
contexts (the file, a blockquote or a list item); inline parsers are tried
everywhere.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexer

import (
	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtree.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.lexer")
}

// Result is the outcome of a node parser which matched at a position.
type Result struct {
	Nodes       []node.Node
	Next        int // index of the first token not consumed
	Diagnostics diag.List
}

// ParseFunc tries to parse a construct starting at token index i of a view.
// It returns nil if no such construct starts there. A parser has to consume at
// least one token if it returns a result.
type ParseFunc func(d *Dispatcher, view *node.TokensNode, i int) *Result

// Parser is an entry of the dispatcher's registry.
type Parser struct {
	Name  string
	Block bool // only at line start in block contexts
	Parse ParseFunc
}

// Dispatcher holds an ordered registry of node parsers.
type Dispatcher struct {
	parsers []Parser
}

// NewDispatcher creates a dispatcher with all default parsers registered.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	d.Register(
		Parser{Name: "comment", Block: true, Parse: parseComment},
		Parser{Name: "code", Block: true, Parse: parseCode},
		Parser{Name: "heading", Block: true, Parse: parseHeading},
		Parser{Name: "break", Block: true, Parse: parseThematicBreak},
		Parser{Name: "table", Block: true, Parse: parseTable},
		Parser{Name: "blockquote", Block: true, Parse: parseBlockquote},
		Parser{Name: "list", Block: true, Parse: parseList},
		Parser{Name: "escape", Parse: parseEscape},
		Parser{Name: "codespan", Parse: parseCodeSpan},
		Parser{Name: "opcode", Parse: parseOpCode},
		Parser{Name: "image", Parse: parseImage},
		Parser{Name: "link", Parse: parseLink},
		Parser{Name: "span", Parse: parseSpan},
	)
	return d
}

// Register appends parsers to the registry. Parsers registered later have
// lower priority.
func (d *Dispatcher) Register(parsers ...Parser) {
	d.parsers = append(d.parsers, parsers...)
}

// Parsers returns the names of the registered parsers in priority order.
func (d *Dispatcher) Parsers() []string {
	names := make([]string, len(d.parsers))
	for i, p := range d.parsers {
		names[i] = p.Name
	}
	return names
}

// Apply parses a token view into a sequence of nodes. The nodes are not yet
// attached to a parent.
func (d *Dispatcher) Apply(view *node.TokensNode) ([]node.Node, diag.List) {
	var nodes []node.Node
	var diags diag.List
	block := isBlockContext(view)
	textStart := -1
	flush := func(end int) {
		if textStart >= 0 && textStart < end {
			nodes = append(nodes, node.NewText(view.Text(textStart, end), view.SpanOf(textStart, end)))
		}
		textStart = -1
	}
	for i := 0; i < view.Len(); {
		r, name := d.try(view, i, block)
		if r == nil {
			if textStart < 0 {
				textStart = i
			}
			i++
			continue
		}
		flush(i)
		tracer().Debugf("%s matched at token %d, next = %d", name, i, r.Next)
		nodes = append(nodes, r.Nodes...)
		diags.Add(r.Diagnostics...)
		if r.Next <= i {
			tracer().Errorf("parser %s did not consume input at token %d", name, i)
			r.Next = i + 1
		}
		i = r.Next
	}
	flush(view.Len())
	return nodes, diags
}

// ApplyNodes parses every raw node of a sequence, keeping all other nodes.
func (d *Dispatcher) ApplyNodes(nodes []node.Node) ([]node.Node, diag.List) {
	var result []node.Node
	var diags diag.List
	for _, n := range nodes {
		raw, ok := n.(*node.RawNode)
		if !ok {
			result = append(result, n)
			continue
		}
		parsed, dd := d.Apply(raw.View)
		result = append(result, parsed...)
		diags.Add(dd...)
	}
	return result, diags
}

// applyTo parses a sub-range of a view, binding it to parent, and adopts
// the resulting nodes as parent's children.
func (d *Dispatcher) applyTo(parent node.Node, view *node.TokensNode, from, to int) ([]node.Node, diag.List) {
	sub, ok := view.Slice(from, to, parent)
	if !ok {
		return nil, nil
	}
	nodes, diags := d.Apply(sub)
	if c, ok := parent.(node.Container); ok {
		node.Append(c, nodes...)
	} else {
		node.Adopt(parent, nodes...)
	}
	return nodes, diags
}

func (d *Dispatcher) try(view *node.TokensNode, i int, block bool) (*Result, string) {
	lineStart := view.AtLineStart(i)
	for _, p := range d.parsers {
		if p.Block && (!block || !lineStart) {
			continue
		}
		if r := p.Parse(d, view, i); r != nil {
			return r, p.Name
		}
	}
	return nil, ""
}

func isBlockContext(view *node.TokensNode) bool {
	if view.Parent == nil {
		return true
	}
	switch view.Parent.Type() {
	case node.File, node.Blockquote, node.ListItem:
		return true
	}
	return false
}

// Parse runs a default dispatcher over a token view and returns the flat
// node sequence, without paragraph grouping.
func Parse(view *node.TokensNode) ([]node.Node, diag.List) {
	return NewDispatcher().Apply(view)
}

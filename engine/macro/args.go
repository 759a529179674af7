package macro

import (
	"strings"

	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/core/source"
	"github.com/npillmayer/mdtree/input/markdown/node"
)

// ArgType selects the conversion of an argument's nodes.
type ArgType int8

// Argument conversions.
const (
	NodeArray ArgType = iota // nodes as written
	Text                     // string content of a single text node
	TextNode                 // a single text node
)

// ArgInfo describes a named argument of a macro.
type ArgInfo struct {
	Name      string
	Aliases   []string
	Type      ArgType
	Optional  bool
	OnlySpans bool // NodeArray only: allow text and inline formatting only
}

func (info ArgInfo) matches(key string) bool {
	if key == info.Name {
		return true
	}
	for _, alias := range info.Aliases {
		if key == alias {
			return true
		}
	}
	return false
}

// Value is a converted argument.
type Value struct {
	Nodes    []node.Node
	TextNode *node.TextNode
	Text     string
	Pos      source.Span
}

// Args holds the converted arguments of a macro invocation, by argument name.
type Args map[string]Value

// Has is true if an argument has been given.
func (args Args) Has(name string) bool {
	_, ok := args[name]
	return ok
}

// Text returns the text of an argument, or "" if it is missing.
func (args Args) Text(name string) string {
	return args[name].Text
}

// ParseArguments matches the positional and keyed arguments of a macro
// invocation against a schema and converts them.
//
// Positional arguments fill the schema in order; surplus positional arguments
// are errors. Keyed arguments are matched by name, then by alias. A keyed
// argument naming an already given argument produces a warning anchored at
// the key, and the later value wins. Unknown keys produce a warning. Missing
// required arguments are errors.
func ParseArguments(op *node.OpCodeNode, schema []ArgInfo) (Args, diag.List) {
	var diags diag.List
	raw := make(map[string]node.Arg, len(schema))
	for n, arg := range op.PosArgs {
		if n >= len(schema) {
			pos := arg.Pos
			if len(arg.Nodes) == 0 {
				pos = op.Pos()
			}
			diags.Addf(diag.Error, diag.Arguments, pos, "unexpected positional argument %d", n)
			continue
		}
		raw[schema[n].Name] = arg
	}
	for _, karg := range op.KeyArgs {
		info, ok := lookup(schema, karg.Key)
		if !ok {
			diags.Addf(diag.Warning, diag.Arguments, karg.KeyPos, "unexpected key argument %s", karg.Key)
			continue
		}
		if _, dup := raw[info.Name]; dup {
			diags.Addf(diag.Warning, diag.Arguments, karg.KeyPos, "argument %s specified twice", karg.Key)
		}
		raw[info.Name] = node.Arg{Nodes: karg.Value, Pos: karg.Pos}
	}
	args := make(Args, len(raw))
	for _, info := range schema {
		arg, ok := raw[info.Name]
		if !ok {
			if !info.Optional {
				diags.Addf(diag.Error, diag.Arguments, op.Pos(), "expected argument '%s'", info.Name)
			}
			continue
		}
		v, dd := convert(info, arg)
		diags.Add(dd...)
		args[info.Name] = v
	}
	tracer().Debugf("!%s: %d arguments, %d diagnostics", op.Name, len(args), len(diags))
	return args, diags
}

func lookup(schema []ArgInfo, key string) (ArgInfo, bool) {
	for _, info := range schema {
		if info.Name == key {
			return info, true
		}
	}
	for _, info := range schema {
		if info.matches(key) {
			return info, true
		}
	}
	return ArgInfo{}, false
}

func convert(info ArgInfo, arg node.Arg) (Value, diag.List) {
	var diags diag.List
	v := Value{Nodes: arg.Nodes, Pos: arg.Pos}
	switch info.Type {
	case NodeArray:
		if info.OnlySpans {
			for _, n := range arg.Nodes {
				if !n.Type().IsSpan() {
					diags.Addf(diag.Error, diag.Arguments, n.Pos(),
						"cannot use %s at argument %s", n.Type(), info.Name)
				}
			}
		}
	case Text, TextNode:
		v.TextNode = node.NewText("", source.Span{Start: arg.Pos.Start, End: arg.Pos.Start})
		nonBlank := trimBlank(arg.Nodes)
		switch {
		case len(nonBlank) == 0:
		case len(nonBlank) == 1 && nonBlank[0].Type() == node.Text:
			v.TextNode = nonBlank[0].(*node.TextNode)
		default:
			diags.Addf(diag.Error, diag.Arguments, node.Cover(arg.Nodes),
				"argument %s must be a text without spaces", info.Name)
		}
		v.Text = strings.TrimSpace(v.TextNode.Text)
	}
	return v, diags
}

// trimBlank drops whitespace-only text nodes at both ends.
func trimBlank(nodes []node.Node) []node.Node {
	blank := func(n node.Node) bool {
		t, ok := n.(*node.TextNode)
		return ok && strings.TrimSpace(t.Text) == ""
	}
	for len(nodes) > 0 && blank(nodes[0]) {
		nodes = nodes[1:]
	}
	for len(nodes) > 0 && blank(nodes[len(nodes)-1]) {
		nodes = nodes[:len(nodes)-1]
	}
	return nodes
}

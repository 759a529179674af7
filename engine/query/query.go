package query

import (
	"github.com/antchfx/xpath"
	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/mdtree/input/markdown/node"
)

// Compile compiles an XPath expression. Errors carry code core.EINVALID.
func Compile(expr string) (*xpath.Expr, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid XPath expression %q", expr)
	}
	return x, nil
}

// Select returns the nodes below and including root which match an XPath
// expression, in document order. Attribute matches yield their element.
func Select(root node.Node, expr string) ([]node.Node, error) {
	x, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	var result []node.Node
	seen := make(map[node.Node]bool)
	iter := x.Select(NewNavigator(root))
	for iter.MoveNext() {
		n, err := CurrentNode(iter.Current())
		if err != nil {
			return result, core.WrapError(err, core.EINTERNAL, "XPath evaluation failed")
		}
		if !seen[n] {
			seen[n] = true
			result = append(result, n)
		}
	}
	tracer().Debugf("%q selected %d nodes", expr, len(result))
	return result, nil
}

// Values returns the string values of the items matching an XPath
// expression. For attributes this is the attribute value, for elements their
// text content.
func Values(root node.Node, expr string) ([]string, error) {
	x, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	var values []string
	iter := x.Select(NewNavigator(root))
	for iter.MoveNext() {
		values = append(values, iter.Current().Value())
	}
	return values, nil
}

// Evaluate evaluates an XPath expression, which may yield a number, string,
// boolean or node set. Node sets are returned as nodes.
func Evaluate(root node.Node, expr string) (interface{}, error) {
	x, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	v := x.Evaluate(NewNavigator(root))
	if iter, ok := v.(*xpath.NodeIterator); ok {
		var nodes []node.Node
		for iter.MoveNext() {
			n, _ := CurrentNode(iter.Current())
			nodes = append(nodes, n)
		}
		return nodes, nil
	}
	return v, nil
}

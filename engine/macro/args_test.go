package macro

import (
	"testing"

	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/core/source"
	"github.com/npillmayer/mdtree/input/markdown/lexer"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/mdtree/input/markdown/token"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opcode(t *testing.T, text string) *node.OpCodeNode {
	nodes, diags := lexer.Parse(node.NewTokensNode(token.Tokenize(text), nil))
	require.Empty(t, diags)
	require.NotEmpty(t, nodes)
	op, ok := nodes[0].(*node.OpCodeNode)
	require.True(t, ok, "expected an opcode, have %s", nodes[0].Type())
	return op
}

func schema(t *testing.T, name string) []ArgInfo {
	cmd, ok := DefaultRegistry().Lookup(name)
	require.True(t, ok)
	return cmd.Args
}

func TestArgumentsPositional(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.macro")
	defer teardown()
	//
	args, diags := ParseArguments(opcode(t, "!P[gray-square|5cm]"), schema(t, "P"))
	assert.Empty(t, diags)
	assert.Equal(t, "gray-square", args.Text("label"))
	assert.Equal(t, "5cm", args.Text("height"))
	assert.Equal(t, source.Span{Start: 3, End: 14}, args["label"].Pos)
}

func TestArgumentsKeyedAndAliases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.macro")
	defer teardown()
	//
	args, diags := ParseArguments(opcode(t, "!AC[app](@dir src)(@file main.go)"), schema(t, "AC"))
	assert.Empty(t, diags)
	assert.Equal(t, "app", args.Text("label"))
	assert.Equal(t, "src", args.Text("directory"))
	assert.Equal(t, "main.go", args.Text("filename"))
	assert.False(t, args.Has("lang"))
}

func TestArgumentsDuplicateKey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.macro")
	defer teardown()
	//
	//           0         1         2
	//           0123456789012345678901234567890123
	text := "!P[fig](@height 1cm)(@height 2cm)"
	args, diags := ParseArguments(opcode(t, text), schema(t, "P"))
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Warning, diags[0].Severity)
	assert.Equal(t, source.Span{Start: 22, End: 28}, diags[0].Pos)
	assert.Equal(t, "height", text[diags[0].Pos.Start:diags[0].Pos.End])
	assert.Equal(t, "2cm", args.Text("height"), "later value wins")
}

func TestArgumentsPositionalThenKey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.macro")
	defer teardown()
	//
	args, diags := ParseArguments(opcode(t, "!P[fig|1cm](@h 2cm)"), schema(t, "P"))
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Warning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "specified twice")
	assert.Equal(t, "2cm", args.Text("height"))
}

func TestArgumentsSurplusAndUnknown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.macro")
	defer teardown()
	//
	_, diags := ParseArguments(opcode(t, "!PK[a|b]"), schema(t, "PK"))
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Error, diags[0].Severity)
	assert.Equal(t, source.Span{Start: 6, End: 7}, diags[0].Pos)
	assert.Equal(t, "unexpected positional argument 1", diags[0].Message, "index counts from 0")
	//
	args, diags := ParseArguments(opcode(t, "!PK[a](@foo 1)"), schema(t, "PK"))
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Warning, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "foo")
	assert.Equal(t, "a", args.Text("label"))
}

func TestArgumentsMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.macro")
	defer teardown()
	//
	op := opcode(t, "!AC[x]")
	_, diags := ParseArguments(op, schema(t, "AC"))
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, diag.Error, d.Severity)
		assert.Equal(t, op.Pos(), d.Pos)
	}
	assert.Contains(t, diags[0].Message, "directory")
	assert.Contains(t, diags[1].Message, "filename")
}

func TestArgumentsConversions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.macro")
	defer teardown()
	//
	_, diags := ParseArguments(opcode(t, "!T[t|see !PK[x]]"), schema(t, "T"))
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Error, diags[0].Severity)
	//
	args, diags := ParseArguments(opcode(t, "!T[t|A *simple* table]"), schema(t, "T"))
	assert.Empty(t, diags)
	assert.Len(t, args["name"].Nodes, 3)
	//
	_, diags = ParseArguments(opcode(t, "!PK[a **b**]"), schema(t, "PK"))
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "label")
	//
	info := []ArgInfo{{Name: "x", Type: TextNode}}
	args, diags = ParseArguments(opcode(t, "!X[](@x)"), info)
	assert.Empty(t, diags)
	require.NotNil(t, args["x"].TextNode)
	assert.Equal(t, "", args.Text("x"))
}

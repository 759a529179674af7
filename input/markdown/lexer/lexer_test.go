package lexer

import (
	"math"
	"testing"

	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/core/source"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/mdtree/input/markdown/token"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) ([]node.Node, diag.List) {
	tokens := token.Tokenize(text)
	require.Equal(t, text, token.Text(tokens))
	return NewDispatcher().Apply(node.NewTokensNode(tokens, nil))
}

func textOf(n node.Node) string {
	return node.TextContent(n)
}

func TestCodeBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	nodes, diags := parse(t, "```test-language  \ncode line\n  indented\n```")
	assert.Empty(t, diags)
	require.Len(t, nodes, 1)
	code := nodes[0].(*node.CodeNode)
	assert.Equal(t, "test-language", code.Lang)
	assert.Equal(t, "code line\n  indented", code.Text)
	assert.True(t, code.Closed)
	assert.Equal(t, source.Span{Start: 0, End: 43}, code.Pos())
	//
	nodes, diags = parse(t, "```\nx = 1\n```\nafter")
	assert.Empty(t, diags)
	require.Len(t, nodes, 2)
	assert.Equal(t, "", nodes[0].(*node.CodeNode).Lang)
	assert.Equal(t, "x = 1", nodes[0].(*node.CodeNode).Text)
	assert.Equal(t, "after", nodes[1].(*node.TextNode).Text)
}

func TestCodeBlockNotClosed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	nodes, diags := parse(t, "```js\nlet a = 1;\n")
	require.Len(t, diags, 1)
	assert.Equal(t, diag.Error, diags[0].Severity)
	assert.Equal(t, source.Span{Start: 0, End: 3}, diags[0].Pos)
	require.Len(t, nodes, 1)
	code := nodes[0].(*node.CodeNode)
	assert.False(t, code.Closed)
	assert.Equal(t, "let a = 1;", code.Text)
}

func TestLink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	nodes, diags := parse(t, "Hello [ti t le](li-nk) text")
	assert.Empty(t, diags)
	require.Len(t, nodes, 3)
	link := nodes[1].(*node.LinkNode)
	assert.Equal(t, "li-nk", link.Href)
	assert.Equal(t, "ti t le", textOf(link))
	assert.Equal(t, source.Span{Start: 6, End: 22}, link.Pos())
	assert.Equal(t, " text", nodes[2].(*node.TextNode).Text)
	assert.NoError(t, node.CheckRanges(link))
}

func TestLinkWithInnerCodeSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	nodes, diags := parse(t, "[ti `co][de` le](li-nk)")
	assert.Empty(t, diags)
	require.Len(t, nodes, 1)
	link := nodes[0].(*node.LinkNode)
	require.Len(t, link.Children(), 3)
	assert.Equal(t, node.CodeSpan, link.Children()[1].Type())
	assert.Equal(t, "co][de", link.Children()[1].(*node.CodeSpanNode).Text)
	assert.Equal(t, "li-nk", link.Href)
}

func TestImage(t *testing.T) {
	nodes, diags := parse(t, "![Image name](./assets/img.png)")
	assert.Empty(t, diags)
	require.Len(t, nodes, 1)
	img := nodes[0].(*node.ImageNode)
	assert.Equal(t, "./assets/img.png", img.Src)
	assert.Equal(t, "Image name", textOf(img))
}

func TestOpCode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	nodes, diags := parse(t, "!Macro[label-text](pos arg 1)(`pos arg` 2)(@keyArgName argName)")
	assert.Empty(t, diags)
	require.Len(t, nodes, 1)
	op := nodes[0].(*node.OpCodeNode)
	assert.Equal(t, "Macro", op.Name)
	assert.Equal(t, 1, op.Bracketed)
	require.Len(t, op.PosArgs, 3)
	assert.Equal(t, "label-text", node.TextOf(op.PosArgs[0].Nodes))
	assert.Equal(t, "pos arg 1", node.TextOf(op.PosArgs[1].Nodes))
	require.Len(t, op.PosArgs[2].Nodes, 2)
	assert.Equal(t, node.CodeSpan, op.PosArgs[2].Nodes[0].Type())
	require.Len(t, op.KeyArgs, 1)
	assert.Equal(t, "keyArgName", op.KeyArgs[0].Key)
	assert.Equal(t, "argName", node.TextOf(op.KeyArgs[0].Value))
	for _, n := range op.ArgNodes() {
		assert.True(t, op.Pos().Contains(n.Pos()))
		assert.Equal(t, node.Node(op), n.Parent())
	}
}

func TestOpCodeSegmentsAndEmptyKeys(t *testing.T) {
	nodes, diags := parse(t, "!P[img-1|5cm] !LAA[] !Macro(@key)(@)")
	assert.Empty(t, diags)
	require.Len(t, nodes, 5)
	p := nodes[0].(*node.OpCodeNode)
	require.Len(t, p.PosArgs, 2)
	assert.Equal(t, "img-1", node.TextOf(p.PosArgs[0].Nodes))
	assert.Equal(t, "5cm", node.TextOf(p.PosArgs[1].Nodes))
	laa := nodes[2].(*node.OpCodeNode)
	assert.Equal(t, "LAA", laa.Name)
	assert.Empty(t, laa.PosArgs)
	m := nodes[4].(*node.OpCodeNode)
	require.Len(t, m.KeyArgs, 1)
	assert.Equal(t, "key", m.KeyArgs[0].Key)
	assert.Empty(t, m.KeyArgs[0].Value)
	require.Len(t, m.PosArgs, 1)
	assert.Equal(t, "@", node.TextOf(m.PosArgs[0].Nodes))
}

func TestOpCodeDuplicateKeysArePreserved(t *testing.T) {
	nodes, diags := parse(t, "!Macro(@key value)(@key another value)")
	assert.Empty(t, diags)
	op := nodes[0].(*node.OpCodeNode)
	require.Len(t, op.KeyArgs, 2)
	assert.Equal(t, "another value", node.TextOf(op.KeyArgs[1].Value))
	assert.Equal(t, source.Span{Start: 20, End: 23}, op.KeyArgs[1].KeyPos)
}

func TestOpCodeBracketMismatch(t *testing.T) {
	nodes, diags := parse(t, "!Macro[(@key ]value)(@key another value)")
	assert.Empty(t, diags)
	require.Len(t, nodes, 2)
	op := nodes[0].(*node.OpCodeNode)
	require.Len(t, op.PosArgs, 1)
	assert.Empty(t, op.KeyArgs)
	assert.Equal(t, node.Text, nodes[1].Type())
}

func TestNotAnOpCode(t *testing.T) {
	nodes, _ := parse(t, "Wow! lower!case[x] !Upper")
	require.Len(t, nodes, 1)
	assert.Equal(t, node.Text, nodes[0].Type())
}

func TestTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	text := "| Column 1 | Column 2 |\n| -------- | :------: |\n| Cell 1   | `c|d` |\n| x | y | z |"
	nodes, diags := parse(t, text)
	require.Len(t, nodes, 1)
	tbl := nodes[0].(*node.TableNode)
	assert.Equal(t, []node.Alignment{node.AlignNone, node.AlignCenter}, tbl.Align)
	require.Len(t, tbl.Children(), 4)
	assert.Equal(t, "Column 1", textOf(tbl.Header().Children()[0]))
	assert.True(t, tbl.Children()[1].(*node.TableRowNode).Control)
	assert.Equal(t, node.TableControlCell, tbl.Children()[1].(*node.TableRowNode).Children()[1].Type())
	require.Len(t, tbl.Rows(), 2)
	assert.Equal(t, "Cell 1", textOf(tbl.Rows()[0].Children()[0]))
	require.Len(t, diags, 1, "third body cell exceeds header")
	assert.Equal(t, diag.Warning, diags[0].Severity)
	assert.NoError(t, node.CheckRanges(tbl))
}

func TestNoTableWithoutControlRow(t *testing.T) {
	nodes, _ := parse(t, "| a | b |\n| c | d |")
	require.Len(t, nodes, 1)
	assert.Equal(t, node.Text, nodes[0].Type())
}

func TestListInTableCellIsBlacklisted(t *testing.T) {
	nodes, _ := parse(t, "| * a | b |\n| - | - |")
	require.Len(t, nodes, 1)
	tbl := nodes[0].(*node.TableNode)
	cell := tbl.Header().Children()[0].(*node.TableCellNode)
	require.Len(t, cell.Children(), 1)
	assert.Equal(t, node.Text, cell.Children()[0].Type())
	//
	view := node.NewTokensNode(token.Tokenize("* a"), cell)
	assert.Nil(t, parseList(NewDispatcher(), view, 0))
}

func TestUnorderedList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	nodes, diags := parse(t, "* Item 1\n* Item 2\n+ Item 3")
	assert.Empty(t, diags)
	require.Len(t, nodes, 1)
	list := nodes[0].(*node.ListNode)
	assert.False(t, list.Ordered)
	assert.False(t, list.Loose)
	require.Len(t, list.Children(), 3)
	assert.Equal(t, "Item 1", textOf(list.Children()[0]))
	assert.Equal(t, "Item 3", textOf(list.Children()[2]))
	assert.NoError(t, node.CheckRanges(list))
}

func TestOrderedListWithTextAfter(t *testing.T) {
	nodes, diags := parse(t, "3. Text 1\n\nText")
	assert.Empty(t, diags)
	require.Len(t, nodes, 2)
	list := nodes[0].(*node.ListNode)
	assert.True(t, list.Ordered)
	assert.Equal(t, 3, list.Start)
	require.Len(t, list.Children(), 1)
	assert.Equal(t, "Text", nodes[1].(*node.TextNode).Text)
}

func TestOrderedListWithLongNumbers(t *testing.T) {
	nodes, diags := parse(t, "1234567890. big")
	assert.Empty(t, diags)
	require.Len(t, nodes, 1)
	list := nodes[0].(*node.ListNode)
	assert.True(t, list.Ordered)
	assert.Equal(t, 1234567890, list.Start)
	assert.Equal(t, "big", textOf(list.Children()[0]))
	//
	nodes, _ = parse(t, "99999999999999999999999. huge")
	require.Len(t, nodes, 1)
	list = nodes[0].(*node.ListNode)
	assert.Equal(t, math.MaxInt, list.Start, "saturates")
}

func TestListIndentTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	nodes, _ := parse(t, "  - A\n  - B")
	require.Len(t, nodes, 1)
	assert.Len(t, nodes[0].(*node.ListNode).Children(), 2, "equal indentation makes peers")
	//
	nodes, _ = parse(t, "- A\n  - B\n  - C\n- D")
	require.Len(t, nodes, 1)
	outer := nodes[0].(*node.ListNode)
	require.Len(t, outer.Children(), 2)
	first := outer.Children()[0].(*node.ListItemNode)
	require.Len(t, first.Children(), 2)
	inner := first.Children()[1].(*node.ListNode)
	assert.Len(t, inner.Children(), 2)
	assert.Equal(t, 2, inner.Children()[0].(*node.ListItemNode).Indent)
	assert.NoError(t, node.CheckRanges(outer))
}

func TestListTermination(t *testing.T) {
	nodes, _ := parse(t, "* A\n\n* B")
	require.Len(t, nodes, 1, "a single blank line ends an item, not the list")
	assert.Len(t, nodes[0].(*node.ListNode).Children(), 2)
	//
	nodes, _ = parse(t, "* A\n\n\n* B")
	require.Len(t, nodes, 2, "two blank lines end the list")
	assert.Equal(t, node.List, nodes[0].Type())
	assert.Equal(t, node.List, nodes[1].Type())
	assert.Len(t, nodes[0].(*node.ListNode).Children(), 1)
}

func TestListNeedsBody(t *testing.T) {
	view := node.NewTokensNode(token.Tokenize("1. "), nil)
	assert.Nil(t, parseList(NewDispatcher(), view, 0))
	nodes, _ := parse(t, "*emphasis* at line start")
	assert.Equal(t, node.Emphasis, nodes[0].Type())
}

func TestHeadings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	nodes, diags := parse(t, "# Header 1\n## Header 2\n#### Header `4`   \n####### no")
	assert.Empty(t, diags)
	require.Len(t, nodes, 4)
	for i, level := range []int{1, 2, 4} {
		h := nodes[i].(*node.HeadingNode)
		assert.Equal(t, level, h.Level)
	}
	assert.Equal(t, "header-1", nodes[0].(*node.HeadingNode).Slug)
	h4 := nodes[2].(*node.HeadingNode)
	require.Len(t, h4.Children(), 2)
	assert.Equal(t, node.CodeSpan, h4.Children()[1].Type())
	assert.Equal(t, node.Text, nodes[3].Type())
}

func TestBlockquote(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.lexer")
	defer teardown()
	//
	nodes, diags := parse(t, "> Line 1\n> Line 2\n> Line 3\nText")
	assert.Empty(t, diags)
	require.Len(t, nodes, 2)
	bq := nodes[0].(*node.BlockquoteNode)
	assert.Equal(t, "Line 1\nLine 2\nLine 3", textOf(bq))
	assert.Equal(t, "Text", nodes[1].(*node.TextNode).Text)
	assert.NoError(t, node.CheckRanges(bq))
}

func TestCommentAndBreak(t *testing.T) {
	nodes, _ := parse(t, "// a comment\nText\n\n---\n\nMore")
	require.Len(t, nodes, 4)
	assert.Equal(t, "a comment", nodes[0].(*node.CommentNode).Text)
	assert.Equal(t, node.Text, nodes[1].Type())
	assert.Equal(t, node.ThematicBreak, nodes[2].Type())
	assert.Equal(t, "More", nodes[3].(*node.TextNode).Text)
}

func TestInlineSpans(t *testing.T) {
	nodes, _ := parse(t, "a **b** *c* ~~d~~ \\*e\\* x * y *")
	types := []node.Type{node.Text, node.Strong, node.Text, node.Emphasis, node.Text,
		node.Strikethrough, node.Text, node.Text, node.Text, node.Text, node.Text}
	require.Len(t, nodes, len(types))
	for i, typ := range types {
		assert.Equal(t, typ, nodes[i].Type(), "node #%d", i)
	}
	assert.Equal(t, "*", nodes[7].(*node.TextNode).Text)
	assert.Equal(t, " x * y *", nodes[10].(*node.TextNode).Text)
}

func TestRegisterParser(t *testing.T) {
	d := NewDispatcher()
	d.Register(Parser{Name: "mention", Parse: func(d *Dispatcher, view *node.TokensNode, i int) *Result {
		if !view.Tokens[i].Is(token.SeparatedSpecial, "@") {
			return nil
		}
		name, ok := view.At(i + 1)
		if !ok || name.Type != token.Letter {
			return nil
		}
		cs := &node.CodeSpanNode{Text: name.Text}
		node.SetPos(cs, view.SpanOf(i, i+2))
		return &Result{Nodes: []node.Node{cs}, Next: i + 2}
	}})
	assert.Equal(t, "mention", d.Parsers()[len(d.Parsers())-1])
	nodes, _ := d.Apply(node.NewTokensNode(token.Tokenize("hi @bob!"), nil))
	require.Len(t, nodes, 3)
	assert.Equal(t, "bob", nodes[1].(*node.CodeSpanNode).Text)
}

func TestApplyNodesExpandsRaw(t *testing.T) {
	d := NewDispatcher()
	raw := node.NewRaw(node.NewTokensNode(token.Tokenize("# H\ntext"), nil))
	other := node.NewText("keep", source.Span{})
	nodes, diags := d.ApplyNodes([]node.Node{raw, other})
	assert.Empty(t, diags)
	require.Len(t, nodes, 3)
	assert.Equal(t, node.Heading, nodes[0].Type())
	assert.Equal(t, node.Node(other), nodes[2])
}

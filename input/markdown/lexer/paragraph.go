package lexer

import (
	"regexp"
	"strings"

	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/core/source"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/mdtree/input/markdown/token"
)

// BuildFile tokenizes and parses a source into a document tree. Runs of
// inline nodes at file level and within blockquotes are grouped into
// paragraphs, which are separated by blank lines or block nodes.
func BuildFile(src *source.Source) (*node.FileNode, []token.Token, diag.List) {
	tokens := token.Tokenize(src.String())
	return BuildFileFromTokens(src, tokens, NewDispatcher())
}

// BuildFileFromTokens parses tokens of a source with a given dispatcher.
func BuildFileFromTokens(src *source.Source, tokens []token.Token, d *Dispatcher) (*node.FileNode,
	[]token.Token, diag.List) {
	//
	file := node.NewFile(src)
	raw := node.NewRaw(node.NewTokensNode(tokens, file))
	nodes, diags := d.ApplyNodes([]node.Node{raw})
	node.SetChildren(file, GroupParagraphs(nodes))
	node.Walk(file, func(n node.Node, _ int) bool {
		if bq, ok := n.(*node.BlockquoteNode); ok {
			node.SetChildren(bq, GroupParagraphs(bq.Children()))
		}
		return true
	})
	tracer().Infof("parsed %s: %d top-level nodes, %d diagnostics", src.Path,
		len(file.Children()), len(diags))
	return file, tokens, diags.WithFile(src.Path)
}

var blankLine = regexp.MustCompile(`\r?\n[ \t]*\r?\n(?:[ \t]*\r?\n)*`)

// GroupParagraphs wraps runs of inline nodes into paragraph nodes. Text nodes
// containing blank lines are split, whitespace-only text at paragraph
// boundaries is dropped.
func GroupParagraphs(nodes []node.Node) []node.Node {
	var result, run []node.Node
	flush := func() {
		if p := makeParagraph(run); p != nil {
			result = append(result, p)
		}
		run = nil
	}
	for _, n := range nodes {
		if !n.Type().IsInline() {
			flush()
			result = append(result, n)
			continue
		}
		t, ok := n.(*node.TextNode)
		if !ok || !isVerbatim(t) {
			run = append(run, n)
			continue
		}
		pieces := splitText(t)
		for k, piece := range pieces {
			if k > 0 {
				flush()
			}
			run = append(run, piece)
		}
	}
	flush()
	return result
}

// isVerbatim is true if a text node's content is the unaltered source text of
// its range, so that offsets within the text map to source offsets.
func isVerbatim(t *node.TextNode) bool {
	return len(t.Text) == t.Pos().Len()
}

// splitText cuts a text node at blank lines.
func splitText(t *node.TextNode) []node.Node {
	locs := blankLine.FindAllStringIndex(t.Text, -1)
	if len(locs) == 0 {
		return []node.Node{t}
	}
	var pieces []node.Node
	start := 0
	for _, loc := range locs {
		pieces = append(pieces, subText(t, start, loc[0]))
		start = loc[1]
	}
	return append(pieces, subText(t, start, len(t.Text)))
}

func subText(t *node.TextNode, from, to int) *node.TextNode {
	p := t.Pos().Start
	return node.NewText(t.Text[from:to], source.Span{Start: p + from, End: p + to})
}

// makeParagraph trims whitespace at both ends of a run of inline nodes and
// wraps the rest into a paragraph. It returns nil for blank runs.
func makeParagraph(run []node.Node) node.Node {
	for len(run) > 0 && isBlankText(run[0]) {
		run = run[1:]
	}
	for len(run) > 0 && isBlankText(run[len(run)-1]) {
		run = run[:len(run)-1]
	}
	if len(run) == 0 {
		return nil
	}
	if t, ok := run[0].(*node.TextNode); ok && isVerbatim(t) {
		trimmed := strings.TrimLeft(t.Text, " \t\r\n")
		run[0] = subText(t, len(t.Text)-len(trimmed), len(t.Text))
	}
	if t, ok := run[len(run)-1].(*node.TextNode); ok && isVerbatim(t) {
		run[len(run)-1] = subText(t, 0, len(strings.TrimRight(t.Text, " \t\r\n")))
	}
	p := &node.ParagraphNode{}
	node.SetPos(p, node.Cover(run))
	node.Append(p, run...)
	return p
}

func isBlankText(n node.Node) bool {
	t, ok := n.(*node.TextNode)
	return ok && strings.TrimSpace(t.Text) == ""
}

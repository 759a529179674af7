package lexer

import (
	"strings"

	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/mdtree/input/markdown/token"
)

// isParagraphBreak is true for delimiters containing a blank line. Inline
// constructs never extend over a paragraph break.
func isParagraphBreak(tok token.Token) bool {
	return token.Breaks(tok) > 1
}

func isBackticks(tok token.Token) bool {
	return tok.Type == token.JoinableSpecial && tok.Text[0] == '`'
}

// codeSpanEnd returns the index of the backtick run closing a code span
// opened at i, or -1.
func codeSpanEnd(view *node.TokensNode, i int) int {
	open := view.Tokens[i].Text
	for j := i + 1; j < view.Len(); j++ {
		tok := view.Tokens[j]
		if isParagraphBreak(tok) {
			return -1
		}
		if tok.Is(token.JoinableSpecial, open) {
			return j
		}
	}
	return -1
}

// matchClosing returns the index of the bracket closing the one at i, or -1.
// Code spans and escaped characters are skipped, and nested pairs of the same
// kind are balanced.
func matchClosing(view *node.TokensNode, i int, open, close string) int {
	depth := 0
	for j := i; j < view.Len(); j++ {
		tok := view.Tokens[j]
		switch {
		case isParagraphBreak(tok):
			return -1
		case tok.Is(token.SeparatedSpecial, "\\"):
			j++
		case isBackticks(tok):
			if k := codeSpanEnd(view, j); k > 0 {
				j = k
			}
		case tok.Is(token.SeparatedSpecial, open):
			depth++
		case tok.Is(token.SeparatedSpecial, close):
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func isEscapable(tok token.Token) bool {
	return tok.Type == token.SeparatedSpecial || tok.Type == token.JoinableSpecial
}

func parseEscape(d *Dispatcher, view *node.TokensNode, i int) *Result {
	if !view.Tokens[i].Is(token.SeparatedSpecial, "\\") {
		return nil
	}
	next, ok := view.At(i + 1)
	if !ok || !isEscapable(next) {
		return nil
	}
	t := node.NewText(next.Text, view.SpanOf(i, i+2))
	return &Result{Nodes: []node.Node{t}, Next: i + 2}
}

func parseCodeSpan(d *Dispatcher, view *node.TokensNode, i int) *Result {
	if !isBackticks(view.Tokens[i]) {
		return nil
	}
	end := codeSpanEnd(view, i)
	if end < 0 {
		return nil
	}
	cs := &node.CodeSpanNode{Text: view.Text(i+1, end)}
	node.SetPos(cs, view.SpanOf(i, end+1))
	return &Result{Nodes: []node.Node{cs}, Next: end + 1}
}

// linkParts matches "[text](target)" starting at i. It returns the index of
// the closing bracket, the closing parenthesis and the trimmed target.
func linkParts(view *node.TokensNode, i int) (bracket, paren int, target string, ok bool) {
	if tok, ok := view.At(i); !ok || !tok.Is(token.SeparatedSpecial, "[") {
		return 0, 0, "", false
	}
	bracket = matchClosing(view, i, "[", "]")
	if bracket < 0 {
		return 0, 0, "", false
	}
	if tok, ok := view.At(bracket + 1); !ok || !tok.Is(token.SeparatedSpecial, "(") {
		return 0, 0, "", false
	}
	paren = matchClosing(view, bracket+1, "(", ")")
	if paren < 0 {
		return 0, 0, "", false
	}
	return bracket, paren, strings.TrimSpace(view.Text(bracket+2, paren)), true
}

func parseLink(d *Dispatcher, view *node.TokensNode, i int) *Result {
	bracket, paren, href, ok := linkParts(view, i)
	if !ok {
		return nil
	}
	link := &node.LinkNode{Href: href}
	node.SetPos(link, view.SpanOf(i, paren+1))
	_, diags := d.applyTo(link, view, i+1, bracket)
	return &Result{Nodes: []node.Node{link}, Next: paren + 1, Diagnostics: diags}
}

func parseImage(d *Dispatcher, view *node.TokensNode, i int) *Result {
	if !view.Tokens[i].Is(token.SeparatedSpecial, "!") {
		return nil
	}
	bracket, paren, src, ok := linkParts(view, i+1)
	if !ok {
		return nil
	}
	img := &node.ImageNode{Src: src}
	node.SetPos(img, view.SpanOf(i, paren+1))
	_, diags := d.applyTo(img, view, i+2, bracket)
	return &Result{Nodes: []node.Node{img}, Next: paren + 1, Diagnostics: diags}
}

// spanKind maps emphasis markers to node types.
var spanKind = map[string]node.Type{
	"**": node.Strong,
	"__": node.Strong,
	"*":  node.Emphasis,
	"_":  node.Emphasis,
	"~~": node.Strikethrough,
}

func isBlank(tok token.Token) bool {
	return tok.Type == token.Spacer || tok.Type == token.Delimiter
}

func parseSpan(d *Dispatcher, view *node.TokensNode, i int) *Result {
	open := view.Tokens[i]
	kind, ok := spanKind[open.Text]
	if open.Type != token.JoinableSpecial || !ok {
		return nil
	}
	if next, ok := view.At(i + 1); !ok || isBlank(next) {
		return nil
	}
	end := -1
	for j := i + 2; j < view.Len(); j++ {
		tok := view.Tokens[j]
		if isParagraphBreak(tok) {
			break
		}
		if tok.Is(token.JoinableSpecial, open.Text) && !isBlank(view.Tokens[j-1]) {
			end = j
			break
		}
	}
	if end < 0 {
		return nil
	}
	span := node.NewSpan(kind, open.Text)
	node.SetPos(span, view.SpanOf(i, end+1))
	_, diags := d.applyTo(span, view, i+1, end)
	return &Result{Nodes: []node.Node{span}, Next: end + 1, Diagnostics: diags}
}

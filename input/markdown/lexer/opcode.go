package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/mdtree/input/markdown/token"
)

// Macro invocations ("opcodes") are written as
//
//     !Name[seg|seg|…](arg)(@key value)…
//
// A macro name starts with an upper case letter. Bracket segments are
// separated by "|"; an empty bracket pair has no segments. Parenthesized
// groups starting with "@key" are keyed arguments, all other groups are
// positional.

func isMacroName(tok token.Token) bool {
	if tok.Type != token.Letter {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tok.Text)
	return unicode.IsUpper(r)
}

func parseOpCode(d *Dispatcher, view *node.TokensNode, i int) *Result {
	if !view.Tokens[i].Is(token.SeparatedSpecial, "!") {
		return nil
	}
	name, ok := view.At(i + 1)
	if !ok || !isMacroName(name) {
		return nil
	}
	next, ok := view.At(i + 2)
	if !ok || !(next.Is(token.SeparatedSpecial, "[") || next.Is(token.SeparatedSpecial, "(")) {
		return nil
	}
	op := &node.OpCodeNode{Name: name.Text, NamePos: name.Span()}
	r := &Result{}
	j := i + 2
	if next.Is(token.SeparatedSpecial, "[") {
		end := matchClosing(view, j, "[", "]")
		if end < 0 {
			return nil
		}
		for _, seg := range segments(view, j+1, end) {
			op.PosArgs = append(op.PosArgs, node.Arg{Pos: view.SpanOf(seg[0], seg[1])})
			op.Bracketed++
		}
		for n, seg := range segments(view, j+1, end) {
			nodes, diags := d.applyTo(op, view, seg[0], seg[1])
			op.PosArgs[n].Nodes = nodes
			r.Diagnostics.Add(diags...)
		}
		j = end + 1
	}
	for {
		tok, ok := view.At(j)
		if !ok || !tok.Is(token.SeparatedSpecial, "(") {
			break
		}
		end := matchClosing(view, j, "(", ")")
		if end < 0 {
			break
		}
		at, _ := view.At(j + 1)
		key, isKey := view.At(j + 2)
		if at.Is(token.SeparatedSpecial, "@") && isKey && key.Type == token.Letter && j+2 < end {
			from := view.SkipSpacer(j + 3)
			if from > end {
				from = end
			}
			nodes, diags := d.applyTo(op, view, from, end)
			r.Diagnostics.Add(diags...)
			op.KeyArgs = append(op.KeyArgs, node.KeyArg{
				Key:    key.Text,
				KeyPos: key.Span(),
				Value:  nodes,
				Pos:    view.SpanOf(j+1, end),
			})
		} else {
			nodes, diags := d.applyTo(op, view, j+1, end)
			r.Diagnostics.Add(diags...)
			op.PosArgs = append(op.PosArgs, node.Arg{Nodes: nodes, Pos: view.SpanOf(j+1, end)})
		}
		j = end + 1
	}
	node.SetPos(op, view.SpanOf(i, j))
	r.Nodes = []node.Node{op}
	r.Next = j
	return r
}

// segments splits tokens [from, to) at top-level "|" separators. Blank
// segments are kept, unless the whole range is blank.
func segments(view *node.TokensNode, from, to int) [][2]int {
	if trimRight(view, view.SkipSpacer(from), to) <= view.SkipSpacer(from) {
		return nil
	}
	var segs [][2]int
	start, depth := from, 0
	for j := from; j < to; j++ {
		tok := view.Tokens[j]
		switch {
		case tok.Is(token.SeparatedSpecial, "\\"):
			j++
		case isBackticks(tok):
			if k := codeSpanEnd(view, j); k > 0 && k < to {
				j = k
			}
		case tok.Is(token.SeparatedSpecial, "["), tok.Is(token.SeparatedSpecial, "("):
			depth++
		case tok.Is(token.SeparatedSpecial, "]"), tok.Is(token.SeparatedSpecial, ")"):
			depth--
		case tok.Is(token.SeparatedSpecial, "|") && depth == 0:
			segs = append(segs, [2]int{start, j})
			start = j + 1
		}
	}
	return append(segs, [2]int{start, to})
}

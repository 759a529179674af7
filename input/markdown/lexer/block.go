package lexer

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/mdtree/input/markdown/token"
)

// nextLine returns the index of the token following the line delimiter at
// index end, or end if the line is the last one of the view.
func nextLine(view *node.TokensNode, end int) int {
	if end < view.Len() {
		return end + 1
	}
	return end
}

// trimRight moves end left over trailing spacers, but not beyond start.
func trimRight(view *node.TokensNode, start, end int) int {
	for end > start && view.Tokens[end-1].Type == token.Spacer {
		end--
	}
	return end
}

// --- Comments --------------------------------------------------------------

func parseComment(d *Dispatcher, view *node.TokensNode, i int) *Result {
	if !view.Tokens[i].Is(token.JoinableSpecial, "//") {
		return nil
	}
	end := view.LineEnd(i)
	c := &node.CommentNode{Text: strings.TrimSpace(view.Text(i+1, end))}
	node.SetPos(c, view.SpanOf(i, end))
	return &Result{Nodes: []node.Node{c}, Next: nextLine(view, end)}
}

// --- Fenced code -----------------------------------------------------------

func isFence(tok token.Token, min int) bool {
	return tok.Type == token.JoinableSpecial && len(tok.Text) >= min && tok.Text[0] == '`'
}

func parseCode(d *Dispatcher, view *node.TokensNode, i int) *Result {
	fence := view.Tokens[i]
	if !isFence(fence, 3) {
		return nil
	}
	lineEnd := view.LineEnd(i)
	code := &node.CodeNode{Lang: strings.TrimSpace(view.Text(i+1, lineEnd))}
	if strings.Contains(code.Lang, "`") {
		return nil // an inline code span, not a fence
	}
	r := &Result{Nodes: []node.Node{code}}
	for j := lineEnd + 1; j < view.Len(); j = view.LineEnd(j) + 1 {
		k := view.SkipSpacer(j)
		if k >= view.Len() || !isFence(view.Tokens[k], len(fence.Text)) {
			continue
		}
		closeEnd := view.LineEnd(k)
		if trimRight(view, k+1, closeEnd) != k+1 {
			continue // text after the fence
		}
		code.Text = codeBody(view.Text(lineEnd, j))
		code.Closed = true
		node.SetPos(code, view.SpanOf(i, closeEnd))
		r.Next = nextLine(view, closeEnd)
		return r
	}
	code.Text = codeBody(view.Text(lineEnd, view.Len()))
	node.SetPos(code, view.SpanOf(i, view.Len()))
	r.Next = view.Len()
	r.Diagnostics.Addf(diag.Error, diag.Parser, fence.Span(), "code block is not closed")
	return r
}

// codeBody strips the line break ending the fence line and the line break
// preceding the closing fence.
func codeBody(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		s = s[2:]
	} else {
		s = strings.TrimPrefix(s, "\n")
	}
	if strings.HasSuffix(s, "\n") {
		s = strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
	}
	return s
}

// --- Headings --------------------------------------------------------------

func parseHeading(d *Dispatcher, view *node.TokensNode, i int) *Result {
	tok := view.Tokens[i]
	if tok.Type != token.JoinableSpecial || tok.Text[0] != '#' || len(tok.Text) > 6 {
		return nil
	}
	if next, ok := view.At(i + 1); !ok || next.Type != token.Spacer {
		return nil
	}
	lineEnd := view.LineEnd(i)
	end := trimRight(view, i+2, lineEnd)
	h := &node.HeadingNode{Level: len(tok.Text)}
	node.SetPos(h, view.SpanOf(i, end))
	_, diags := d.applyTo(h, view, i+2, end)
	h.Slug = slug.Make(node.TextOf(h.Children()))
	return &Result{Nodes: []node.Node{h}, Next: nextLine(view, lineEnd), Diagnostics: diags}
}

// --- Thematic breaks -------------------------------------------------------

func parseThematicBreak(d *Dispatcher, view *node.TokensNode, i int) *Result {
	k := view.SkipSpacer(i)
	tok, ok := view.At(k)
	if !ok || tok.Type != token.JoinableSpecial || len(tok.Text) < 3 {
		return nil
	}
	if c := tok.Text[0]; c != '-' && c != '*' && c != '_' {
		return nil
	}
	lineEnd := view.LineEnd(k)
	if trimRight(view, k+1, lineEnd) != k+1 {
		return nil
	}
	hr := &node.ThematicBreakNode{}
	node.SetPos(hr, tok.Span())
	return &Result{Nodes: []node.Node{hr}, Next: nextLine(view, lineEnd)}
}

// --- Blockquotes -----------------------------------------------------------

func isQuoteLine(view *node.TokensNode, i int) bool {
	tok, ok := view.At(i)
	return ok && tok.Is(token.SeparatedSpecial, ">")
}

func parseBlockquote(d *Dispatcher, view *node.TokensNode, i int) *Result {
	if !isQuoteLine(view, i) {
		return nil
	}
	var body []token.Token
	end, next := i, i
	for j := i; isQuoteLine(view, j); {
		from := view.SkipSpacer(j + 1)
		lineEnd := view.LineEnd(j)
		if len(body) > 0 {
			body = append(body, view.Tokens[end]) // the line break
		}
		body = append(body, view.Tokens[from:lineEnd]...)
		end, next = lineEnd, nextLine(view, lineEnd)
		if lineEnd >= view.Len() || token.Breaks(view.Tokens[lineEnd]) > 1 {
			break
		}
		j = lineEnd + 1
	}
	bq := &node.BlockquoteNode{}
	node.SetPos(bq, view.SpanOf(i, end))
	nodes, diags := d.Apply(node.NewTokensNode(body, bq))
	node.Append(bq, nodes...)
	return &Result{Nodes: []node.Node{bq}, Next: next, Diagnostics: diags}
}

// --- Tables ----------------------------------------------------------------

type tableLine struct {
	start, end int // tokens of the line, after indentation
}

func isTableLine(view *node.TokensNode, i int) bool {
	tok, ok := view.At(view.SkipSpacer(i))
	return ok && tok.Is(token.SeparatedSpecial, "|")
}

// cellRanges splits a table line into cell token ranges. Escaped pipes and
// pipes within code spans do not separate cells, and a trailing pipe does not
// open an empty cell.
func cellRanges(view *node.TokensNode, line tableLine) [][2]int {
	var cells [][2]int
	start := line.start + 1
	for j := start; j < line.end; j++ {
		tok := view.Tokens[j]
		if tok.Is(token.SeparatedSpecial, "\\") {
			j++
			continue
		}
		if isBackticks(tok) {
			if k := codeSpanEnd(view, j); k > 0 && k < line.end {
				j = k
			}
			continue
		}
		if tok.Is(token.SeparatedSpecial, "|") {
			cells = append(cells, [2]int{start, j})
			start = j + 1
		}
	}
	if trimRight(view, start, line.end) > start {
		cells = append(cells, [2]int{start, line.end})
	}
	return cells
}

// trimCell narrows a cell range to its non-blank tokens.
func trimCell(view *node.TokensNode, c [2]int) (int, int) {
	from := view.SkipSpacer(c[0])
	if from > c[1] {
		from = c[1]
	}
	return from, trimRight(view, from, c[1])
}

// controlAlignment interprets a control cell like ":---:". ok is false if the
// cell is not a valid control cell.
func controlAlignment(view *node.TokensNode, from, to int) (align node.Alignment, ok bool) {
	var left, right, dashes bool
	for j := from; j < to; j++ {
		tok := view.Tokens[j]
		switch {
		case tok.Is(token.SeparatedSpecial, ":") && j == from:
			left = true
		case tok.Is(token.SeparatedSpecial, ":") && j == to-1 && dashes:
			right = true
		case tok.Type == token.JoinableSpecial && tok.Text[0] == '-' && !dashes:
			dashes = true
		default:
			return node.AlignNone, false
		}
	}
	switch {
	case !dashes:
		return node.AlignNone, false
	case left && right:
		return node.AlignCenter, true
	case left:
		return node.AlignLeft, true
	case right:
		return node.AlignRight, true
	}
	return node.AlignNone, true
}

func parseTable(d *Dispatcher, view *node.TokensNode, i int) *Result {
	var lines []tableLine
	next := i
	for j := i; isTableLine(view, j); {
		lineEnd := view.LineEnd(j)
		lines = append(lines, tableLine{start: view.SkipSpacer(j), end: trimRight(view, j, lineEnd)})
		next = nextLine(view, lineEnd)
		if lineEnd >= view.Len() || token.Breaks(view.Tokens[lineEnd]) > 1 {
			break
		}
		j = lineEnd + 1
	}
	if len(lines) < 2 {
		return nil
	}
	var aligns []node.Alignment
	for _, c := range cellRanges(view, lines[1]) {
		from, to := trimCell(view, c)
		a, ok := controlAlignment(view, from, to)
		if !ok {
			return nil
		}
		aligns = append(aligns, a)
	}
	if len(aligns) == 0 {
		return nil
	}
	tbl := &node.TableNode{Align: aligns}
	node.SetPos(tbl, view.SpanOf(lines[0].start, lines[len(lines)-1].end))
	r := &Result{Nodes: []node.Node{tbl}, Next: next}
	header := 0
	for n, line := range lines {
		row := &node.TableRowNode{Control: n == 1}
		node.SetPos(row, view.SpanOf(line.start, line.end))
		cells := cellRanges(view, line)
		for _, c := range cells {
			from, to := trimCell(view, c)
			if row.Control {
				cell := &node.TableControlCellNode{}
				cell.Align, _ = controlAlignment(view, from, to)
				node.SetPos(cell, view.SpanOf(from, to))
				node.Append(row, cell)
				continue
			}
			cell := &node.TableCellNode{}
			node.SetPos(cell, view.SpanOf(from, to))
			_, diags := d.applyTo(cell, view, from, to)
			r.Diagnostics.Add(diags...)
			node.Append(row, cell)
		}
		switch {
		case n == 0:
			header = len(cells)
		case !row.Control && len(cells) > header:
			r.Diagnostics.Addf(diag.Warning, diag.Parser, row.Pos(),
				"table row has more cells than the header")
		}
		node.Append(tbl, row)
	}
	return r
}

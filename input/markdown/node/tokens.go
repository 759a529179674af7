package node

import (
	"github.com/npillmayer/mdtree/core/source"
	"github.com/npillmayer/mdtree/input/markdown/token"
)

// TokensNode is a view over a sequence of tokens, bound to the node which is
// under construction from them. It never copies token text; text is
// concatenated on demand.
type TokensNode struct {
	Tokens []token.Token
	Parent Node // node under construction, may be nil at file level
}

// NewTokensNode creates a view over tokens.
func NewTokensNode(tokens []token.Token, parent Node) *TokensNode {
	return &TokensNode{Tokens: tokens, Parent: parent}
}

// Len returns the number of tokens in the view.
func (tn *TokensNode) Len() int {
	return len(tn.Tokens)
}

// At returns the token at index i. ok is false if i is out of range.
func (tn *TokensNode) At(i int) (tok token.Token, ok bool) {
	if i < 0 || i >= len(tn.Tokens) {
		return token.Token{}, false
	}
	return tn.Tokens[i], true
}

// Span returns the source range covered by the view.
func (tn *TokensNode) Span() source.Span {
	return token.Span(tn.Tokens)
}

// SpanOf returns the source range of tokens [from, to).
func (tn *TokensNode) SpanOf(from, to int) source.Span {
	if from < 0 || to > len(tn.Tokens) || from >= to {
		if from >= 0 && from < len(tn.Tokens) {
			p := tn.Tokens[from].Pos
			return source.Span{Start: p, End: p}
		}
		return source.Span{}
	}
	return source.Span{Start: tn.Tokens[from].Pos, End: tn.Tokens[to-1].End()}
}

// Text returns the concatenated text of tokens [from, to).
func (tn *TokensNode) Text(from, to int) string {
	if from < 0 || to > len(tn.Tokens) || from >= to {
		return ""
	}
	return token.Text(tn.Tokens[from:to])
}

// Slice returns a view on tokens [from, to), bound to parent.
// ok is false if the range lies outside of the view.
func (tn *TokensNode) Slice(from, to int, parent Node) (view *TokensNode, ok bool) {
	if from < 0 || to > len(tn.Tokens) || from > to {
		return nil, false
	}
	return &TokensNode{Tokens: tn.Tokens[from:to], Parent: parent}, true
}

// AtLineStart is true if token i starts a line within the view.
func (tn *TokensNode) AtLineStart(i int) bool {
	if i == 0 {
		return true
	}
	prev, ok := tn.At(i - 1)
	return ok && prev.Type == token.Delimiter
}

// LineEnd returns the index of the first Delimiter at or after i, or Len()
// if the line runs to the end of the view.
func (tn *TokensNode) LineEnd(i int) int {
	for ; i < len(tn.Tokens); i++ {
		if tn.Tokens[i].Type == token.Delimiter {
			return i
		}
	}
	return len(tn.Tokens)
}

// SkipSpacer returns i+1 if token i is a Spacer, else i.
func (tn *TokensNode) SkipSpacer(i int) int {
	if tok, ok := tn.At(i); ok && tok.Type == token.Spacer {
		return i + 1
	}
	return i
}

// HasParentType is true if the view's parent, or any of its ancestors, is of
// type t. If direct is true, only the immediate parent is checked.
func (tn *TokensNode) HasParentType(t Type, direct bool) bool {
	for p := tn.Parent; p != nil; p = p.Parent() {
		if p.Type() == t {
			return true
		}
		if direct {
			break
		}
	}
	return false
}

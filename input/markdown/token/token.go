/*
Package token splits Markdown text into a flat, lossless stream of tokens.

Tokenization never fails and never drops input: concatenating the text of all
tokens reproduces the source exactly. Tokens come in five classes:

   Letter            runs of letters and digits, joined by inner '_'
   Spacer            runs of horizontal whitespace
   Delimiter         line breaks, including following blank lines
   JoinableSpecial   runs of identical markup characters, e.g. "//", "**", "```"
   SeparatedSpecial  single punctuation characters, e.g. "|", "[", "!"

A Delimiter starting at a line break extends over directly following lines
which consist of whitespace only. The number of line breaks it covers tells
the parser whether it separates paragraphs, see Breaks.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package token

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/mdtree/core/source"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtree.token'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.token")
}

// Type is the class of a token.
type Type int8

// Token classes.
const (
	Letter Type = iota
	Spacer
	Delimiter
	JoinableSpecial
	SeparatedSpecial
)

func (t Type) String() string {
	switch t {
	case Letter:
		return "Letter"
	case Spacer:
		return "Spacer"
	case Delimiter:
		return "Delimiter"
	case JoinableSpecial:
		return "JoinableSpecial"
	case SeparatedSpecial:
		return "SeparatedSpecial"
	}
	return "?"
}

// Token is an immutable piece of source text.
type Token struct {
	Type Type
	Text string
	Pos  int // byte offset of Text in the source
}

// End returns the offset just behind the token.
func (tok Token) End() int {
	return tok.Pos + len(tok.Text)
}

// Span returns the range covered by the token.
func (tok Token) Span() source.Span {
	return source.Span{Start: tok.Pos, End: tok.End()}
}

// Is checks type and text of a token.
func (tok Token) Is(typ Type, text string) bool {
	return tok.Type == typ && tok.Text == text
}

func (tok Token) String() string {
	return fmt.Sprintf("%s(%q@%d)", tok.Type, tok.Text, tok.Pos)
}

// Breaks returns the number of line breaks a delimiter token covers.
// It returns 0 for all other token types.
func Breaks(tok Token) int {
	if tok.Type != Delimiter {
		return 0
	}
	return strings.Count(tok.Text, "\n")
}

// joinable lists characters which form a single token when repeated.
const joinable = "/*_~=#-+`$"

// IsJoinable is true for characters which tokenize as JoinableSpecial.
func IsJoinable(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(joinable, byte(r)) >= 0
}

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isSpace(r rune) bool {
	return r != '\n' && r != '\r' && unicode.IsSpace(r)
}

// Tokenize splits text into tokens. Token positions are offsets into text.
func Tokenize(text string) []Token {
	tokens := make([]Token, 0, len(text)/3+1)
	pos := 0
	for pos < len(text) {
		start := pos
		r, w := utf8.DecodeRuneInString(text[pos:])
		var typ Type
		switch {
		case r == '\n' || (r == '\r' && strings.HasPrefix(text[pos+w:], "\n")):
			typ = Delimiter
			pos = scanDelimiter(text, pos)
		case isSpace(r):
			typ = Spacer
			pos = scanWhile(text, pos, isSpace)
		case isWord(r):
			typ = Letter
			pos = scanWordTail(text, scanWhile(text, pos, isWord))
		case IsJoinable(r):
			typ = JoinableSpecial
			pos = scanWhile(text, pos, func(x rune) bool { return x == r })
		default:
			typ = SeparatedSpecial
			pos += w
		}
		tokens = append(tokens, Token{Type: typ, Text: text[start:pos], Pos: start})
	}
	tracer().Debugf("tokenized %d bytes into %d tokens", len(text), len(tokens))
	return tokens
}

// scanWordTail continues a word over inner underscores ("snake_case"), but
// leaves trailing underscores to be markup ("_emph_").
func scanWordTail(text string, pos int) int {
	for pos < len(text) && text[pos] == '_' {
		end := pos
		for end < len(text) && text[end] == '_' {
			end++
		}
		if end >= len(text) {
			return pos
		}
		r, _ := utf8.DecodeRuneInString(text[end:])
		if !isWord(r) {
			return pos
		}
		pos = scanWhile(text, end, isWord)
	}
	return pos
}

func scanWhile(text string, pos int, pred func(rune) bool) int {
	for pos < len(text) {
		r, w := utf8.DecodeRuneInString(text[pos:])
		if !pred(r) {
			break
		}
		pos += w
	}
	return pos
}

// scanDelimiter consumes a line break and every following line which
// contains nothing but horizontal whitespace.
func scanDelimiter(text string, pos int) int {
	pos = skipBreak(text, pos)
	for pos < len(text) {
		next := scanWhile(text, pos, isSpace)
		if next >= len(text) || (text[next] != '\n' && !strings.HasPrefix(text[next:], "\r\n")) {
			break
		}
		pos = skipBreak(text, next)
	}
	return pos
}

func skipBreak(text string, pos int) int {
	if text[pos] == '\r' {
		pos++
	}
	return pos + 1
}

// Text concatenates the text of a token sequence.
func Text(tokens []Token) string {
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return tokens[0].Text
	}
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Span returns the range covered by a token sequence.
func Span(tokens []Token) source.Span {
	if len(tokens) == 0 {
		return source.Span{}
	}
	return source.Span{Start: tokens[0].Pos, End: tokens[len(tokens)-1].End()}
}

package token

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdtree.token")
	defer teardown()
	//
	tokens := Tokenize("// Hello, *wörld*!\n")
	types := []Type{JoinableSpecial, Spacer, Letter, SeparatedSpecial, Spacer,
		JoinableSpecial, Letter, JoinableSpecial, SeparatedSpecial, Delimiter}
	require.Len(t, tokens, len(types))
	for i, typ := range types {
		assert.Equal(t, typ, tokens[i].Type, "token #%d = %v", i, tokens[i])
	}
	assert.Equal(t, "//", tokens[0].Text)
	assert.Equal(t, "wörld", tokens[6].Text)
	assert.Equal(t, 11, tokens[6].Pos)
}

func TestTokenizeJoinables(t *testing.T) {
	tokens := Tokenize("```go\n---\n**x** ## |[]")
	texts := []string{"```", "go", "\n", "---", "\n", "**", "x", "**", " ", "##", " ", "|", "[", "]"}
	require.Len(t, tokens, len(texts))
	for i, text := range texts {
		assert.Equal(t, text, tokens[i].Text)
	}
	assert.Equal(t, SeparatedSpecial, tokens[11].Type)
	assert.Equal(t, SeparatedSpecial, tokens[12].Type)
}

func TestTokenizeUnderscores(t *testing.T) {
	tokens := Tokenize("snake_case _em_")
	require.Len(t, tokens, 5)
	assert.Equal(t, "snake_case", tokens[0].Text)
	assert.Equal(t, Letter, tokens[0].Type)
	assert.Equal(t, "_", tokens[2].Text)
	assert.Equal(t, JoinableSpecial, tokens[2].Type)
	assert.Equal(t, "em", tokens[3].Text)
	assert.Equal(t, "_", tokens[4].Text)
}

func TestDelimiterBreaks(t *testing.T) {
	tokens := Tokenize("a\nb\n\nc\r\n  \n\n  d")
	var delims []Token
	for _, tok := range tokens {
		if tok.Type == Delimiter {
			delims = append(delims, tok)
		}
	}
	require.Len(t, delims, 3)
	assert.Equal(t, 1, Breaks(delims[0]))
	assert.Equal(t, 2, Breaks(delims[1]))
	assert.Equal(t, 3, Breaks(delims[2]))
	assert.Equal(t, "\r\n  \n\n", delims[2].Text)
	last := tokens[len(tokens)-2]
	assert.Equal(t, Spacer, last.Type, "indentation of a non-blank line stays a spacer")
	assert.Equal(t, 0, Breaks(tokens[0]))
}

func TestTokenizeLossless(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"# Heading\n\nText with `code` and [link](http://x.y/z?q=1).\n",
		"!P[img-1|5cm]\n![Image](./assets/img.png)\r\n\r\n",
		"| a | b |\n| :-- | --: |\n| 1 | 2 |",
		"1. one\n   * nested\n\n\n   \ttail\r",
		"日本語テキスト、句読点。😀  x",
	}
	for _, input := range inputs {
		tokens := Tokenize(input)
		assert.Equal(t, input, Text(tokens), "tokenization must be lossless")
		pos := 0
		for _, tok := range tokens {
			assert.Equal(t, pos, tok.Pos, "tokens must be contiguous")
			assert.NotEmpty(t, tok.Text)
			pos = tok.End()
		}
		assert.Equal(t, len(input), pos)
	}
}

func TestSpan(t *testing.T) {
	tokens := Tokenize("ab cd")
	assert.Equal(t, 0, Span(tokens).Start)
	assert.Equal(t, 5, Span(tokens).End)
	assert.Equal(t, 3, Span(tokens[2:]).Start)
	assert.True(t, Span(nil).Empty())
	assert.True(t, tokens[1].Is(Spacer, " "))
}

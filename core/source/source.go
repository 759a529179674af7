/*
Package source holds Markdown documents in memory and maps byte offsets to
human readable text positions.

Every range in a document tree is expressed as a Span of byte offsets into the
source text. Spans are half-open: Start is inclusive, End is exclusive.
A Source keeps its text as a cord (rope) and is able to cut out the text of a
span without copying the whole document, and to translate an offset into a
line and column, where columns count display cells (East Asian wide characters
count as two, as defined by UAX#11).

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package source

import (
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// tracer traces with key 'mdtree.source'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.source")
}

// Span is a half-open range [Start, End) of byte offsets into a source text.
type Span struct {
	Start, End int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty is true if s covers no bytes.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Contains is true if o lies completely inside of s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Before is true if s ends at or before the start of o.
func (s Span) Before(o Span) bool {
	return s.End <= o.Start
}

// Cover returns the smallest span containing both s and o. Empty spans
// count with their offset, so the zero span stretches the result to 0.
func (s Span) Cover(o Span) Span {
	r := s
	if o.Start < r.Start {
		r.Start = o.Start
	}
	if o.End > r.End {
		r.End = o.End
	}
	return r
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Position is a 1-based line/column pair. Column counts display cells.
type Position struct {
	Line, Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Source is an immutable document text together with its logical file name.
type Source struct {
	Path  string
	text  cords.Cord
	size  int
	lines []int // byte offsets of line starts
}

var setupGraphemes sync.Once

// New creates a source for a document text. path is a logical file name,
// used in diagnostics only.
func New(path string, text string) *Source {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	src := &Source{
		Path:  path,
		text:  cords.FromString(text),
		size:  len(text),
		lines: []int{0},
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			src.lines = append(src.lines, i+1)
		}
	}
	tracer().Debugf("source %q: %d bytes, %d lines", path, src.size, len(src.lines))
	return src
}

// Len returns the length of the source text in bytes.
func (src *Source) Len() int {
	return src.size
}

// String returns the complete source text.
func (src *Source) String() string {
	if src.size == 0 {
		return ""
	}
	return src.text.String()
}

// Text returns the text of a span. Spans are clipped to the source boundaries.
func (src *Source) Text(s Span) string {
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End > src.size {
		s.End = src.size
	}
	if s.Empty() {
		return ""
	}
	t, err := src.text.Report(uint64(s.Start), uint64(s.Len()))
	if err != nil {
		tracer().Errorf("cannot report span %s: %v", s, err)
		return ""
	}
	return t
}

// LineCount returns the number of lines of the source.
func (src *Source) LineCount() int {
	return len(src.lines)
}

// Line returns the text of line n (1-based), without its line terminator.
func (src *Source) Line(n int) string {
	if n < 1 || n > len(src.lines) {
		return ""
	}
	end := src.size
	if n < len(src.lines) {
		end = src.lines[n] - 1
	}
	line := src.Text(Span{src.lines[n-1], end})
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line
}

// Position translates a byte offset into a line and display column.
func (src *Source) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > src.size {
		offset = src.size
	}
	l := sort.SearchInts(src.lines, offset+1) - 1
	prefix := src.Text(Span{src.lines[l], offset})
	return Position{Line: l + 1, Column: DisplayWidth(prefix) + 1}
}

// DisplayWidth returns the number of monospace cells needed to display s.
func DisplayWidth(s string) int {
	if s == "" {
		return 0
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(s)
	w := 0
	for i := 0; i < gstr.Len(); i++ {
		w += uax11.Width([]byte(gstr.Nth(i)), uax11.LatinContext)
	}
	return w
}

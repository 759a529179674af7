/*
Package diag collects positioned diagnostics produced while parsing,
applying macros to and resolving a Markdown document.

Diagnostics are plain values. Parsers never abort on local problems; they
record a diagnostic and continue. Severity Fatal is reserved for referential
integrity failures (undefined or unused labels) and for broken tree
invariants, which a host must treat as a failed document.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/mdtree/core/source"
)

// Severity of a diagnostic.
type Severity int8

// Severities, ordered by increasing weight.
const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	}
	return "?"
}

// Kind tells which stage produced a diagnostic.
type Kind int8

// Kinds of diagnostics.
const (
	Parser    Kind = iota // block/inline parsing
	Arguments             // macro argument parsing
	Macro                 // macro application
	Undefined             // citation of an undeclared label
	Unused                // declaration never cited
	Internal              // broken tree invariant
)

var kindNames = [...]string{"parser", "arguments", "macro", "undefined", "unused", "internal"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "?"
	}
	return kindNames[k]
}

// Diagnostic is a message anchored at a span of a source file.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Pos      source.Span
	File     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s%s: %s (%s): %s", d.File, d.Pos, d.Severity, d.Kind, d.Message)
}

// Format renders d with a line:column position taken from src.
func (d Diagnostic) Format(src *source.Source) string {
	file := d.File
	if file == "" && src != nil {
		file = src.Path
	}
	if src == nil {
		return d.String()
	}
	return fmt.Sprintf("%s:%s: %s: %s", file, src.Position(d.Pos.Start), d.Severity, d.Message)
}

// New creates a diagnostic. The message is formatted with fmt.Sprintf.
func New(sev Severity, kind Kind, pos source.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends diagnostics to l.
func (l *List) Add(d ...Diagnostic) {
	*l = append(*l, d...)
}

// Addf creates a diagnostic and appends it to l.
func (l *List) Addf(sev Severity, kind Kind, pos source.Span, format string, args ...interface{}) {
	*l = append(*l, New(sev, kind, pos, format, args...))
}

// Count returns the number of diagnostics with severity at least sev.
func (l List) Count(sev Severity) int {
	n := 0
	for _, d := range l {
		if d.Severity >= sev {
			n++
		}
	}
	return n
}

// HasFatal is true if l contains a fatal diagnostic.
func (l List) HasFatal() bool {
	return l.Count(Fatal) > 0
}

// OfKind returns the diagnostics of a given kind.
func (l List) OfKind(kind Kind) List {
	var r List
	for _, d := range l {
		if d.Kind == kind {
			r = append(r, d)
		}
	}
	return r
}

// WithFile stamps every diagnostic lacking a file name with file.
func (l List) WithFile(file string) List {
	for i := range l {
		if l[i].File == "" {
			l[i].File = file
		}
	}
	return l
}

// Sort orders diagnostics by position, keeping insertion order for equal
// positions.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Pos.Start < l[j].Pos.Start
	})
}

func (l List) String() string {
	var b strings.Builder
	for i, d := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.String())
	}
	return b.String()
}

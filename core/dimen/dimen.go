/*
Package dimen implements dimensions and units for sizes given to figures and
tables, e.g. `!P[fig|4cm]` or `!T[tab|width=80%]`.

Values are kept in scaled big points, so conversions between units are exact
enough for layout purposes downstream.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Dimen is a dimension type.
// Values are in scaled big points (different from TeX).
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // "pixels"
	PT   Dimen = 65291   // printers point 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// Infinity is the largest possible dimension
const Infinity = math.MaxInt32

func (d Dimen) String() string {
	return fmt.Sprintf("%.2fbp", d.Points())
}

// Points returns a dimension in big points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// Size is a dimension or a percentage of the available space.
type Size struct {
	Dimen     Dimen
	Percent   float64 // used if IsPercent is set
	IsPercent bool
}

func (s Size) String() string {
	if s.IsPercent {
		return strconv.FormatFloat(s.Percent, 'f', -1, 64) + "%"
	}
	return s.Dimen.String()
}

// ErrFormat is returned for strings not denoting a size.
var ErrFormat = errors.New("format error parsing dimension")

var dimenPattern = regexp.MustCompile(`^([+\-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+))\s*(%|[a-zA-Z]{2})?$`)

var units = map[string]Dimen{
	"sp": SP, "bp": BP, "px": PX, "pt": PT, "mm": MM, "cm": CM, "in": IN,
}

// ParseDimen parses a string to return a size. Syntax is CSS Unit, with
// fractional values allowed (`1.5cm`). A number without unit is taken as
// scaled points. Percentages (`80%`) must lie between 0 and 100.
func ParseDimen(s string) (Size, error) {
	d := dimenPattern.FindStringSubmatch(strings.TrimSpace(s))
	if d == nil {
		return Size{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	if d[2] == "%" {
		if n < 0 || n > 100 {
			return Size{}, fmt.Errorf("%w: percentage out of range: %q", ErrFormat, s)
		}
		return Size{Percent: n, IsPercent: true}, nil
	}
	scale := SP
	if d[2] != "" {
		var ok bool
		if scale, ok = units[strings.ToLower(d[2])]; !ok {
			return Size{}, fmt.Errorf("%w: unknown unit %q", ErrFormat, d[2])
		}
	}
	v := n * float64(scale)
	if math.Abs(v) > Infinity {
		return Size{}, fmt.Errorf("%w: dimension too large: %q", ErrFormat, s)
	}
	return Size{Dimen: Dimen(math.Round(v))}, nil
}

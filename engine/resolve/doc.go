/*
Package resolve numbers declared entities and resolves citations.

Entities fall into five categories: pictures, tables, code listings,
applications and references. Each category is numbered independently,
starting at 1, in declaration order. Citations (keys) may precede the
declaration they cite.

Resolution checks referential integrity: citing an undeclared label and
declaring a label nobody cites are both fatal. Resolve reports them as
diagnostics and returns an error wrapping ErrUndefinedEntity or
ErrUnusedEntity, respectively.

Applications get a letter designation in addition to their index. They are
detached from where they are declared and collected by application listings;
references are collected by reference listings.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resolve

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtree.resolve'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.resolve")
}

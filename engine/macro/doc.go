/*
Package macro applies macro invocations to a document tree.

Macro invocations ("opcodes") are parsed by package lexer into OpCode nodes.
This package replaces every OpCode, in document order, by the processed
nodes its command produces: numbered pictures, tables and code listings,
citation keys, counters, applications, references and listings.

Commands are registered by name in a Registry. Each command declares an
argument schema, which ParseArguments matches against the arguments of an
invocation. Commands declaring a figure-like entity bind to the node
following the invocation, e.g.

    !P[gray-square|5cm]
    ![Gray square](./assets/gray.png)

binds the image to a picture labeled "gray-square".

Numbering and citation checks are not done here, but by package resolve.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package macro

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtree.macro'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.macro")
}

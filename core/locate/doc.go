/*
Package locate resolves files a document refers to, e.g. picture files or the
source files of code applications.

As resource lookup may be a time-consuming task, lookups work in an
async/await fashion. Functions named

   Resolve…(…)

return a promise, which the client will call later to receive the resolved
path. The call to the promise will then block until the lookup has completed.

Lookups are made against an fs.FS, usually rooted at the directory of the
document.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package locate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'mdtree.locate'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.locate")
}

/*
Command mdtree parses Markdown documents into resolved document trees.

	mdtree parse report.md -o report.json
	mdtree query report.md '//PictureProcessed/@label'
	mdtree repl report.md

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"

	"github.com/npillmayer/mdtree/cmd/mdtree/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

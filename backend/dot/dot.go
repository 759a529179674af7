/*
Package dot draws document trees as GraphViz graphs, for debugging.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dot

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdtree.dot'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.dot")
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	BoxTmpl  *template.Template
	EdgeTmpl *template.Template
	cnt      int
}

// Helper structs
type cbox struct {
	N    node.Node
	Name string
}

type cedge struct {
	N1, N2 cbox
}

// ToGraphViz creates a graphical representation of a document tree.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
func ToGraphViz(root node.Node, w io.Writer) error {
	header, err := template.New("docTree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.BoxTmpl = template.Must(template.New("box").Funcs(
		template.FuncMap{
			"shortstring": shortText,
			"istext":      isText,
			"color":       fillColor,
			"label":       label,
		}).Parse(boxTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[node.Node]string, 256)
	if err = boxes(root, w, dict, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

func children(n node.Node) []node.Node {
	if l, ok := n.(*node.ListingNode); ok {
		items := make([]node.Node, len(l.Items))
		for i, item := range l.Items {
			items[i] = item
		}
		return items
	}
	return node.Children(n)
}

func boxes(n node.Node, w io.Writer, dict map[node.Node]string, gparams *graphParamsType) error {
	gparams.cnt++
	if err := box(n, w, dict, gparams); err != nil {
		return err
	}
	tracer().Debugf("node = %s %s", n.Type(), n.Pos())
	for _, child := range children(n) {
		if err := boxes(child, w, dict, gparams); err != nil {
			return err
		}
		e := cedge{cbox{n, dict[n]}, cbox{child, dict[child]}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func box(n node.Node, w io.Writer, dict map[node.Node]string, gparams *graphParamsType) error {
	name := dict[n]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(dict)+1)
		dict[n] = name
	}
	return gparams.BoxTmpl.Execute(w, &cbox{n, name})
}

func shortText(b *cbox) string {
	txt := node.TextContent(b.N)
	s := "\"T \\\""
	if r := []rune(txt); len(r) > 10 {
		s += string(r[:10]) + "…\\\"\""
	} else {
		s += txt + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

func isText(n node.Node) bool {
	return n.Type() == node.Text
}

func label(n node.Node) string {
	l := n.Type().String()
	switch x := n.(type) {
	case *node.HeadingNode:
		l = fmt.Sprintf("%s %d", l, x.Level)
	case *node.KeyNode:
		l = fmt.Sprintf("%s %s → %d", l, x.Label, x.Index)
	case node.Declaration:
		d := x.Declaration()
		l = fmt.Sprintf("%s %s = %d%s", l, d.Label, d.Index, d.Designation)
	}
	return fmt.Sprintf("%q", l)
}

func fillColor(n node.Node) string {
	switch {
	case n.Type().IsProcessed():
		return "darkseagreen2"
	case n.Type() == node.OpCode:
		return "lightsalmon"
	case n.Type().IsInline():
		return "lightyellow"
	}
	return "lightblue3"
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`
const boxTmpl = `{{ if istext .N }}
{{ .Name }}	[ label={{ shortstring . }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ label .N }} shape=box style=filled fillcolor={{ color .N }} ] ;
{{ end }}
`

const edgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`

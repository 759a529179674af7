/*
Package pipeline runs the stages turning Markdown source text into a
resolved document tree: tokenizing, parsing, applying macros and resolving
citations. Optionally, files the document refers to are checked for existence.

Every stage reports diagnostics; they are collected in a single list and
never dropped. Process returns an error only for failures a renderer must not
ignore: broken referential integrity, a broken tree, or, in strict mode, any
error diagnostic.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pipeline

import (
	"context"
	"io/fs"
	"path"

	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/core/locate"
	"github.com/npillmayer/mdtree/core/source"
	"github.com/npillmayer/mdtree/engine/macro"
	"github.com/npillmayer/mdtree/engine/resolve"
	"github.com/npillmayer/mdtree/input/markdown/lexer"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/npillmayer/mdtree/input/markdown/token"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'mdtree.pipeline'.
func tracer() tracing.Trace {
	return tracing.Select("mdtree.pipeline")
}

// Options configure a pipeline run. The zero value is usable.
type Options struct {
	Language   language.Tag      // designations of applications
	Dispatcher *lexer.Dispatcher // nil for the default parsers
	Registry   *macro.Registry   // nil for the built-in macros
	Strict     bool              // treat error diagnostics as failure
	Resources  fs.FS             // if set, referenced files are looked up here
}

// Result is the outcome of processing a document.
type Result struct {
	Source      *source.Source
	File        *node.FileNode
	Tokens      []token.Token
	Diagnostics diag.List
}

// Process runs all stages over the text of a document. fileID names the
// document in diagnostics. A result is returned even if err is non-nil,
// unless the tree is broken.
func Process(text string, fileID string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	d := opts.Dispatcher
	if d == nil {
		d = lexer.NewDispatcher()
	}
	src := source.New(fileID, text)
	tokens := token.Tokenize(text)
	file, _, diags := lexer.BuildFileFromTokens(src, tokens, d)
	r := &Result{Source: src, File: file, Tokens: tokens}
	r.Diagnostics.Add(diags...)
	if err := r.checkTree("parsing"); err != nil {
		return r, err
	}
	r.Diagnostics.Add(macro.Apply(file, opts.Registry)...)
	if err := r.checkTree("macro application"); err != nil {
		return r, err
	}
	lang := opts.Language
	if lang == language.Und {
		lang = language.English
	}
	rdiags, err := resolve.Resolve(file, resolve.NewContext(lang))
	r.Diagnostics.Add(rdiags...)
	if opts.Resources != nil {
		r.Diagnostics.Add(CheckResources(context.Background(), file, opts.Resources)...)
	}
	r.Diagnostics.Sort()
	if err == nil && opts.Strict {
		if n := r.Diagnostics.Count(diag.Error); n > 0 {
			err = core.Error(core.EINVALID, "%d error(s) in %s", n, fileID)
		}
	}
	tracer().Infof("processed %s: %d diagnostics", fileID, len(r.Diagnostics))
	return r, err
}

// checkTree verifies the range invariants after a stage.
func (r *Result) checkTree(stage string) error {
	err := node.CheckRanges(r.File)
	if err == nil {
		return nil
	}
	r.Diagnostics.Add(diag.Diagnostic{
		Severity: diag.Fatal,
		Kind:     diag.Internal,
		Message:  stage + ": " + err.Error(),
		Pos:      r.File.Pos(),
		File:     r.Source.Path,
	})
	return core.WrapError(err, core.EINTERNAL, "broken document tree after %s", stage)
}

type resourceRef struct {
	name  string
	rtype locate.ResourceType
	at    node.Node
}

// CheckResources looks up all files a resolved document refers to and
// returns a warning for each one missing. Lookups run concurrently.
func CheckResources(ctx context.Context, file *node.FileNode, fsys fs.FS) diag.List {
	var refs []resourceRef
	collect := func(n node.Node) {
		switch x := n.(type) {
		case *node.PictureProcessedNode:
			refs = append(refs, resourceRef{x.Src, locate.ImageResource, x})
		case *node.PictureApplicationNode:
			refs = append(refs, resourceRef{x.Src, locate.ImageResource, x})
		case *node.CodeApplicationNode:
			refs = append(refs, resourceRef{path.Join(x.Directory, x.Filename), locate.SourceResource, x})
		}
	}
	node.Walk(file, func(n node.Node, _ int) bool {
		collect(n)
		if l, ok := n.(*node.ListingNode); ok {
			for _, item := range l.Items {
				node.Walk(item, func(m node.Node, _ int) bool {
					collect(m)
					return true
				})
			}
		}
		return true
	})
	promises := make([]locate.FilePromise, len(refs))
	for i, ref := range refs {
		if ref.name == "" || locate.IsRemote(ref.name) {
			continue
		}
		promises[i] = locate.ResolveFile(fsys, ref.name, ref.rtype)
	}
	var diags diag.List
	for i, p := range promises {
		if p == nil {
			continue
		}
		if _, err := p.Await(ctx); err != nil {
			diags.Addf(diag.Warning, diag.Macro, refs[i].at.Pos(), "%s", core.UserMessage(err))
		}
	}
	return diags.WithFile(file.Path)
}

package resolve

import (
	"errors"
	"strings"

	"github.com/npillmayer/mdtree/core"
	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/core/source"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"golang.org/x/text/language"
)

// Referential integrity errors. Resolve wraps them in coded errors.
var (
	ErrUndefinedEntity = errors.New("citation of an undefined label")
	ErrUnusedEntity    = errors.New("declared label is never cited")
)

type resolver struct {
	ctx       *Context
	keys      []*node.KeyNode
	amounts   []*node.AmountNode
	listings  map[node.Type][]*node.ListingNode
	diags     diag.List
	undefined int
	unused    int
	internal  error
}

// Resolve numbers all declarations of a document, resolves its citations,
// fills in counters and moves applications and references into their
// listings. If ctx is nil, a context for English is used.
//
// The returned error is nil or wraps ErrUndefinedEntity, ErrUnusedEntity
// (both, if both occur), or reports a broken tree with code core.EINTERNAL.
func Resolve(file *node.FileNode, ctx *Context) (diag.List, error) {
	if ctx == nil {
		ctx = NewContext(language.English)
	}
	r := &resolver{ctx: ctx, listings: make(map[node.Type][]*node.ListingNode)}
	node.Walk(file, func(n node.Node, _ int) bool {
		switch x := n.(type) {
		case node.Declaration:
			r.declare(x)
		case *node.KeyNode:
			r.keys = append(r.keys, x)
		case *node.AmountNode:
			r.amounts = append(r.amounts, x)
		case *node.ListingNode:
			r.listings[x.Kind] = append(r.listings[x.Kind], x)
		}
		return true
	})
	r.cite()
	r.checkUnused()
	for _, a := range r.amounts {
		a.Count = ctx.Count(a.Category())
	}
	r.list(node.AllApplications, node.ApplicationCategory)
	r.list(node.AllReferences, node.ReferenceCategory)
	tracer().Infof("resolved %s: %d diagnostics", file.Path, len(r.diags))
	return r.diags.WithFile(file.Path), r.err()
}

func (r *resolver) declare(d node.Declaration) {
	decl := d.Declaration()
	index, ok := r.ctx.declare(d)
	if !ok {
		r.diags.Addf(diag.Error, diag.Macro, labelPos(d), "%s label %q is already declared",
			d.Category(), decl.Label)
		return
	}
	decl.Index = index
	if d.Category() == node.ApplicationCategory {
		decl.Designation = Designation(index, r.ctx.Language)
	}
	tracer().Debugf("%s %q = %d", d.Category(), decl.Label, index)
}

func (r *resolver) cite() {
	for _, key := range r.keys {
		e, ok := r.ctx.lookup(key.Category(), key.Label)
		if !ok {
			r.undefined++
			r.diags.Addf(diag.Fatal, diag.Undefined, key.Pos(), "undefined %s label %q",
				key.Category(), key.Label)
			continue
		}
		e.used = true
		decl := e.decl.Declaration()
		key.Index = decl.Index
		key.Designation = decl.Designation
		key.Resolved = true
	}
}

func (r *resolver) checkUnused() {
	for _, cat := range node.Categories {
		for _, d := range r.ctx.unused(cat) {
			r.unused++
			r.diags.Addf(diag.Fatal, diag.Unused, labelPos(d), "%s %q is declared but never cited",
				cat, d.Declaration().Label)
		}
	}
}

// list detaches the declarations of a category from the tree and hands them
// to all listings of a kind. Without a listing, declarations stay in place.
func (r *resolver) list(kind node.Type, cat node.Category) {
	decls := r.ctx.Declarations(cat)
	if len(decls) == 0 {
		return
	}
	listings := r.listings[kind]
	if len(listings) == 0 {
		r.diags.Addf(diag.Warning, diag.Macro, labelPos(decls[0]), "%d %s(s) declared, but no %s listing",
			len(decls), cat, cat)
		return
	}
	for _, d := range decls {
		if err := detach(d); err != nil {
			r.diags.Addf(diag.Fatal, diag.Internal, d.Pos(), "%s", err.Error())
			r.internal = err
			return
		}
	}
	for _, l := range listings {
		l.Items = decls
	}
	for _, d := range decls {
		node.Adopt(listings[0], d)
	}
}

// detach removes a declaration from its container. A paragraph left blank
// is removed as well.
func detach(d node.Declaration) error {
	parent, ok := d.Parent().(node.Container)
	if !ok {
		return core.Error(core.EINTERNAL, "%s %q is not part of the tree", d.Type(), d.Declaration().Label)
	}
	i := node.IndexOf(parent, d)
	if i < 0 {
		return core.Error(core.EINTERNAL, "%s %q is not a child of its parent", d.Type(), d.Declaration().Label)
	}
	node.Detach(parent, i)
	if p, ok := parent.(*node.ParagraphNode); ok && isBlank(p) {
		if pp, ok := p.Parent().(node.Container); ok {
			node.Detach(pp, node.IndexOf(pp, p))
		}
	}
	return nil
}

func isBlank(p *node.ParagraphNode) bool {
	for _, ch := range p.Children() {
		t, ok := ch.(*node.TextNode)
		if !ok || strings.TrimSpace(t.Text) != "" {
			return false
		}
	}
	return true
}

func labelPos(d node.Declaration) source.Span {
	if pos := d.Declaration().LabelPos; !pos.Empty() {
		return pos
	}
	return d.Pos()
}

func (r *resolver) err() error {
	var errs []error
	if r.undefined > 0 {
		errs = append(errs, core.WrapError(ErrUndefinedEntity, core.EMISSING,
			"%d citation(s) of undefined labels", r.undefined))
	}
	if r.unused > 0 {
		errs = append(errs, core.WrapError(ErrUnusedEntity, core.EUNUSED,
			"%d declaration(s) never cited", r.unused))
	}
	if r.internal != nil {
		errs = append(errs, r.internal)
	}
	return errors.Join(errs...)
}

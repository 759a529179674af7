package macro

import (
	"strings"

	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/input/markdown/node"
)

// state is carried from one invocation to the next within a document.
type state struct {
	columns int      // columns of the next code application, 0 for default
	current *Command // command being applied
}

func (s *state) takeColumns() int {
	n := s.columns
	s.columns = 0
	if n < 1 {
		n = 1
	}
	return n
}

type applier struct {
	registry *Registry
	state    state
	diags    diag.List
}

// Apply replaces all macro invocations of a document in document order. If
// registry is nil, the built-in commands are used.
//
// A binding command consumes the next node after its invocation, skipping
// whitespace and leaving the paragraph the invocation is part of. The
// processed node takes the bound node's place. Paragraphs left empty are
// removed.
func Apply(file *node.FileNode, registry *Registry) diag.List {
	if registry == nil {
		registry = DefaultRegistry()
	}
	a := &applier{registry: registry}
	a.process(file)
	removeEmptyParagraphs(file)
	tracer().Infof("applied macros to %s, %d diagnostics", file.Path, len(a.diags))
	return a.diags.WithFile(file.Path)
}

func (a *applier) process(c node.Container) {
	for i := 0; i < len(c.Children()); i++ {
		ch := c.Children()[i]
		op, ok := ch.(*node.OpCodeNode)
		if !ok {
			if cc, ok := ch.(node.Container); ok {
				a.process(cc)
			}
			continue
		}
		replacement, bound := a.invoke(c, i, op)
		if bound {
			node.Detach(c, i)
			i--
			continue
		}
		node.Replace(c, i, replacement...)
		for _, r := range replacement {
			if rc, ok := r.(node.Container); ok {
				a.process(rc)
			}
		}
		i += len(replacement) - 1
	}
}

// invoke applies the command of an invocation at index i of c. For binding
// commands, the processed nodes are placed at the bound node's position and
// bound is true; the invocation itself has still to be removed.
func (a *applier) invoke(c node.Container, i int, op *node.OpCodeNode) ([]node.Node, bool) {
	cmd, ok := a.registry.Lookup(op.Name)
	if !ok {
		msg := "unknown macro !" + op.Name
		if s := a.registry.Suggest(op.Name); len(s) > 0 {
			msg += ", did you mean !" + strings.Join(s, ", !") + "?"
		}
		a.diags.Add(diag.New(diag.Error, diag.Macro, op.NamePos, "%s", msg))
		return nil, false
	}
	args, diags := ParseArguments(op, cmd.Args)
	a.diags.Add(diags...)
	if diags.Count(diag.Error) > 0 {
		return nil, false
	}
	a.state.current = cmd
	inv := &Invocation{Op: op, Args: args, state: &a.state, diags: &a.diags}
	if !cmd.binds() {
		return cmd.Callback(inv), false
	}
	bc, bi := nextSignificant(c, i)
	if bc == nil {
		a.diags.Addf(diag.Error, diag.Macro, op.Pos(), "macro !%s expects a following %s",
			op.Name, bindable(cmd))
		return nil, false
	}
	target := bc.Children()[bi]
	if !cmd.accepts(target) {
		a.diags.Addf(diag.Error, diag.Macro, op.Pos(), "macro !%s expects a following %s, found %s",
			op.Name, bindable(cmd), target.Type())
		return nil, false
	}
	node.Detach(bc, bi)
	inv.Bound = target
	replacement := cmd.Callback(inv)
	if len(replacement) == 0 {
		node.Insert(bc, bi, target) // declaration failed, the node stays where it was
	} else {
		node.Insert(bc, bi, replacement...)
	}
	return nil, true
}

func bindable(cmd *Command) string {
	if cmd.BindAny || len(cmd.Binds) == 0 {
		return "node"
	}
	names := make([]string, len(cmd.Binds))
	for k, t := range cmd.Binds {
		names[k] = t.String()
	}
	return strings.Join(names, " or ")
}

// nextSignificant finds the next non-blank sibling after index i of c. When
// c is a paragraph and holds nothing more, the search continues after the
// paragraph within its parent.
func nextSignificant(c node.Container, i int) (node.Container, int) {
	for {
		children := c.Children()
		for j := i + 1; j < len(children); j++ {
			if !isBlank(children[j]) {
				return c, j
			}
		}
		if c.Type() != node.Paragraph {
			return nil, -1
		}
		parent, ok := c.Parent().(node.Container)
		if !ok {
			return nil, -1
		}
		i = node.IndexOf(parent, c)
		c = parent
	}
}

func isBlank(n node.Node) bool {
	t, ok := n.(*node.TextNode)
	return ok && strings.TrimSpace(t.Text) == ""
}

// removeEmptyParagraphs deletes paragraphs holding whitespace only and trims
// whitespace at paragraph edges left over by removed invocations.
func removeEmptyParagraphs(root node.Container) {
	node.Walk(root, func(n node.Node, _ int) bool {
		c, ok := n.(node.Container)
		if !ok {
			return false
		}
		for i := 0; i < len(c.Children()); i++ {
			p, ok := c.Children()[i].(*node.ParagraphNode)
			if !ok {
				continue
			}
			for len(p.Children()) > 0 && isBlank(p.Children()[0]) {
				node.Detach(p, 0)
			}
			for k := len(p.Children()) - 1; k >= 0 && isBlank(p.Children()[k]); k-- {
				node.Detach(p, k)
			}
			if len(p.Children()) == 0 {
				node.Detach(c, i)
				i--
			}
		}
		return true
	})
}

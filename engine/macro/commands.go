package macro

import (
	"github.com/npillmayer/mdtree/input/markdown/node"
	"github.com/spf13/cast"
)

var labelArg = ArgInfo{Name: "label", Aliases: []string{"l"}, Type: Text}

func builtins() []*Command {
	return []*Command{
		{
			Name: "P",
			Args: []ArgInfo{
				labelArg,
				{Name: "height", Aliases: []string{"h"}, Type: Text, Optional: true},
			},
			Binds:    []node.Type{node.Image},
			Callback: picture,
		},
		{
			Name: "T",
			Args: []ArgInfo{
				labelArg,
				{Name: "name", Aliases: []string{"n"}, Type: NodeArray, Optional: true, OnlySpans: true},
				{Name: "width", Aliases: []string{"w"}, Type: Text, Optional: true},
				{Name: "height", Aliases: []string{"h"}, Type: Text, Optional: true},
			},
			Binds:    []node.Type{node.Table},
			Callback: table,
		},
		{
			Name: "C",
			Args: []ArgInfo{
				labelArg,
				{Name: "name", Aliases: []string{"n"}, Type: NodeArray, Optional: true, OnlySpans: true},
			},
			Binds:    []node.Type{node.Code},
			Callback: code,
		},
		keyCommand("PK", node.PictureKey),
		keyCommand("TK", node.TableKey),
		keyCommand("CK", node.CodeKey),
		keyCommand("AK", node.ApplicationKey),
		keyCommand("RK", node.ReferenceKey),
		amountCommand("PA", node.PictureAmount),
		amountCommand("TA", node.TableAmount),
		listingCommand("LAA", node.AllApplications),
		listingCommand("LAR", node.AllReferences),
		{
			Name: "AC",
			Args: []ArgInfo{
				labelArg,
				{Name: "directory", Aliases: []string{"dir"}, Type: Text},
				{Name: "filename", Aliases: []string{"file"}, Type: Text},
				{Name: "lang", Type: Text, Optional: true},
			},
			Callback: codeApplication,
		},
		{
			Name:     "ACC",
			Args:     []ArgInfo{{Name: "columns", Aliases: []string{"cols"}, Type: Text}},
			Callback: codeColumns,
		},
		pictureApplicationCommand("AP", false),
		pictureApplicationCommand("APR", true),
		{
			Name: "AR",
			Args: []ArgInfo{
				labelArg,
				{Name: "title", Type: NodeArray, Optional: true, OnlySpans: true},
			},
			BindAny:  true,
			Callback: rawApplication,
		},
		{
			Name:     "RR",
			Args:     []ArgInfo{labelArg},
			BindAny:  true,
			Callback: reference,
		},
	}
}

// declared checks and returns the label of a declaring invocation.
func declared(inv *Invocation) (node.Declared, bool) {
	label := inv.Text("label")
	if label == "" {
		inv.Errorf("macro !%s needs a label", inv.Op.Name)
		return node.Declared{}, false
	}
	return node.Declared{Label: label, LabelPos: inv.Pos("label")}, true
}

func picture(inv *Invocation) []node.Node {
	d, ok := declared(inv)
	if !ok {
		return nil
	}
	img := inv.Bound.(*node.ImageNode)
	p := &node.PictureProcessedNode{
		Declared: d,
		Name:     img.Children(),
		Src:      img.Src,
		Height:   inv.Size("height"),
	}
	node.SetPos(p, img.Pos())
	node.Adopt(p, p.Name...)
	return []node.Node{p}
}

func table(inv *Invocation) []node.Node {
	d, ok := declared(inv)
	if !ok {
		return nil
	}
	t := &node.TableProcessedNode{
		Declared: d,
		Name:     inv.Nodes("name"),
		Width:    inv.Size("width"),
		Height:   inv.Size("height"),
	}
	node.SetPos(t, inv.Bound.Pos())
	node.Append(t, inv.Bound)
	node.Adopt(t, t.Name...)
	return []node.Node{t}
}

func code(inv *Invocation) []node.Node {
	d, ok := declared(inv)
	if !ok {
		return nil
	}
	cb := inv.Bound.(*node.CodeNode)
	c := &node.CodeProcessedNode{
		Declared: d,
		Name:     inv.Nodes("name"),
		Lang:     cb.Lang,
		Text:     cb.Text,
	}
	node.SetPos(c, cb.Pos())
	node.Adopt(c, c.Name...)
	return []node.Node{c}
}

func keyCommand(name string, kind node.Type) *Command {
	return &Command{
		Name: name,
		Args: []ArgInfo{labelArg},
		Callback: func(inv *Invocation) []node.Node {
			label := inv.Text("label")
			if label == "" {
				inv.Errorf("macro !%s needs a label", inv.Op.Name)
				return nil
			}
			return []node.Node{node.NewKey(kind, label, inv.Op.Pos())}
		},
	}
}

func amountCommand(name string, kind node.Type) *Command {
	return &Command{
		Name: name,
		Callback: func(inv *Invocation) []node.Node {
			return []node.Node{node.NewAmount(kind, inv.Op.Pos())}
		},
	}
}

func listingCommand(name string, kind node.Type) *Command {
	return &Command{
		Name: name,
		Callback: func(inv *Invocation) []node.Node {
			return []node.Node{node.NewListing(kind, inv.Op.Pos())}
		},
	}
}

func codeApplication(inv *Invocation) []node.Node {
	d, ok := declared(inv)
	if !ok {
		return nil
	}
	a := &node.CodeApplicationNode{
		Declared:  d,
		Directory: inv.Text("directory"),
		Filename:  inv.Text("filename"),
		Lang:      inv.Text("lang"),
		Columns:   inv.state.takeColumns(),
	}
	node.SetPos(a, inv.Op.Pos())
	return []node.Node{a}
}

// codeColumns sets the number of columns for the next code application.
func codeColumns(inv *Invocation) []node.Node {
	n, err := cast.ToIntE(inv.Text("columns"))
	if err != nil || n < 1 {
		inv.Errorf("macro !%s needs a positive number of columns, have %q", inv.Op.Name,
			inv.Text("columns"))
		return nil
	}
	inv.state.columns = n
	return nil
}

func pictureApplicationCommand(name string, rotated bool) *Command {
	return &Command{
		Name: name,
		Args: []ArgInfo{
			labelArg,
			{Name: "title", Type: NodeArray, OnlySpans: true},
			{Name: "path", Aliases: []string{"src"}, Type: Text},
		},
		Callback: func(inv *Invocation) []node.Node {
			d, ok := declared(inv)
			if !ok {
				return nil
			}
			a := &node.PictureApplicationNode{
				Declared: d,
				Title:    inv.Nodes("title"),
				Src:      inv.Text("path"),
				Rotated:  rotated,
			}
			node.SetPos(a, inv.Op.Pos())
			node.Adopt(a, a.Title...)
			return []node.Node{a}
		},
	}
}

func rawApplication(inv *Invocation) []node.Node {
	d, ok := declared(inv)
	if !ok {
		return nil
	}
	a := &node.RawApplicationNode{Declared: d, Title: inv.Nodes("title")}
	node.SetPos(a, inv.Bound.Pos())
	node.Append(a, inv.Bound)
	node.Adopt(a, a.Title...)
	return []node.Node{a}
}

// reference takes the bound node as the reference's text. A code block
// contributes its verbatim content.
func reference(inv *Invocation) []node.Node {
	d, ok := declared(inv)
	if !ok {
		return nil
	}
	r := &node.ReferenceNode{Declared: d}
	node.SetPos(r, inv.Bound.Pos())
	if cb, ok := inv.Bound.(*node.CodeNode); ok {
		node.Append(r, node.NewText(cb.Text, cb.Pos()))
	} else {
		node.Append(r, inv.Bound)
	}
	return []node.Node{r}
}

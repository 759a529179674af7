package macro

import (
	"sort"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"github.com/npillmayer/mdtree/core/dimen"
	"github.com/npillmayer/mdtree/core/diag"
	"github.com/npillmayer/mdtree/core/source"
	"github.com/npillmayer/mdtree/input/markdown/node"
)

// Invocation is handed to a command's callback.
type Invocation struct {
	Op    *node.OpCodeNode
	Args  Args
	Bound node.Node // node bound to the invocation, nil for non-binding commands
	state *state
	diags *diag.List
}

// Callback produces the nodes replacing an invocation. Returning no nodes
// removes the invocation from the tree.
type Callback func(inv *Invocation) []node.Node

// Command is a named macro.
type Command struct {
	Name     string
	Args     []ArgInfo
	Binds    []node.Type // types of nodes the command binds to
	BindAny  bool        // binds to a node of any type
	Callback Callback
}

func (cmd *Command) binds() bool {
	return cmd.BindAny || len(cmd.Binds) > 0
}

func (cmd *Command) accepts(n node.Node) bool {
	if cmd.BindAny {
		return true
	}
	for _, t := range cmd.Binds {
		if n.Type() == t {
			return true
		}
	}
	return false
}

// Registry maps macro names to commands. Names are additionally kept in a
// trie to suggest corrections for misspelled macros.
type Registry struct {
	commands map[string]*Command
	names    *trie.Trie
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command), names: trie.New()}
}

// DefaultRegistry creates a registry with all built-in commands.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, cmd := range builtins() {
		r.Register(cmd)
	}
	return r
}

// Register adds a command, replacing a command of the same name.
// Commands whose names extend the replaced one are not affected.
func (r *Registry) Register(cmd *Command) {
	if _, ok := r.commands[cmd.Name]; !ok {
		r.names.Add(cmd.Name, nil)
	}
	r.commands[cmd.Name] = cmd
}

// Lookup finds a command by name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the names of all registered commands, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Suggest returns names of registered commands similar to an unknown name.
func (r *Registry) Suggest(name string) []string {
	names := r.names.FuzzySearch(name)
	if len(names) == 0 && name != "" {
		_, size := utf8.DecodeRuneInString(name)
		names = r.names.PrefixSearch(name[:size])
	}
	sort.Strings(names)
	return names
}

// Text returns a text argument. A missing required argument at this point
// is a command defect, not a user error, and is reported as such.
func (inv *Invocation) Text(name string) string {
	if v, ok := inv.Args[name]; ok {
		return v.Text
	}
	inv.requireOptional(name)
	return ""
}

// Size returns a text argument denoting a dimension or percentage. Values
// which do not parse are kept, with a warning.
func (inv *Invocation) Size(name string) string {
	txt := inv.Text(name)
	if txt == "" {
		return ""
	}
	if _, err := dimen.ParseDimen(txt); err != nil {
		inv.diags.Addf(diag.Warning, diag.Arguments, inv.Pos(name), "argument %s: %v", name, err)
	}
	return txt
}

// Nodes returns the nodes of an argument.
func (inv *Invocation) Nodes(name string) []node.Node {
	if v, ok := inv.Args[name]; ok {
		return v.Nodes
	}
	inv.requireOptional(name)
	return nil
}

// Pos returns the range of an argument, or of the invocation if the argument
// is missing.
func (inv *Invocation) Pos(name string) source.Span {
	if v, ok := inv.Args[name]; ok {
		return v.Pos
	}
	return inv.Op.Pos()
}

// Errorf reports a user error at the invocation.
func (inv *Invocation) Errorf(format string, args ...interface{}) {
	inv.diags.Addf(diag.Error, diag.Macro, inv.Op.Pos(), format, args...)
}

func (inv *Invocation) requireOptional(name string) {
	cmd := inv.state.current
	for _, info := range cmd.Args {
		if info.Name == name && info.Optional {
			return
		}
	}
	inv.diags.Addf(diag.Fatal, diag.Internal, inv.Op.Pos(),
		"macro %s: argument '%s' is neither optional nor present", cmd.Name, name)
}

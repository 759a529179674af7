package resolve

import (
	"strconv"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/mdtree/input/markdown/node"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Context holds the declarations of a document, per category and in
// declaration order. A context is used for a single document.
type Context struct {
	Language language.Tag // selects the alphabet of application designations
	entities map[node.Category]*linkedhashmap.Map
}

// entity is the state of a declared label.
type entity struct {
	decl node.Declaration
	used bool
}

// NewContext creates an empty context.
func NewContext(lang language.Tag) *Context {
	ctx := &Context{
		Language: lang,
		entities: make(map[node.Category]*linkedhashmap.Map, len(node.Categories)),
	}
	for _, cat := range node.Categories {
		ctx.entities[cat] = linkedhashmap.New()
	}
	return ctx
}

// NormalizeLabel returns the form under which labels are compared.
func NormalizeLabel(label string) string {
	return norm.NFC.String(strings.TrimSpace(label))
}

// declare enters a declaration and returns its 1-based index, or false if
// the label is already declared in the category.
func (ctx *Context) declare(d node.Declaration) (int, bool) {
	m := ctx.entities[d.Category()]
	label := NormalizeLabel(d.Declaration().Label)
	if _, found := m.Get(label); found {
		return 0, false
	}
	m.Put(label, &entity{decl: d})
	return m.Size(), true
}

// lookup finds a declaration by category and label.
func (ctx *Context) lookup(cat node.Category, label string) (*entity, bool) {
	v, found := ctx.entities[cat].Get(NormalizeLabel(label))
	if !found {
		return nil, false
	}
	return v.(*entity), true
}

// Count returns the number of declarations of a category.
func (ctx *Context) Count(cat node.Category) int {
	return ctx.entities[cat].Size()
}

// Declarations returns the declarations of a category in declaration order.
func (ctx *Context) Declarations(cat node.Category) []node.Declaration {
	values := ctx.entities[cat].Values()
	decls := make([]node.Declaration, len(values))
	for i, v := range values {
		decls[i] = v.(*entity).decl
	}
	return decls
}

func (ctx *Context) unused(cat node.Category) []node.Declaration {
	var decls []node.Declaration
	it := ctx.entities[cat].Iterator()
	for it.Next() {
		if e := it.Value().(*entity); !e.used {
			decls = append(decls, e.decl)
		}
	}
	return decls
}

// Application designations skip letters which are easily confused with
// digits or other letters.
var (
	cyrillicLetters = []rune("АБВГДЕЖИКЛМНПРСТУФХЦШЩЭЮЯ")
	latinLetters    = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ")
)

var designationMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
	language.Ukrainian,
	language.Bulgarian,
})

// Designation returns the letter designation of the application with a given
// 1-based index. Indices beyond the alphabet get a numeric suffix.
func Designation(index int, lang language.Tag) string {
	if index < 1 {
		return ""
	}
	letters := latinLetters
	if _, i, conf := designationMatcher.Match(lang); conf != language.No && i > 0 {
		letters = cyrillicLetters
	}
	n := len(letters)
	d := string(letters[(index-1)%n])
	if round := (index - 1) / n; round > 0 {
		d += strconv.Itoa(round)
	}
	return d
}

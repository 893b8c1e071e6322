package codegen

import (
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/imports"

	"github.com/usestring/typegen-mcp/pkg/naming"
	"github.com/usestring/typegen-mcp/pkg/typegraph"
)

// Formatter formats generated Go code.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

type goimportsFormatter struct{}

// NewGoimportsFormatter creates a formatter backed by goimports. Imports are
// written by the template, so only formatting is applied.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
}

// goReserved lists the Go keywords and predeclared identifiers. A root name
// is caller-supplied and may be lower-case, so any of them could otherwise be
// declared as a type.
var goReserved = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type", "var",

	"any", "bool", "byte", "comparable", "complex64", "complex128", "error",
	"float32", "float64", "int", "int8", "int16", "int32", "int64", "rune",
	"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",

	"true", "false", "iota", "nil",

	"append", "cap", "clear", "close", "complex", "copy", "delete", "imag",
	"len", "make", "max", "min", "new", "panic", "print", "println", "real", "recover",
}

type goRenderer struct {
	opts Options
}

type goFile struct {
	Package string
	Imports []string
	Alias   *goAlias
	Structs []goStruct
}

type goAlias struct {
	Name string
	Type string
}

type goStruct struct {
	Name   string
	Fields []goField
}

type goField struct {
	Name string
	Type string
	Tag  string
}

func (r *goRenderer) Target() Target { return TargetGo }

// ReservedNames returns the Go keywords and predeclared identifiers plus the
// name the untyped package is imported under.
func (r *goRenderer) ReservedNames() []string {
	return append(slices.Clone(goReserved), path.Base(r.opts.GoUntypedImport))
}

func (r *goRenderer) Render(g *typegraph.Graph) ([]byte, error) {
	untypedPkg := path.Base(r.opts.GoUntypedImport)
	file := goFile{Package: r.opts.GoPackage}
	if g.UsesUntyped() {
		file.Imports = append(file.Imports, r.opts.GoUntypedImport)
	}

	if g.NeedsAlias() {
		file.Alias = &goAlias{Name: string(g.RootName), Type: goType(g.Root, untypedPkg)}
	}
	for _, c := range g.Classes {
		file.Structs = append(file.Structs, goStructOf(c, untypedPkg))
	}

	src, err := execute("go.go.tmpl", file)
	if err != nil {
		return nil, err
	}
	formatted, err := r.opts.Formatter.Format(strings.ToLower(string(g.RootName))+".go", []byte(src))
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return formatted, nil
}

func goStructOf(c *typegraph.Class, untypedPkg string) goStruct {
	s := goStruct{Name: string(c.Name())}
	taken := naming.NewSet[string]()
	for _, p := range c.Properties() {
		name := naming.Unique(goFieldName(p.Name), taken)
		field := goField{Name: name, Type: goType(p.Type, untypedPkg)}
		if p.JSONName != name {
			field.Tag = goTag(p.JSONName)
		}
		s.Fields = append(s.Fields, field)
	}
	return s
}

// goFieldName exports a property name. Names starting with a rune that has no
// upper-case form get an "X" prefix so encoding/json can see the field.
func goFieldName(p naming.PropertyName) string {
	name := naming.Exported(string(p))
	r, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(r) {
		name = "X" + name
	}
	return name
}

// goTag returns the struct tag for key. The key "-" needs a trailing comma,
// since a bare `json:"-"` tells encoding/json to skip the field.
func goTag(key string) string {
	name := key
	if key == "-" {
		name = "-,"
	}
	tag := "json:" + strconv.Quote(name)
	if strings.ContainsRune(tag, '`') {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}

func goType(t typegraph.Type, untypedPkg string) string {
	var base string
	switch t := t.(type) {
	case typegraph.Primitive:
		base = goPrimitive(t.Kind)
	case typegraph.ClassRef:
		base = string(t.Class.Name())
	case typegraph.ListOf:
		// A nil slice already represents null.
		return "[]" + goType(t.Elem, untypedPkg)
	default:
		base = untypedPkg + ".Value"
	}
	if t.Nullable() {
		return "*" + base
	}
	return base
}

func goPrimitive(kind typegraph.PrimitiveKind) string {
	switch kind {
	case typegraph.Int:
		return "int"
	case typegraph.Long:
		return "int64"
	case typegraph.Double:
		return "float64"
	case typegraph.Bool:
		return "bool"
	default:
		return "string"
	}
}

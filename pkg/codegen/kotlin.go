package codegen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/usestring/typegen-mcp/pkg/typegraph"
)

const (
	kotlinSerializable = "kotlinx.serialization.Serializable"
	kotlinSerialName   = "kotlinx.serialization.SerialName"
)

var kotlinReserved = []string{
	"Any", "Boolean", "Double", "Int", "List", "Long", "String",
	"SerialName", "Serializable", "UntypedAny", "UntypedAnyNotNull",
}

// kotlinKeywords are the hard keywords, which need back-quotes as identifiers.
var kotlinKeywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true,
	"else": true, "false": true, "for": true, "fun": true, "if": true,
	"in": true, "interface": true, "is": true, "null": true, "object": true,
	"package": true, "return": true, "super": true, "this": true, "throw": true,
	"true": true, "try": true, "typealias": true, "typeof": true, "val": true,
	"var": true, "when": true, "while": true,
}

// kotlinRenderer emits kotlinx.serialization data classes.
type kotlinRenderer struct {
	opts Options
}

type kotlinAlias struct {
	Name string
	Type string
}

type kotlinClass struct {
	Name       string
	Properties []kotlinProperty
}

type kotlinProperty struct {
	Name       string
	Type       string
	SerialName string // set when the JSON key differs from Name
}

func (r *kotlinRenderer) Target() Target { return TargetKotlin }

func (r *kotlinRenderer) ReservedNames() []string { return slices.Clone(kotlinReserved) }

func (r *kotlinRenderer) Render(g *typegraph.Graph) ([]byte, error) {
	used := make(map[string]bool)
	var decls []string

	if g.NeedsAlias() {
		alias, err := execute("kotlin.alias", kotlinAlias{
			Name: kotlinIdentifier(string(g.RootName)),
			Type: r.typeName(g.Root, used),
		})
		if err != nil {
			return nil, err
		}
		decls = append(decls, alias)
	}

	for _, c := range g.Classes {
		kc := kotlinClass{Name: kotlinIdentifier(string(c.Name()))}
		for _, p := range c.Properties() {
			prop := kotlinProperty{
				Name: kotlinIdentifier(string(p.Name)),
				Type: r.typeName(p.Type, used),
			}
			if p.JSONName != string(p.Name) {
				prop.SerialName = p.JSONName
				used[kotlinSerialName] = true
			}
			kc.Properties = append(kc.Properties, prop)
		}
		used[kotlinSerializable] = true

		decl, err := execute("kotlin.class", kc)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}

	var b strings.Builder
	if len(used) > 0 {
		imports := make([]string, 0, len(used))
		for imp := range used {
			imports = append(imports, imp)
		}
		slices.Sort(imports)
		for _, imp := range imports {
			fmt.Fprintf(&b, "import %s\n", imp)
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(decls, "\n\n"))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// typeName renders t and records the imports it needs in used.
func (r *kotlinRenderer) typeName(t typegraph.Type, used map[string]bool) string {
	var base string
	switch t := t.(type) {
	case typegraph.Primitive:
		base = kotlinPrimitive(t.Kind)
	case typegraph.ClassRef:
		base = kotlinIdentifier(string(t.Class.Name()))
	case typegraph.ListOf:
		base = "List<" + r.typeName(t.Elem, used) + ">"
	default:
		if !t.Nullable() {
			used[r.opts.KotlinUntypedPackage+".UntypedAnyNotNull"] = true
			return "UntypedAnyNotNull"
		}
		used[r.opts.KotlinUntypedPackage+".UntypedAny"] = true
		return "UntypedAny?"
	}
	if t.Nullable() {
		return base + "?"
	}
	return base
}

func kotlinPrimitive(kind typegraph.PrimitiveKind) string {
	switch kind {
	case typegraph.Int:
		return "Int"
	case typegraph.Long:
		return "Long"
	case typegraph.Double:
		return "Double"
	case typegraph.Bool:
		return "Boolean"
	default:
		return "String"
	}
}

// kotlinIdentifier back-quotes hard keywords. It applies to property and
// type names alike, since a caller-supplied root name may be "object".
func kotlinIdentifier(name string) string {
	if kotlinKeywords[name] {
		return "`" + name + "`"
	}
	return name
}

// kotlinString quotes s as a Kotlin string literal.
func kotlinString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '$':
			b.WriteString(`\$`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

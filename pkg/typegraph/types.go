// Package typegraph models structural types inferred from JSON samples and
// normalizes the graph they form.
//
// A Type is an immutable value. Classes are shared by pointer: the same *Class
// may be referenced from many places once deduplication has run, so every pass
// that rewrites the graph keys its bookkeeping by pointer identity, never by
// structural content.
package typegraph

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"

	"github.com/usestring/typegen-mcp/pkg/naming"
)

// PrimitiveKind enumerates the scalar kinds. Numeric kinds are ordered by
// width so that the widest observed kind can be picked with a comparison.
type PrimitiveKind uint8

const (
	Int    PrimitiveKind = iota // fits a signed 32-bit integer
	Long                        // fits a signed 64-bit integer
	Double                      // any other number
	Bool
	String
)

func (k PrimitiveKind) String() string {
	switch k {
	case Int:
		return "int"
	case Long:
		return "long"
	case Double:
		return "double"
	case Bool:
		return "bool"
	case String:
		return "string"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", uint8(k))
	}
}

// IsNumeric reports whether k is Int, Long or Double.
func (k PrimitiveKind) IsNumeric() bool { return k <= Double }

// Type is one of Primitive, ClassRef, ListOf or Untyped.
type Type interface {
	Nullable() bool
	// WithNullable returns a copy of the type with the nullable flag set to n.
	WithNullable(n bool) Type
	// String renders the type in a neutral notation, e.g. "list<Item>?".
	String() string

	sealed()
}

// Primitive is a scalar type.
type Primitive struct {
	Kind       PrimitiveKind
	IsNullable bool
}

// ClassRef references a class.
type ClassRef struct {
	Class      *Class
	IsNullable bool
}

// ListOf is a homogeneous list.
type ListOf struct {
	Elem       Type
	IsNullable bool
}

// Untyped stands for values whose shape could not be pinned to one static type.
type Untyped struct {
	IsNullable bool
}

func (t Primitive) Nullable() bool { return t.IsNullable }
func (t ClassRef) Nullable() bool  { return t.IsNullable }
func (t ListOf) Nullable() bool    { return t.IsNullable }
func (t Untyped) Nullable() bool   { return t.IsNullable }

func (t Primitive) WithNullable(n bool) Type { t.IsNullable = n; return t }
func (t ClassRef) WithNullable(n bool) Type  { t.IsNullable = n; return t }
func (t ListOf) WithNullable(n bool) Type    { t.IsNullable = n; return t }
func (t Untyped) WithNullable(n bool) Type   { t.IsNullable = n; return t }

func (t Primitive) String() string { return nullableSuffix(t.Kind.String(), t.IsNullable) }
func (t ClassRef) String() string  { return nullableSuffix(string(t.Class.Name()), t.IsNullable) }
func (t ListOf) String() string {
	return nullableSuffix("list<"+t.Elem.String()+">", t.IsNullable)
}
func (t Untyped) String() string { return nullableSuffix("untyped", t.IsNullable) }

func (Primitive) sealed() {}
func (ClassRef) sealed()  {}
func (ListOf) sealed()    {}
func (Untyped) sealed()   {}

func nullableSuffix(s string, nullable bool) string {
	if nullable {
		return s + "?"
	}
	return s
}

// Property is one field of a class.
type Property struct {
	JSONName string              // key in the source JSON
	Name     naming.PropertyName // generated identifier, unique within the class
	Type     Type
}

// Class is a named record type. Classes are immutable; passes that rename or
// replace a class build a new one with NewClass.
type Class struct {
	name  naming.TypeName
	props []Property
	hash  uint64
}

// NewClass builds a class and computes its structural hash.
// props must not be modified afterwards.
func NewClass(name naming.TypeName, props []Property) *Class {
	c := &Class{name: name, props: props}
	h := xxh3.New()
	_, _ = h.WriteString(string(name))
	var buf []byte
	for _, p := range props {
		buf = appendString(buf[:0], p.JSONName)
		buf = appendString(buf, string(p.Name))
		buf = appendType(buf, p.Type)
		_, _ = h.Write(buf)
	}
	c.hash = h.Sum64()
	return c
}

// Name returns the class name.
func (c *Class) Name() naming.TypeName { return c.name }

// Properties returns the properties in declaration order. The slice is shared
// and must not be modified.
func (c *Class) Properties() []Property { return c.props }

// Hash returns the structural hash computed at construction.
func (c *Class) Hash() uint64 { return c.hash }

func (c *Class) String() string { return string(c.name) }

const (
	tagPrimitive byte = iota + 1
	tagClass
	tagList
	tagUntyped
)

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// appendType encodes t for hashing. Referenced classes contribute their own
// cached hash, so hashing a class never walks deeper than its properties.
func appendType(buf []byte, t Type) []byte {
	nullable := byte(0)
	if t.Nullable() {
		nullable = 1
	}
	switch t := t.(type) {
	case Primitive:
		return append(buf, tagPrimitive, byte(t.Kind), nullable)
	case ClassRef:
		buf = append(buf, tagClass, nullable)
		return binary.LittleEndian.AppendUint64(buf, t.Class.hash)
	case ListOf:
		buf = append(buf, tagList, nullable)
		return appendType(buf, t.Elem)
	default:
		return append(buf, tagUntyped, nullable)
	}
}

// Equal reports deep structural equality: same name and pairwise equal
// properties, recursively.
func Equal(a, b *Class) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.hash != b.hash || a.name != b.name || len(a.props) != len(b.props) {
		return false
	}
	for i := range a.props {
		pa, pb := a.props[i], b.props[i]
		if pa.JSONName != pb.JSONName || pa.Name != pb.Name || !TypesEqual(pa.Type, pb.Type) {
			return false
		}
	}
	return true
}

// TypesEqual reports structural equality of two types.
func TypesEqual(a, b Type) bool {
	if a.Nullable() != b.Nullable() {
		return false
	}
	switch a := a.(type) {
	case Primitive:
		b, ok := b.(Primitive)
		return ok && a.Kind == b.Kind
	case ClassRef:
		b, ok := b.(ClassRef)
		return ok && Equal(a.Class, b.Class)
	case ListOf:
		b, ok := b.(ListOf)
		return ok && TypesEqual(a.Elem, b.Elem)
	case Untyped:
		_, ok := b.(Untyped)
		return ok
	default:
		return false
	}
}

// Graph is a normalized type graph ready for rendering.
type Graph struct {
	RootName naming.TypeName
	Root     Type
	// Classes holds every reachable class in depth-first discovery order.
	Classes []*Class
}

// NeedsAlias reports whether the root must be declared as an alias named
// RootName, which is the case unless the root is a class already carrying it.
func (g *Graph) NeedsAlias() bool {
	ref, ok := g.Root.(ClassRef)
	return !ok || ref.Class.Name() != g.RootName
}

// Class looks up a reachable class by name.
func (g *Graph) Class(name naming.TypeName) (*Class, bool) {
	for _, c := range g.Classes {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// UsesUntyped reports whether any reachable type is Untyped.
func (g *Graph) UsesUntyped() bool {
	if containsUntyped(g.Root) {
		return true
	}
	for _, c := range g.Classes {
		for _, p := range c.Properties() {
			if containsUntyped(p.Type) {
				return true
			}
		}
	}
	return false
}

func containsUntyped(t Type) bool {
	switch t := t.(type) {
	case Untyped:
		return true
	case ListOf:
		return containsUntyped(t.Elem)
	default:
		return false
	}
}

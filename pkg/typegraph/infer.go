package typegraph

import (
	"strconv"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/naming"
)

// Infer merges samples believed to describe the same logical value into one
// type. name is the candidate name for a class built from object samples and
// parent is the enclosing class name ("" at the top level), used when naming
// list elements.
//
// Shapes that cannot be reconciled (objects mixed with arrays, or either mixed
// with primitives) become Untyped. Inference never fails.
func Infer(name naming.TypeName, samples []jsontree.Value, parent naming.TypeName) Type {
	var hasNull, hasPrimitive, hasArray, hasObject bool
	for _, s := range samples {
		switch s.Kind() {
		case jsontree.KindNull:
			hasNull = true
		case jsontree.KindArray:
			hasArray = true
		case jsontree.KindObject:
			hasObject = true
		default:
			hasPrimitive = true
		}
	}

	switch {
	case !hasObject && !hasArray:
		return inferPrimitive(samples)
	case hasObject && !hasArray && !hasPrimitive:
		return ClassRef{Class: mergeObjects(name, samples), IsNullable: hasNull}
	case hasArray && !hasObject && !hasPrimitive:
		var elems []jsontree.Value
		for _, s := range samples {
			elems = append(elems, s.Items()...)
		}
		return ListOf{
			Elem:       Infer(naming.Singularize(name, parent), elems, parent),
			IsNullable: hasNull,
		}
	default:
		return Untyped{IsNullable: hasNull}
	}
}

// InferRoot infers the top-level type of a sample corpus. When the samples
// are not all objects the root name is passed as parent context, so a list
// root named "Class" gets "ClassItem" elements rather than elements that would
// collide with the alias.
func InferRoot(rootName naming.TypeName, samples []jsontree.Value) Type {
	parent := rootName
	if allObjects(samples) {
		parent = ""
	}
	return Infer(rootName, samples, parent)
}

func allObjects(samples []jsontree.Value) bool {
	if len(samples) == 0 {
		return false
	}
	for _, s := range samples {
		if s.Kind() != jsontree.KindObject {
			return false
		}
	}
	return true
}

func inferPrimitive(samples []jsontree.Value) Type {
	var hasNull, hasString, hasBool, hasNumber bool
	widest := Int
	for _, s := range samples {
		switch s.Kind() {
		case jsontree.KindNull:
			hasNull = true
		case jsontree.KindString:
			hasString = true
		case jsontree.KindBool:
			hasBool = true
		case jsontree.KindNumber:
			hasNumber = true
			widest = max(widest, numberKind(s.Text()))
		}
	}

	switch {
	case !hasString && !hasBool && !hasNumber:
		return Untyped{IsNullable: true}
	case hasString && !hasBool && !hasNumber:
		return Primitive{Kind: String, IsNullable: hasNull}
	case hasBool && !hasString && !hasNumber:
		return Primitive{Kind: Bool, IsNullable: hasNull}
	case hasNumber && !hasString && !hasBool:
		return Primitive{Kind: widest, IsNullable: hasNull}
	default:
		return Untyped{IsNullable: hasNull}
	}
}

func numberKind(literal string) PrimitiveKind {
	if _, err := strconv.ParseInt(literal, 10, 32); err == nil {
		return Int
	}
	if _, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return Long
	}
	return Double
}

// keyGroup collects every value observed for one key. Object keys are
// unique, so len(values) is the number of objects carrying the key.
type keyGroup struct {
	key    string
	values []jsontree.Value
}

// mergeObjects builds one class from the object samples; null samples are
// ignored here and only affect the nullability of the reference.
func mergeObjects(name naming.TypeName, samples []jsontree.Value) *Class {
	var groups []*keyGroup
	byKey := make(map[string]*keyGroup)
	objects := 0
	for _, s := range samples {
		if s.Kind() != jsontree.KindObject {
			continue
		}
		for _, m := range s.Members() {
			g, ok := byKey[m.Key]
			if !ok {
				g = &keyGroup{key: m.Key}
				byKey[m.Key] = g
				groups = append(groups, g)
			}
			g.values = append(g.values, m.Value)
		}
		objects++
	}

	taken := naming.NewSet[naming.PropertyName]()
	props := make([]Property, 0, len(groups))
	for _, g := range groups {
		typeName := naming.JSONKeyToTypeName(g.key)
		t := Infer(typeName, g.values, name)
		if len(g.values) < objects {
			t = t.WithNullable(true)
		}
		props = append(props, Property{
			JSONName: g.key,
			Name:     naming.Unique(naming.TypeNameToPropertyName(typeName), taken),
			Type:     t,
		})
	}
	return NewClass(name, props)
}

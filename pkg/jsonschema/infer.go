// Package jsonschema renders a normalized type graph as a JSON Schema
// document (Draft 2020-12) and computes per-field statistics over the samples
// the graph was inferred from.
package jsonschema

import (
	"github.com/invopop/jsonschema"

	"github.com/usestring/typegen-mcp/pkg/typegraph"
)

// DefsPrefix is the JSON pointer prefix of class definitions.
const DefsPrefix = "#/$defs/"

// FromGraph builds a schema document for g. Every class becomes an entry in
// $defs and is referenced by name; the root type is described at the top
// level. Non-nullable properties are required; nullable ones may be absent
// or null.
func FromGraph(g *typegraph.Graph) *jsonschema.Schema {
	doc := typeSchema(g.Root)
	doc.Version = jsonschema.Version
	doc.Title = string(g.RootName)

	if len(g.Classes) > 0 {
		doc.Definitions = make(jsonschema.Definitions, len(g.Classes))
		for _, c := range g.Classes {
			doc.Definitions[string(c.Name())] = classSchema(c)
		}
	}
	return doc
}

func classSchema(c *typegraph.Class) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}
	for _, p := range c.Properties() {
		schema.Properties.Set(p.JSONName, typeSchema(p.Type))
		if !p.Type.Nullable() {
			schema.Required = append(schema.Required, p.JSONName)
		}
	}
	return schema
}

func typeSchema(t typegraph.Type) *jsonschema.Schema {
	var schema *jsonschema.Schema
	switch t := t.(type) {
	case typegraph.Primitive:
		schema = primitiveSchema(t.Kind)
	case typegraph.ClassRef:
		schema = &jsonschema.Schema{Ref: DefsPrefix + string(t.Class.Name())}
	case typegraph.ListOf:
		schema = &jsonschema.Schema{Type: "array", Items: typeSchema(t.Elem)}
	case typegraph.Untyped:
		// Matches anything, null included, unless the value is required to be present.
		if t.Nullable() {
			return &jsonschema.Schema{}
		}
		return &jsonschema.Schema{Not: &jsonschema.Schema{Type: "null"}}
	default:
		return &jsonschema.Schema{}
	}

	if t.Nullable() {
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{schema, {Type: "null"}}}
	}
	return schema
}

func primitiveSchema(kind typegraph.PrimitiveKind) *jsonschema.Schema {
	switch kind {
	case typegraph.Int:
		return &jsonschema.Schema{Type: "integer", Format: "int32"}
	case typegraph.Long:
		return &jsonschema.Schema{Type: "integer", Format: "int64"}
	case typegraph.Double:
		return &jsonschema.Schema{Type: "number"}
	case typegraph.Bool:
		return &jsonschema.Schema{Type: "boolean"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}

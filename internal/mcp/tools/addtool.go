package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
)

// AddTool registers a tool after checking its output type with
// CheckOutputSchema. It panics on a type the SDK would reject at call time.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// opaqueJSONTypes marshal as arbitrary JSON, but the schema inferred from
// their Go type describes something else (an array of bytes, an object
// without properties). Output types carry such values as any instead.
var opaqueJSONTypes = map[reflect.Type]string{
	reflect.TypeFor[json.RawMessage](): "json.RawMessage",
	reflect.TypeFor[jsontree.Value]():  "jsontree.Value",
}

// CheckOutputSchema panics unless the zero value of T validates against the
// schema the SDK infers for T, and T holds no opaque JSON fields.
//
// encoding/json writes a nil slice as null while the schema says "array",
// so slice fields need omitzero or a non-nil default.
//
// The untyped "any" output is not checked, and neither is a type whose
// schema cannot be inferred; the SDK reports those itself.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	w := &opaqueWalker{visiting: make(map[reflect.Type]bool)}
	w.walk(rt, nil)
	if len(w.found) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s holds opaque JSON at %s\n"+
				"  the inferred schema would not match the marshaled value\n"+
				"  Fix: declare the field as any and fill it with types.ToAny or Value.ToAny",
			toolName, rt, strings.Join(w.found, ", "),
		))
	}

	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return
	}
	var instance map[string]any
	if err := json.Unmarshal(data, &instance); err != nil {
		return
	}

	if err := resolved.Validate(&instance); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails schema validation: %v\n"+
				"  JSON: %s\n"+
				"  Fix: add `omitzero` to slice fields that default to nil, or initialize them",
			toolName, rt, err, data,
		))
	}
}

// opaqueWalker records the field paths of opaque JSON types reachable from
// a type. visiting guards against recursive types.
type opaqueWalker struct {
	visiting map[reflect.Type]bool
	found    []string
}

func (w *opaqueWalker) walk(t reflect.Type, path []string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name, ok := opaqueJSONTypes[t]; ok {
		w.found = append(w.found, fmt.Sprintf("%s (%s)", strings.Join(path, "."), name))
		return
	}
	if w.visiting[t] {
		return
	}
	w.visiting[t] = true
	defer delete(w.visiting, t)

	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() || f.Tag.Get("json") == "-" {
				continue
			}
			w.walk(f.Type, append(path[:len(path):len(path)], f.Name))
		}
	case reflect.Slice, reflect.Array:
		w.walk(t.Elem(), append(path[:len(path):len(path)], "[]"))
	case reflect.Map:
		w.walk(t.Elem(), append(path[:len(path):len(path)], "[value]"))
	}
}

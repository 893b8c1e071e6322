package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGraph_ClassRoot(t *testing.T) {
	g, _ := buildGraph(t, `{"id": 1, "name": "x", "score": 1.5, "big": 3000000000, "ok": true}`)
	doc := FromGraph(g)

	assert.Equal(t, jsonschema.Version, doc.Version)
	assert.Equal(t, "Response", doc.Title)
	assert.Equal(t, DefsPrefix+"Response", doc.Ref)

	def := doc.Definitions["Response"]
	require.NotNil(t, def)
	assert.Equal(t, "object", def.Type)
	assert.Equal(t, []string{"id", "name", "score", "big", "ok"}, def.Required)

	id, _ := def.Properties.Get("id")
	assert.Equal(t, "integer", id.Type)
	assert.Equal(t, "int32", id.Format)

	big, _ := def.Properties.Get("big")
	assert.Equal(t, "int64", big.Format)

	score, _ := def.Properties.Get("score")
	assert.Equal(t, "number", score.Type)

	ok, _ := def.Properties.Get("ok")
	assert.Equal(t, "boolean", ok.Type)
}

func TestFromGraph_PropertyOrderFollowsClass(t *testing.T) {
	g, _ := buildGraph(t, `{"zeta": 1, "alpha": 2, "mid": 3}`)
	def := FromGraph(g).Definitions["Response"]

	var keys []string
	for pair := def.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

func TestFromGraph_NullableAndMissing(t *testing.T) {
	g, _ := buildGraph(t, `{"a": 1, "b": null, "c": {"x": 1}}`, `{"a": null}`)
	def := FromGraph(g).Definitions["Response"]

	assert.Empty(t, def.Required)

	a, _ := def.Properties.Get("a")
	require.Len(t, a.AnyOf, 2)
	assert.Equal(t, "integer", a.AnyOf[0].Type)
	assert.Equal(t, "null", a.AnyOf[1].Type)

	b, _ := def.Properties.Get("b")
	assert.Equal(t, &jsonschema.Schema{}, b)

	c, _ := def.Properties.Get("c")
	require.Len(t, c.AnyOf, 2)
	assert.Equal(t, DefsPrefix+"C", c.AnyOf[0].Ref)
}

func TestFromGraph_ListRoot(t *testing.T) {
	g, _ := buildGraph(t, `[{"c": 1}, {"c": 2}]`)
	doc := FromGraph(g)

	assert.Equal(t, "array", doc.Type)
	require.NotNil(t, doc.Items)
	assert.Equal(t, DefsPrefix+"ResponseItem", doc.Items.Ref)
	assert.Contains(t, doc.Definitions, "ResponseItem")
}

func TestFromGraph_ScalarRootHasNoDefinitions(t *testing.T) {
	g, _ := buildGraph(t, `12`)
	doc := FromGraph(g)

	assert.Equal(t, "integer", doc.Type)
	assert.Nil(t, doc.Definitions)
}

func TestFromGraph_UntypedRequiresPresence(t *testing.T) {
	g, _ := buildGraph(t, `{"v": [1, "a"]}`)
	def := FromGraph(g).Definitions["Response"]

	v, _ := def.Properties.Get("v")
	require.NotNil(t, v.Items)
	require.NotNil(t, v.Items.Not)
	assert.Equal(t, "null", v.Items.Not.Type)
}

func TestFromGraph_MarshalsToJSON(t *testing.T) {
	g, _ := buildGraph(t, `{"links": {"a": "a"}, "b1": {"links": {}}}`)

	data, err := json.Marshal(FromGraph(g))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "#/$defs/Response", decoded["$ref"])
	defs, ok := decoded["$defs"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, defs, 4)
}

package jsoncompact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
)

func compactJSON(t *testing.T, input string, opts *Options) string {
	t.Helper()
	v, err := jsontree.Parse([]byte(input))
	require.NoError(t, err)
	out, err := Compact(v, opts).MarshalJSON()
	require.NoError(t, err)
	return string(out)
}

func TestCompact_ArrayTrimming(t *testing.T) {
	got := compactJSON(t, `{"items": [1, 2, 3, 4, 5, 6, 7, 8, 9, 10]}`, &Options{MaxArrayItems: 3})
	assert.JSONEq(t, `{"items": [1, 2, 3, "... (7 more items)"]}`, got)
}

func TestCompact_ArrayWithinLimit(t *testing.T) {
	got := compactJSON(t, `{"items": [1, 2, 3]}`, &Options{MaxArrayItems: 5})
	assert.JSONEq(t, `{"items": [1, 2, 3]}`, got)
}

func TestCompact_NestedArrays(t *testing.T) {
	input := `{"users": [
		{"name": "Alice", "tags": ["a", "b", "c", "d", "e"]},
		{"name": "Bob", "tags": ["x", "y"]},
		{"name": "Charlie", "tags": []},
		{"name": "Dave", "tags": ["only"]}
	]}`
	got := compactJSON(t, input, &Options{MaxArrayItems: 3})
	want := `{"users": [
		{"name": "Alice", "tags": ["a", "b", "c", "... (2 more items)"]},
		{"name": "Bob", "tags": ["x", "y"]},
		{"name": "Charlie", "tags": []},
		"... (1 more items)"
	]}`
	assert.JSONEq(t, want, got)
}

func TestCompact_KeepsMemberOrderAndLiterals(t *testing.T) {
	got := compactJSON(t, `{"z": 1.50, "a": 12345678901234567890, "m": null}`, nil)
	assert.Equal(t, `{"z":1.50,"a":12345678901234567890,"m":null}`, got)
}

func TestCompact_StringTruncation(t *testing.T) {
	got := compactJSON(t, `{"s": "héllo world"}`, &Options{MaxStringLen: 5})
	assert.JSONEq(t, `{"s": "héllo... (6 more chars)"}`, got)
}

func TestCompact_MaxDepth(t *testing.T) {
	got := compactJSON(t, `{"a": {"b": {"c": 1}}, "n": 2}`, &Options{MaxDepth: 2})
	assert.JSONEq(t, `{"a": {"b": "[max depth]"}, "n": 2}`, got)
}

func TestCompact_Scalars(t *testing.T) {
	for _, input := range []string{`true`, `null`, `42`} {
		assert.Equal(t, input, compactJSON(t, input, nil))
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultMaxArrayItems, opts.MaxArrayItems)
	assert.Equal(t, DefaultMaxStringLen, opts.MaxStringLen)
	assert.Equal(t, DefaultMaxDepth, opts.MaxDepth)
}

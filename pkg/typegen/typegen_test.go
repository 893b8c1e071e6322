package typegen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/typegen-mcp/pkg/codegen"
	"github.com/usestring/typegen-mcp/pkg/jsontree"
)

func TestInferAndGenerate(t *testing.T) {
	doc, err := jsontree.Parse([]byte(`{"a": "x", "b": 1}`))
	require.NoError(t, err)

	got, err := InferAndGenerate(doc, "Class", nil)
	require.NoError(t, err)

	assert.Equal(t, "Class", got.RootTypeName)
	assert.Equal(t, codegen.TargetGo, got.Target)
	assert.Equal(t, 1, got.ClassCount)
	assert.Contains(t, got.Code, "type Class struct {")
	assert.Contains(t, got.Code, "package model")
}

func TestInferAndGenerate_ReservedRootName(t *testing.T) {
	doc, err := jsontree.Parse([]byte(`[1, 2]`))
	require.NoError(t, err)

	got, err := InferAndGenerate(doc, "Numbers", []string{"Numbers"})
	require.NoError(t, err)

	assert.Equal(t, "Numbers1", got.RootTypeName)
	assert.Contains(t, got.Code, "type Numbers1 = []int")
}

// typeCheck parses and type-checks generated Go that has no imports.
func typeCheck(t *testing.T, code string) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "model.go", code, 0)
	require.NoError(t, err)
	_, err = (&types.Config{}).Check("model", fset, []*ast.File{file}, nil)
	require.NoError(t, err, code)
}

func TestInferAndGenerate_PredeclaredRootNames(t *testing.T) {
	doc, err := jsontree.Parse([]byte(`{"a": "x", "n": 1, "tags": ["q"], "o": {"b": true}}`))
	require.NoError(t, err)

	for _, name := range []string{"string", "error", "int", "any", "type"} {
		t.Run(name, func(t *testing.T) {
			got, err := InferAndGenerate(doc, name, nil)
			require.NoError(t, err)

			assert.Equal(t, name+"1", got.RootTypeName)
			typeCheck(t, got.Code)
		})
	}
}

func TestGenerate_KotlinReservedNamesApply(t *testing.T) {
	got, err := GenerateFromJSON([]byte(`{"string": {"a": 1}}`), Options{RootName: "List", Target: codegen.TargetKotlin})
	require.NoError(t, err)

	assert.Equal(t, "List1", got.RootTypeName)
	assert.Contains(t, got.Code, "public data class List1(")
	assert.Contains(t, got.Code, "public val string: String1,")
	assert.Contains(t, got.Code, "public data class String1(")
}

func TestGenerateFromJSON_MergesDocuments(t *testing.T) {
	got, err := GenerateFromJSON([]byte("{\"id\": 1, \"tag\": \"x\"}\n{\"id\": 3000000000}\n"), Options{Target: codegen.TargetKotlin})
	require.NoError(t, err)

	assert.Equal(t, DefaultRootName, got.RootTypeName)
	assert.Contains(t, got.Code, "public val id: Long,")
	assert.Contains(t, got.Code, "public val tag: String?,")
}

func TestGenerateFromJSON_Malformed(t *testing.T) {
	_, err := GenerateFromJSON([]byte(`{"a": `), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))

	var malformed *jsontree.MalformedInputError
	assert.True(t, errors.As(err, &malformed))
}

func TestGenerateFromJSON_Empty(t *testing.T) {
	_, err := GenerateFromJSON([]byte("   "), Options{})
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestGenerate_InvalidOptions(t *testing.T) {
	samples := []jsontree.Value{jsontree.Number("1")}

	_, err := Generate(samples, Options{RootName: "not valid"})
	assert.ErrorIs(t, err, ErrInvalidRootName)

	_, err = Generate(samples, Options{GoPackage: "my-pkg"})
	assert.ErrorIs(t, err, ErrInvalidPackageName)

	_, err = Generate(samples, Options{Target: "cobol"})
	assert.ErrorIs(t, err, codegen.ErrUnknownTarget)
}

func TestGenerate_JSONSchemaTarget(t *testing.T) {
	got, err := GenerateFromJSON([]byte(`{"a": 1}`), Options{Target: codegen.TargetJSONSchema})
	require.NoError(t, err)

	assert.Equal(t, codegen.TargetJSONSchema, got.Target)
	assert.Contains(t, got.Code, `"$defs"`)
}

func TestGenerate_DeterministicAndConcurrent(t *testing.T) {
	data := []byte(`{"links": {"a": "a"}, "b1": {"links": {}}, "b2": {"links": {}}, "items": [{"id": 1}, {"x": [1, "a"]}]}`)

	want, err := GenerateFromJSON(data, Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := GenerateFromJSON(data, Options{})
			if err == nil {
				results[i] = got.Code
			}
		}(i)
	}
	wg.Wait()

	for _, code := range results {
		assert.Equal(t, want.Code, code)
	}
	assert.True(t, strings.Contains(want.Code, "Links1"))
}

func TestBuild(t *testing.T) {
	samples, err := jsontree.ParseAll([]byte(`[{"c": 1}, {"c": 2}]`))
	require.NoError(t, err)

	g, err := Build(samples, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Response", string(g.RootName))
	assert.True(t, g.NeedsAlias())
	require.Len(t, g.Classes, 1)
	assert.Equal(t, "ResponseItem", string(g.Classes[0].Name()))

	_, err = Build(nil, "Response", nil)
	assert.ErrorIs(t, err, ErrNoSamples)
}

package codegen

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/naming"
	"github.com/usestring/typegen-mcp/pkg/typegraph"
)

const person = `{
  "firstName": "John",
  "lastName": "Smith",
  "isAlive": true,
  "age": 27,
  "address": {
    "streetAddress": "21 2nd Street",
    "city": "New York",
    "state": "NY",
    "postalCode": "10021-3100"
  },
  "phoneNumbers": [
    {"type": "home", "number": "212 555-1234"},
    {"type": "office", "number": "646 555-4567"}
  ],
  "children": ["Catherine", "Thomas", "Trevor"],
  "spouse": null
}`

func render(t *testing.T, target Target, rootName, doc string) string {
	t.Helper()
	r, err := New(target, Options{})
	require.NoError(t, err)

	samples, err := jsontree.ParseAll([]byte(doc))
	require.NoError(t, err)

	reserved := naming.NewSet[naming.TypeName]()
	for _, name := range r.ReservedNames() {
		reserved.Add(naming.TypeName(name))
	}
	root := typegraph.InferRoot(naming.TypeName(rootName), samples)
	g := typegraph.Normalize(root, naming.TypeName(rootName), reserved)

	out, err := r.Render(g)
	require.NoError(t, err)
	return string(out)
}

// squash collapses horizontal whitespace so comparisons ignore gofmt alignment.
func squash(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

func TestKotlin_Person(t *testing.T) {
	want := `import kotlinx.serialization.Serializable
import org.jetbrains.kotlinx.jupyter.serialization.UntypedAny

@Serializable
public data class Person(
    public val firstName: String,
    public val lastName: String,
    public val isAlive: Boolean,
    public val age: Int,
    public val address: Address,
    public val phoneNumbers: List<PhoneNumber>,
    public val children: List<String>,
    public val spouse: UntypedAny?,
)

@Serializable
public data class Address(
    public val streetAddress: String,
    public val city: String,
    public val state: String,
    public val postalCode: String,
)

@Serializable
public data class PhoneNumber(
    public val type: String,
    public val number: String,
)
`
	assert.Equal(t, want, render(t, TargetKotlin, "Person", person))
}

func TestKotlin_Aliases(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "array of empty objects",
			json: `[{}, {}]`,
			want: "import kotlinx.serialization.Serializable\n\n" +
				"public typealias Class = List<ClassItem>\n\n" +
				"@Serializable\npublic data object ClassItem\n",
		},
		{
			name: "empty array",
			json: `[]`,
			want: "import org.jetbrains.kotlinx.jupyter.serialization.UntypedAny\n\n" +
				"public typealias Class = List<UntypedAny?>\n",
		},
		{
			name: "int",
			json: `12`,
			want: "public typealias Class = Int\n",
		},
		{
			name: "heterogeneous array",
			json: `[12, ""]`,
			want: "import org.jetbrains.kotlinx.jupyter.serialization.UntypedAnyNotNull\n\n" +
				"public typealias Class = List<UntypedAnyNotNull>\n",
		},
		{
			name: "nullable longs",
			json: `[3000000000, null]`,
			want: "public typealias Class = List<Long?>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, TargetKotlin, "Class", tt.json))
		})
	}
}

func TestKotlin_SerialNameAndKeywords(t *testing.T) {
	want := `import kotlinx.serialization.SerialName
import kotlinx.serialization.Serializable

@Serializable
public data class Response(
    @SerialName("first_name")
    public val firstName: String,
    public val ` + "`class`" + `: Int,
    @SerialName("price$")
    public val price: Double?,
)
`
	doc := `{"first_name": "x", "class": 1, "price$": 1.5} {"first_name": "y", "class": 2}`
	got := render(t, TargetKotlin, "Response", doc)
	assert.Equal(t, strings.Replace(want, `"price$"`, `"price\$"`, 1), got)
}

func TestKotlin_ReservedRootName(t *testing.T) {
	got := render(t, TargetKotlin, "List", `{"a": 1}`)

	assert.Contains(t, got, "public data class List1(")
	assert.NotContains(t, got, "typealias")
}

func TestKotlin_DeduplicatedLinks(t *testing.T) {
	got := render(t, TargetKotlin, "Response", `{"links": {"a": "a"}, "b1": {"links": {}}, "b2": {"links": {}}}`)

	want := `import kotlinx.serialization.Serializable

@Serializable
public data class Response(
    public val links: Links,
    public val b1: B1,
    public val b2: B2,
)

@Serializable
public data class Links(
    public val a: String,
)

@Serializable
public data class B1(
    public val links: Links1,
)

@Serializable
public data object Links1

@Serializable
public data class B2(
    public val links: Links1,
)
`
	assert.Equal(t, want, got)
}

func TestGo_FlatObject(t *testing.T) {
	want := "// Code generated by typegen. DO NOT EDIT.\n\n" +
		"package model\n\n" +
		"type Class struct {\n" +
		"A string `json:\"a\"`\n" +
		"B int `json:\"b\"`\n" +
		"}"
	assert.Equal(t, want, squash(render(t, TargetGo, "Class", `{"a": "x", "b": 1}`)))
}

func TestGo_ListRoot(t *testing.T) {
	want := "// Code generated by typegen. DO NOT EDIT.\n\n" +
		"package model\n\n" +
		"type Class = []ClassItem\n\n" +
		"type ClassItem struct {\n" +
		"C int `json:\"c\"`\n" +
		"}"
	assert.Equal(t, want, squash(render(t, TargetGo, "Class", `[{"c": 1}, {"c": 2}]`)))
}

func TestGo_NullableAndUntyped(t *testing.T) {
	got := render(t, TargetGo, "Response", `{"x": null, "tags": ["a", null], "o": {}, "n": 3000000000, "f": 1.5}`)

	want := "// Code generated by typegen. DO NOT EDIT.\n\n" +
		"package model\n\n" +
		"import (\n" +
		"\"github.com/usestring/typegen-mcp/pkg/untyped\"\n" +
		")\n\n" +
		"type Response struct {\n" +
		"X *untyped.Value `json:\"x\"`\n" +
		"Tags []*string `json:\"tags\"`\n" +
		"O O `json:\"o\"`\n" +
		"N int64 `json:\"n\"`\n" +
		"F float64 `json:\"f\"`\n" +
		"}\n\n" +
		"type O struct{}"
	assert.Equal(t, want, squash(got))
}

func TestGo_PackageAndTagOmission(t *testing.T) {
	r, err := New(TargetGo, Options{GoPackage: "api"})
	require.NoError(t, err)

	class := typegraph.NewClass("Response", []typegraph.Property{
		{JSONName: "ID", Name: "iD", Type: typegraph.Primitive{Kind: typegraph.Int}},
		{JSONName: "owner", Name: "owner", Type: typegraph.Primitive{Kind: typegraph.String, IsNullable: true}},
	})
	g := &typegraph.Graph{RootName: "Response", Root: typegraph.ClassRef{Class: class}, Classes: []*typegraph.Class{class}}

	out, err := r.Render(g)
	require.NoError(t, err)

	got := squash(string(out))
	assert.Contains(t, got, "package api")
	assert.Contains(t, got, "ID int\n")
	assert.Contains(t, got, "Owner *string `json:\"owner\"`")
}

func TestGo_Deterministic(t *testing.T) {
	first := render(t, TargetGo, "Person", person)
	second := render(t, TargetGo, "Person", person)
	assert.Equal(t, first, second)
	assert.Contains(t, squash(first), "PhoneNumbers []PhoneNumber `json:\"phoneNumbers\"`")
}

func TestGoTag(t *testing.T) {
	assert.Equal(t, "`json:\"id\"`", goTag("id"))
	assert.Equal(t, "`json:\"a\\\"b\"`", goTag(`a"b`))
	assert.Equal(t, `"json:\"a`+"`"+`b\""`, goTag("a`b"))
	assert.Equal(t, "`json:\"-,\"`", goTag("-"))
}

func TestGoFieldName(t *testing.T) {
	assert.Equal(t, "FirstName", goFieldName("firstName"))
	assert.Equal(t, "X名前", goFieldName("名前"))
}

type failingFormatter struct{}

func (failingFormatter) Format(string, []byte) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestGo_FormatterError(t *testing.T) {
	r, err := New(TargetGo, Options{Formatter: failingFormatter{}})
	require.NoError(t, err)

	g := &typegraph.Graph{RootName: "Response", Root: typegraph.Primitive{Kind: typegraph.Int}}
	_, err = r.Render(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format: boom")
}

func TestJSONSchema_Render(t *testing.T) {
	got := render(t, TargetJSONSchema, "Response", `{"a": 1, "b": [{"c": "x"}]}`)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	assert.Equal(t, "#/$defs/Response", doc["$ref"])
	assert.Contains(t, doc["$defs"], "B")
	assert.True(t, strings.HasSuffix(got, "}\n"))
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want Target
	}{
		{"", TargetGo},
		{"Go", TargetGo},
		{"kt", TargetKotlin},
		{" kotlin ", TargetKotlin},
		{"json-schema", TargetJSONSchema},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseTarget("rust")
	assert.ErrorIs(t, err, ErrUnknownTarget)

	_, err = New("rust", Options{})
	assert.ErrorIs(t, err, ErrUnknownTarget)
}

func TestReservedNames(t *testing.T) {
	r, err := New(TargetKotlin, Options{})
	require.NoError(t, err)
	assert.Contains(t, r.ReservedNames(), "List")
	assert.Contains(t, r.ReservedNames(), "UntypedAnyNotNull")

	r, err = New(TargetGo, Options{})
	require.NoError(t, err)
	for _, name := range []string{"string", "int64", "any", "error", "type", "nil", "untyped"} {
		assert.Contains(t, r.ReservedNames(), name)
	}

	r, err = New(TargetGo, Options{GoUntypedImport: "example.com/dyn/jsonany"})
	require.NoError(t, err)
	assert.Contains(t, r.ReservedNames(), "jsonany")
}

func TestGo_PredeclaredRootName(t *testing.T) {
	got := squash(render(t, TargetGo, "string", `{"a": "x"}`))

	assert.Contains(t, got, "type string1 struct {\nA string `json:\"a\"`\n}")
	assert.NotContains(t, got, "type string struct")
}

func TestGo_UntypedPackageRootName(t *testing.T) {
	got := squash(render(t, TargetGo, "untyped", `[1, "x"]`))

	assert.Contains(t, got, "type untyped1 = []untyped.Value")
}

func TestKotlin_KeywordRootName(t *testing.T) {
	got := render(t, TargetKotlin, "object", `{"a": 1}`)
	assert.Contains(t, got, "public data class `object`(")

	got = render(t, TargetKotlin, "class", `[{"a": 1}]`)
	assert.Contains(t, got, "public typealias `class` = List<")
}

func TestKotlinString(t *testing.T) {
	assert.Equal(t, `"a\"\$b\\"`, kotlinString(`a"$b\`))
	assert.Equal(t, `"line\nnext\u0001"`, kotlinString("line\nnext\x01"))
}

package schema

import (
	"strings"
	"testing"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/typegen"
)

func TestValidator_JSONSchema(t *testing.T) {
	schemaStr := `{"type": "object", "properties": {"name": {"type": "string"}, "age": {"type": "integer"}}, "required": ["name"]}`

	validator, err := NewValidator([]byte(schemaStr))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Valid data
	result := validator.Validate([]byte(`{"name": "Alice", "age": 30}`))
	if !result.Valid {
		t.Errorf("expected valid, got errors: %v", result.Errors)
	}

	// Invalid data - missing required field
	result = validator.Validate([]byte(`{"age": 30}`))
	if result.Valid {
		t.Error("expected invalid for missing required field")
	}

	// Invalid data - wrong type
	result = validator.Validate([]byte(`{"name": "Alice", "age": "thirty"}`))
	if result.Valid {
		t.Error("expected invalid for wrong type")
	}
	if len(result.Errors) == 0 || !strings.HasPrefix(result.Errors[0], "/age: ") {
		t.Errorf("expected error at /age, got %v", result.Errors)
	}
}

func TestValidator_InvalidSchema(t *testing.T) {
	if _, err := NewValidator([]byte(`{"type": 12`)); err == nil {
		t.Error("expected error for truncated schema")
	}
	if _, err := NewValidator([]byte(`{"type": "nonsense"}`)); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestValidator_InvalidJSON(t *testing.T) {
	validator, err := NewValidator([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result := validator.Validate([]byte(`{"a":`))
	if result.Valid {
		t.Fatal("expected invalid result for malformed JSON")
	}
	if !strings.HasPrefix(result.Errors[0], "invalid JSON") {
		t.Errorf("unexpected error: %v", result.Errors)
	}
}

func graphValidator(t *testing.T, reference string) *Validator {
	t.Helper()
	samples, err := jsontree.ParseAll([]byte(reference))
	if err != nil {
		t.Fatalf("parse reference: %v", err)
	}
	g, err := typegen.Build(samples, "Response", nil)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	validator, err := NewValidatorFromGraph(g)
	if err != nil {
		t.Fatalf("compile generated schema: %v", err)
	}
	return validator
}

func TestValidatorFromGraph(t *testing.T) {
	validator := graphValidator(t, `{"id": 1, "name": "a", "tags": ["x"], "owner": {"login": "o"}}
{"id": 2, "name": "b", "tags": [], "owner": {"login": "p"}, "note": null}`)

	tests := []struct {
		name      string
		sample    string
		wantValid bool
		wantPath  string
	}{
		{"matching", `{"id": 3, "name": "c", "tags": ["y"], "owner": {"login": "q"}}`, true, ""},
		{"optional field absent", `{"id": 3, "name": "c", "tags": [], "owner": {"login": "q"}}`, true, ""},
		{"optional field present", `{"id": 3, "name": "c", "tags": [], "owner": {"login": "q"}, "note": 5}`, true, ""},
		{"wrong scalar type", `{"id": "3", "name": "c", "tags": [], "owner": {"login": "q"}}`, false, "/id"},
		{"fractional int", `{"id": 3.5, "name": "c", "tags": [], "owner": {"login": "q"}}`, false, "/id"},
		{"nested mismatch", `{"id": 3, "name": "c", "tags": [], "owner": {"login": 7}}`, false, "/owner/login"},
		{"list item mismatch", `{"id": 3, "name": "c", "tags": [1], "owner": {"login": "q"}}`, false, "/tags/0"},
		{"null required field", `{"id": null, "name": "c", "tags": [], "owner": {"login": "q"}}`, false, "/id"},
		{"missing required field", `{"name": "c", "tags": [], "owner": {"login": "q"}}`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.Validate([]byte(tt.sample))
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantPath == "" {
				return
			}
			found := false
			for _, e := range result.Errors {
				if strings.HasPrefix(e, tt.wantPath+": ") {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error at %s, got %v", tt.wantPath, result.Errors)
			}
		})
	}
}

func TestValidatorFromGraph_LongValues(t *testing.T) {
	validator := graphValidator(t, `[3000000000, 1]`)

	if result := validator.Validate([]byte(`[9007199254740993]`)); !result.Valid {
		t.Errorf("expected large integer to validate, got %v", result.Errors)
	}
	if result := validator.Validate([]byte(`[1, "x"]`)); result.Valid {
		t.Error("expected string item to fail")
	}
}

func TestValidator_ErrorsAreSorted(t *testing.T) {
	validator := graphValidator(t, `{"a": 1, "b": "x"}`)

	result := validator.Validate([]byte(`{"a": "no", "b": 2}`))
	if result.Valid {
		t.Fatal("expected invalid")
	}
	if len(result.Errors) != 2 || !strings.HasPrefix(result.Errors[0], "/a: ") || !strings.HasPrefix(result.Errors[1], "/b: ") {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

// Package schema validates JSON samples against JSON Schema documents, either
// supplied by the caller or generated from an inferred type graph.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	typeschema "github.com/usestring/typegen-mcp/pkg/jsonschema"
	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/typegraph"
	"github.com/usestring/typegen-mcp/pkg/types"
)

const resourceName = "schema.json"

// Validator validates JSON data against a schema.
type Validator struct {
	schema *jsonschema.Schema
	source []byte
}

// NewValidator creates a new validator from a JSON Schema document.
func NewValidator(schemaJSON []byte) (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parsing JSON Schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)

	// Add the schema as a resource (doc must be valid json value, not io.Reader)
	if err := compiler.AddResource(resourceName, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{schema: compiled, source: schemaJSON}, nil
}

// NewValidatorFromGraph creates a validator for the schema generated from g.
func NewValidatorFromGraph(g *typegraph.Graph) (*Validator, error) {
	data, err := json.Marshal(typeschema.FromGraph(g))
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return NewValidator(data)
}

// Source returns the schema document the validator was compiled from.
func (v *Validator) Source() []byte {
	return v.source
}

// Validate validates raw JSON bytes against the schema.
func (v *Validator) Validate(data []byte) *types.ValidationResult {
	value, err := jsontree.Parse(data)
	if err != nil {
		return &types.ValidationResult{
			Valid:  false,
			Errors: []string{fmt.Sprintf("invalid JSON: %s", err.Error())},
		}
	}
	return v.ValidateValue(value)
}

// ValidateValue validates an already-parsed value against the schema.
func (v *Validator) ValidateValue(value jsontree.Value) *types.ValidationResult {
	err := v.schema.Validate(instance(value))
	if err == nil {
		return &types.ValidationResult{Valid: true}
	}

	return &types.ValidationResult{
		Valid:  false,
		Errors: extractValidationErrors(err),
	}
}

// instance converts value into the representation the validator expects.
// Numbers keep their literal so integer checks are exact.
func instance(value jsontree.Value) any {
	switch value.Kind() {
	case jsontree.KindBool:
		return value.BoolValue()
	case jsontree.KindNumber:
		return json.Number(value.Text())
	case jsontree.KindString:
		return value.Text()
	case jsontree.KindArray:
		out := make([]any, value.Len())
		for i, item := range value.Items() {
			out[i] = instance(item)
		}
		return out
	case jsontree.KindObject:
		out := make(map[string]any, value.Len())
		for _, m := range value.Members() {
			out[m.Key] = instance(m.Value)
		}
		return out
	default:
		return nil
	}
}

// extractValidationErrors extracts human-readable error messages from a validation error.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return extractDetailedErrors(validationErr)
	}

	// Fallback to simple error message
	return []string{err.Error()}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// extractDetailedErrors flattens a ValidationError tree into sorted,
// deduplicated "path: message" lines.
func extractDetailedErrors(err *jsonschema.ValidationError) []string {
	errorsByPath := make(map[string][]string)
	collectErrors(err, errorsByPath)

	paths := make([]string, 0, len(errorsByPath))
	for path := range errorsByPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var result []string
	for _, path := range paths {
		seen := make(map[string]bool)
		for _, msg := range errorsByPath[path] {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}
	return result
}

// collectErrors recursively collects leaf errors (those without causes).
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		// $ref wrappers carry no information of their own
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}

package codegen

import (
	"encoding/json"
	"fmt"

	"github.com/usestring/typegen-mcp/pkg/jsonschema"
	"github.com/usestring/typegen-mcp/pkg/typegraph"
)

// schemaRenderer emits a JSON Schema document describing the graph.
type schemaRenderer struct{}

func (schemaRenderer) Target() Target { return TargetJSONSchema }

func (schemaRenderer) ReservedNames() []string { return nil }

func (schemaRenderer) Render(g *typegraph.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(jsonschema.FromGraph(g), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}

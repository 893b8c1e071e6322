// Package tools contains MCP tool implementations for typegen.
package tools

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typegen-mcp/pkg/codegen"
	"github.com/usestring/typegen-mcp/pkg/jsontree"
)

// MIME type constants.
const (
	MimeJSON       = "application/json"
	MimeJSONSchema = "application/schema+json"
	MimeGo         = "text/x-go"
	MimeKotlin     = "text/x-kotlin"
)

// MimeForTarget returns the MIME type of code rendered for target.
func MimeForTarget(target codegen.Target) string {
	switch target {
	case codegen.TargetKotlin:
		return MimeKotlin
	case codegen.TargetJSONSchema:
		return MimeJSONSchema
	default:
		return MimeGo
	}
}

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// sampleFromAny converts a sample decoded from tool arguments into a Value.
// Arguments arrive as float64 numbers and unordered maps, so integral floats
// are written back as integer literals and object keys are sorted.
func sampleFromAny(x any) (jsontree.Value, error) {
	switch val := x.(type) {
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return jsontree.Number(strconv.FormatFloat(val, 'f', -1, 64)), nil
		}
		return jsontree.FromAny(val)
	case json.Number:
		return jsontree.Number(val.String()), nil
	case []any:
		items := make([]jsontree.Value, len(val))
		for i, item := range val {
			converted, err := sampleFromAny(item)
			if err != nil {
				return jsontree.Value{}, err
			}
			items[i] = converted
		}
		return jsontree.Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]jsontree.Member, len(keys))
		for i, k := range keys {
			converted, err := sampleFromAny(val[k])
			if err != nil {
				return jsontree.Value{}, err
			}
			members[i] = jsontree.Member{Key: k, Value: converted}
		}
		return jsontree.Object(members...), nil
	default:
		return jsontree.FromAny(val)
	}
}

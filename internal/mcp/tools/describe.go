package tools

import (
	"context"
	"slices"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typegen-mcp/pkg/jsoncompact"
	"github.com/usestring/typegen-mcp/pkg/jsonschema"
	"github.com/usestring/typegen-mcp/pkg/typegen"
	"github.com/usestring/typegen-mcp/pkg/typegraph"
	"github.com/usestring/typegen-mcp/pkg/types"
)

// DescribeInput is the input for typegen_describe.
type DescribeInput struct {
	JSON          string   `json:"json,omitempty" jsonschema:"One JSON document, or several separated by whitespace (NDJSON). Either json or samples is required."`
	Samples       []any    `json:"samples,omitempty" jsonschema:"Sample documents as JSON values"`
	JQ            string   `json:"jq,omitempty" jsonschema:"Optional jq expression run on every document; each non-null output becomes a sample"`
	RootName      string   `json:"root_name,omitempty" jsonschema:"Name of the root type (default: Response)"`
	ReservedNames []string `json:"reserved_names,omitempty" jsonschema:"Type names the graph must not declare"`
	IncludeStats  *bool    `json:"include_stats,omitempty" jsonschema:"Include per-field statistics (default: true)"`
}

// ToolDescribe infers the normalized type graph without rendering code and
// reports per-field statistics over the samples.
func ToolDescribe(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeInput) (*sdkmcp.CallToolResult, types.DescribeOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeInput) (*sdkmcp.CallToolResult, types.DescribeOutput, error) {
		rootName := input.RootName
		if rootName == "" {
			rootName = d.Config.RootName
		}

		samples, selected, err := d.loadSamples(ctx, sampleSource{JSON: input.JSON, Samples: input.Samples, JQ: input.JQ})
		if err != nil {
			return nil, types.DescribeOutput{}, err
		}

		g, err := typegen.Build(samples, rootName, slices.Concat(d.Config.ReservedNames, input.ReservedNames))
		if err != nil {
			return nil, types.DescribeOutput{}, WrapGenerateError(err)
		}

		output := types.DescribeOutput{
			RootName:    string(g.RootName),
			RootType:    g.Root.String(),
			NeedsAlias:  g.NeedsAlias(),
			Classes:     DescribeClasses(g),
			SampleCount: len(samples),
			Preview:     jsoncompact.Compact(samples[0], nil).ToAny(),
			Selection:   selected,
			Hint:        "Use typegen_generate with the same inputs to render these types as code.",
		}
		if input.IncludeStats == nil || *input.IncludeStats {
			output.FieldStats = jsonschema.ComputeFieldStats(g, samples)
		}
		return nil, output, nil
	}
}

// DescribeClasses lists the classes of g in declaration order.
func DescribeClasses(g *typegraph.Graph) []types.ClassInfo {
	classes := make([]types.ClassInfo, 0, len(g.Classes))
	for _, c := range g.Classes {
		info := types.ClassInfo{Name: string(c.Name())}
		for _, p := range c.Properties() {
			info.Properties = append(info.Properties, types.PropertyInfo{
				JSONName: p.JSONName,
				Name:     string(p.Name),
				Type:     p.Type.String(),
				Nullable: p.Type.Nullable(),
			})
		}
		classes = append(classes, info)
	}
	return classes
}

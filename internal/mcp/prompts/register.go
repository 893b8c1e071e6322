package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Generate types from JSON samples
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "generate_types",
		Description: "RECOMMENDED: Turn JSON payloads into typed models. Walks through sample selection, structure review, code generation, and validation with the typegen tools.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "target",
				Description: "Output language: go, kotlin, or jsonschema",
				Required:    false,
			},
			{
				Name:        "root_name",
				Description: "Name of the root type (e.g. 'Order', 'SearchResponse')",
				Required:    false,
			},
			{
				Name:        "source",
				Description: "Where the JSON comes from (e.g. 'GET /api/orders response'), used to pick names and jq selections",
				Required:    false,
			},
		},
	}, HandleGenerateTypes(cfg))
}

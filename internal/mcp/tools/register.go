package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool names.
const (
	ToolNameGenerate = "typegen_generate"
	ToolNameDescribe = "typegen_describe"
	ToolNameValidate = "typegen_validate"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: typegen_generate
	AddTool(srv, &sdkmcp.Tool{
		Name:        ToolNameGenerate,
		Description: "Infer types from one or more JSON samples and render them as Go structs (default), Kotlin kotlinx.serialization data classes, or a JSON Schema document. Every sample is merged into one root type: keys missing from some objects or null in some samples become nullable, integers widen int -> long -> double, and mixed shapes become an untyped value. Returns {code, root_type_name, target, class_count, sample_count, cached, resource}. Use jq to select the sub-document to type (e.g. '.data.items[]'). Use typegen_describe first when you only need the structure.",
	}, ToolGenerate(d))

	// Tool 2: typegen_describe
	AddTool(srv, &sdkmcp.Tool{
		Name:        ToolNameDescribe,
		Description: "Infer the normalized type graph from JSON samples without rendering code. Returns {root_name, root_type, needs_alias, classes: [{name, properties: [{json_name, name, type, nullable}]}], field_stats: [{path, type, frequency, required, nullable, distinct_count, examples, format, enum_values}]}. Type notation: int, long, double, bool, string, ClassName, list<T>, untyped; a trailing ? marks nullable.",
	}, ToolDescribe(d))

	// Tool 3: typegen_validate
	AddTool(srv, &sdkmcp.Tool{
		Name:        ToolNameValidate,
		Description: "Check whether JSON documents match the types inferred from reference documents, or a supplied JSON Schema. Returns {summary: {total_samples, matching_count, failed_count, all_match}, results: [{index, valid, errors}], common_errors}. Use this to find payloads that generated types would fail to decode.",
	}, ToolValidate(d))
}

package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleGenerateTypes implements the type generation workflow.
func HandleGenerateTypes(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		target := cfg.DefaultTarget
		rootName := cfg.DefaultRootName
		source := ""
		if req.Params != nil && req.Params.Arguments != nil {
			args := req.Params.Arguments
			if v, ok := args["target"]; ok && v != "" {
				target = v
			}
			if v, ok := args["root_name"]; ok && v != "" {
				rootName = v
			}
			if v, ok := args["source"]; ok {
				source = v
			}
		}

		var sb strings.Builder

		// 1. Role
		sb.WriteString("# Generate Types from JSON\n\n")
		sb.WriteString("You are turning real JSON payloads into typed models. ")
		sb.WriteString("The goal is declarations that decode every sample you were given, with names a reviewer would accept.\n\n")

		// 2. Task
		sb.WriteString("## Task\n\n")
		sb.WriteString(fmt.Sprintf("- **Target**: %s\n", target))
		sb.WriteString(fmt.Sprintf("- **Root type**: %s\n", rootName))
		if source != "" {
			sb.WriteString(fmt.Sprintf("- **Source**: %s\n", source))
		}
		sb.WriteString("\n")

		// 3. How inference works
		sb.WriteString("## How Inference Works\n\n")
		sb.WriteString("- All samples merge into one root type. More samples mean better optionality.\n")
		sb.WriteString("- A key missing from any object, or null in any sample, makes the field nullable.\n")
		sb.WriteString("- Integers widen int -> long -> double; fractional or exponent literals are double.\n")
		sb.WriteString("- A field whose samples disagree in shape (string vs object, number vs string) becomes untyped.\n")
		sb.WriteString("- Class names come from JSON keys; list items use the singular form (`addresses` -> `Address`).\n")
		sb.WriteString("- Identical nested shapes with the same name share one class; different shapes get numeric suffixes (`Links`, `Links1`).\n\n")

		// 4. Workflow
		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Collect samples** - Pass several documents in `json` (NDJSON) rather than one.\n")
		sb.WriteString("   - Use `json` over `samples` when declaration order or large integers matter.\n")
		sb.WriteString("   - Use `jq` to type a sub-document, e.g. `.data.items[]` turns each item into a sample.\n\n")
		sb.WriteString("2. **Review the structure** - `typegen_describe` returns classes and field_stats.\n")
		sb.WriteString("   - `frequency < 1` means a field is optional; check whether that is real or a sampling gap.\n")
		sb.WriteString("   - Untyped fields usually need more samples or a jq selection that splits variants.\n\n")
		sb.WriteString("3. **Generate** - `typegen_generate` with the target and root name above.\n")
		sb.WriteString("   - Pass names already declared in the destination package as `reserved_names`.\n")
		sb.WriteString("   - If `root_type_name` differs from the requested name, the requested one was reserved.\n")
		sb.WriteString("   - The returned resource URI fetches the same code again without re-sending samples.\n\n")
		sb.WriteString("4. **Validate** - `typegen_validate` with the samples as `reference` and new payloads as `json`.\n")
		sb.WriteString("   - `common_errors` point at the fields the generated types would reject.\n")
		sb.WriteString("   - Add failing payloads to the samples and generate again.\n\n")

		// 5. Output
		sb.WriteString("## Output\n\n")
		sb.WriteString("Present the generated code unchanged, then list nullable and untyped fields with one line each on why.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Type generation workflow",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

package tools

import (
	"context"
	"sort"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typegen-mcp/internal/schema"
	"github.com/usestring/typegen-mcp/pkg/jsonschema"
	"github.com/usestring/typegen-mcp/pkg/typegen"
	"github.com/usestring/typegen-mcp/pkg/types"
)

// ValidateInput is the input for typegen_validate.
type ValidateInput struct {
	Reference        string `json:"reference,omitempty" jsonschema:"Reference JSON documents (NDJSON) whose inferred types the samples must match. Either reference, reference_samples, or schema is required."`
	ReferenceSamples []any  `json:"reference_samples,omitempty" jsonschema:"Reference documents as JSON values"`
	Schema           string `json:"schema,omitempty" jsonschema:"JSON Schema document to validate against instead of inferring one"`
	JSON             string `json:"json,omitempty" jsonschema:"JSON documents to validate (NDJSON). Either json or samples is required."`
	Samples          []any  `json:"samples,omitempty" jsonschema:"Documents to validate as JSON values"`
	JQ               string `json:"jq,omitempty" jsonschema:"Optional jq expression applied to reference and validated documents alike"`
	RootName         string `json:"root_name,omitempty" jsonschema:"Name of the inferred root type (default: Response)"`
	IncludeSchema    bool   `json:"include_schema,omitempty" jsonschema:"Return the inferred JSON Schema (default: false)"`
}

// ToolValidate checks whether documents match the types inferred from
// reference documents, or a caller-supplied JSON Schema.
func ToolValidate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, types.ValidateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ValidateInput) (*sdkmcp.CallToolResult, types.ValidateOutput, error) {
		hasReference := strings.TrimSpace(input.Reference) != "" || len(input.ReferenceSamples) > 0
		hasSchema := strings.TrimSpace(input.Schema) != ""
		switch {
		case hasReference && hasSchema:
			return nil, types.ValidateOutput{}, ErrInvalidInput("reference and schema are mutually exclusive")
		case !hasReference && !hasSchema:
			return nil, types.ValidateOutput{}, ErrInvalidInput("either reference, reference_samples, or schema is required")
		}

		var output types.ValidateOutput
		var validator *schema.Validator

		if hasSchema {
			v, err := schema.NewValidator([]byte(input.Schema))
			if err != nil {
				return nil, types.ValidateOutput{}, ErrInvalidInput("invalid schema: " + err.Error())
			}
			validator = v
		} else {
			rootName := input.RootName
			if rootName == "" {
				rootName = d.Config.RootName
			}

			reference, _, err := d.loadSamples(ctx, sampleSource{
				JSON: input.Reference, Samples: input.ReferenceSamples, JQ: input.JQ,
				JSONField: "reference", SamplesField: "reference_samples",
			})
			if err != nil {
				return nil, types.ValidateOutput{}, err
			}

			g, err := typegen.Build(reference, rootName, d.Config.ReservedNames)
			if err != nil {
				return nil, types.ValidateOutput{}, WrapGenerateError(err)
			}
			v, err := schema.NewValidatorFromGraph(g)
			if err != nil {
				return nil, types.ValidateOutput{}, WrapGenerateError(err)
			}
			validator = v
			output.RootTypeName = string(g.RootName)

			if input.IncludeSchema {
				doc, err := types.ToAny(jsonschema.FromGraph(g))
				if err != nil {
					return nil, types.ValidateOutput{}, WrapGenerateError(err)
				}
				output.Schema = doc
			}
		}

		samples, _, err := d.loadSamples(ctx, sampleSource{JSON: input.JSON, Samples: input.Samples, JQ: input.JQ})
		if err != nil {
			return nil, types.ValidateOutput{}, err
		}

		results := make([]types.SampleValidation, 0, len(samples))
		summary := types.ValidationSummary{TotalSamples: len(samples)}
		errorCounts := make(map[string]int)

		for i, sample := range samples {
			res := validator.ValidateValue(sample)
			results = append(results, types.SampleValidation{
				Index:  i,
				Valid:  res.Valid,
				Errors: res.Errors,
			})
			if res.Valid {
				summary.MatchingCount++
				continue
			}
			summary.FailedCount++
			for _, e := range res.Errors {
				errorCounts[e]++
			}
		}
		summary.AllMatch = summary.TotalSamples > 0 && summary.FailedCount == 0

		if len(errorCounts) > 0 {
			output.CommonErrors = make([]types.CommonError, 0, len(errorCounts))
			for e, count := range errorCounts {
				output.CommonErrors = append(output.CommonErrors, types.CommonError{Error: e, Frequency: count})
			}
			sort.Slice(output.CommonErrors, func(i, j int) bool {
				a, b := output.CommonErrors[i], output.CommonErrors[j]
				if a.Frequency != b.Frequency {
					return a.Frequency > b.Frequency
				}
				return a.Error < b.Error
			})
		}

		output.Summary = summary
		output.Results = results
		return nil, output, nil
	}
}

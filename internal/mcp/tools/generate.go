package tools

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typegen-mcp/internal/cache"
	"github.com/usestring/typegen-mcp/pkg/codegen"
	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/typegen"
	"github.com/usestring/typegen-mcp/pkg/types"
)

// GenerateInput is the input for typegen_generate.
type GenerateInput struct {
	JSON          string   `json:"json,omitempty" jsonschema:"One JSON document, or several separated by whitespace (NDJSON). Keeps key order and exact number literals. Either json or samples is required."`
	Samples       []any    `json:"samples,omitempty" jsonschema:"Sample documents as JSON values. Object keys are sorted alphabetically; use json when declaration order matters."`
	JQ            string   `json:"jq,omitempty" jsonschema:"Optional jq expression run on every document; each non-null output becomes a sample (e.g. '.data.items[]')"`
	RootName      string   `json:"root_name,omitempty" jsonschema:"Name of the root type (default: Response)"`
	ReservedNames []string `json:"reserved_names,omitempty" jsonschema:"Type names the output must not declare"`
	Target        string   `json:"target,omitempty" jsonschema:"Output: go (default), kotlin, or jsonschema"`
	GoPackage     string   `json:"go_package,omitempty" jsonschema:"Package clause for Go output (default: model)"`
}

// generateRequest is a GenerateInput with configuration defaults applied.
type generateRequest struct {
	target   codegen.Target
	opts     typegen.Options
	samples  []jsontree.Value
	selected *types.SelectionSummary
}

func (d *Deps) resolveGenerate(ctx context.Context, input GenerateInput) (*generateRequest, error) {
	targetName := input.Target
	if targetName == "" {
		targetName = d.Config.Target
	}
	target, err := codegen.ParseTarget(targetName)
	if err != nil {
		return nil, ErrInvalidInput(fmt.Sprintf("target must be one of %v", codegen.Targets()))
	}

	rootName := input.RootName
	if rootName == "" {
		rootName = d.Config.RootName
	}
	goPackage := input.GoPackage
	if goPackage == "" {
		goPackage = d.Config.GoPackage
	}

	samples, selected, err := d.loadSamples(ctx, sampleSource{JSON: input.JSON, Samples: input.Samples, JQ: input.JQ})
	if err != nil {
		return nil, err
	}

	return &generateRequest{
		target: target,
		opts: typegen.Options{
			RootName:      rootName,
			ReservedNames: slices.Concat(d.Config.ReservedNames, input.ReservedNames),
			Target:        target,
			GoPackage:     goPackage,
		},
		samples:  samples,
		selected: selected,
	}, nil
}

// fingerprint identifies a request by its options and canonical samples.
func (r *generateRequest) fingerprint() (string, error) {
	parts := [][]byte{
		[]byte(r.target),
		[]byte(r.opts.RootName),
		[]byte(r.opts.GoPackage),
		[]byte(strings.Join(r.opts.ReservedNames, ",")),
	}
	for _, s := range r.samples {
		b, err := s.MarshalJSON()
		if err != nil {
			return "", err
		}
		parts = append(parts, b)
	}
	return cache.Fingerprint(parts...), nil
}

// ToolGenerate infers types from JSON samples and renders them as source code.
// Results are cached by fingerprint and exposed as typegen://result resources.
func ToolGenerate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, types.GenerateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, types.GenerateOutput, error) {
		r, err := d.resolveGenerate(ctx, input)
		if err != nil {
			return nil, types.GenerateOutput{}, err
		}

		fp, err := r.fingerprint()
		if err != nil {
			return nil, types.GenerateOutput{}, WrapGenerateError(err)
		}

		result, cached, err := d.Cache.GetOrCompute(fp, func() (*types.GenerateOutput, error) {
			code, err := typegen.Generate(r.samples, r.opts)
			if err != nil {
				return nil, err
			}
			return &types.GenerateOutput{
				Code:         code.Code,
				RootTypeName: code.RootTypeName,
				Target:       string(code.Target),
				ClassCount:   code.ClassCount,
				SampleCount:  len(r.samples),
				Resource: &types.ResourceRef{
					URI:  ResultURI(fp),
					MIME: MimeForTarget(code.Target),
					Hint: "Read this resource to fetch the generated code again without re-sending samples.",
				},
			}, nil
		})
		if err != nil {
			return nil, types.GenerateOutput{}, WrapGenerateError(err)
		}

		// The cached value is shared; callers get their own copy.
		output := *result
		output.Cached = cached
		output.Selection = r.selected
		if output.RootTypeName != r.opts.RootName {
			output.Hint = fmt.Sprintf("The root type was declared as %s because %s is reserved.", output.RootTypeName, r.opts.RootName)
		}
		return nil, output, nil
	}
}

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/types"
)

// sampleSource is the part of a tool input that supplies JSON documents.
type sampleSource struct {
	JSON    string
	Samples []any
	JQ      string
	// Field names used in error messages.
	JSONField, SamplesField string
}

// loadSamples parses the documents of src and applies its jq selection.
// The returned summary is nil when no jq expression was given.
func (d *Deps) loadSamples(ctx context.Context, src sampleSource) ([]jsontree.Value, *types.SelectionSummary, error) {
	if src.JSONField == "" {
		src.JSONField, src.SamplesField = "json", "samples"
	}
	if strings.TrimSpace(src.JSON) == "" && len(src.Samples) == 0 {
		return nil, nil, ErrInvalidInput(fmt.Sprintf("either %s or %s is required", src.JSONField, src.SamplesField))
	}
	if len(src.JSON) > d.Config.MaxInputBytes {
		return nil, nil, ErrTooLarge(src.JSONField+" size in bytes", len(src.JSON), d.Config.MaxInputBytes)
	}

	var docs []jsontree.Value
	if strings.TrimSpace(src.JSON) != "" {
		parsed, err := jsontree.ParseAll([]byte(src.JSON))
		if err != nil {
			return nil, nil, WrapGenerateError(fmt.Errorf("%s: %w", src.JSONField, err))
		}
		docs = parsed
	}
	for i, s := range src.Samples {
		v, err := sampleFromAny(s)
		if err != nil {
			return nil, nil, ErrInvalidInput(fmt.Sprintf("%s[%d]: %v", src.SamplesField, i, err))
		}
		docs = append(docs, v)
	}

	if src.JQ == "" {
		if len(docs) > d.Config.MaxSamples {
			return nil, nil, ErrTooLarge("sample count", len(docs), d.Config.MaxSamples)
		}
		return docs, nil, nil
	}

	selection, err := d.Query.Select(ctx, docs, nil, src.JQ, false, d.Config.MaxSamples)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, err
		}
		return nil, nil, ErrInvalidInput(err.Error())
	}

	summary := &types.SelectionSummary{
		Expression:       src.JQ,
		InputDocuments:   len(docs),
		MatchedDocuments: len(selection.MatchedIndices),
		SelectedSamples:  len(selection.Values),
		Errors:           selection.Errors,
	}
	if len(selection.Values) == 0 {
		msg := fmt.Sprintf("jq expression %q selected no samples", src.JQ)
		if len(selection.Errors) > 0 {
			msg += ": " + selection.Errors[0]
		}
		return nil, summary, ErrInvalidInput(msg)
	}
	return selection.Values, summary, nil
}

// Package query provides jq-based selection of the sub-documents to infer types from.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
)

// Engine executes jq expressions against parsed JSON samples.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Selection contains the values a jq expression produced.
type Selection struct {
	Values         []jsontree.Value `json:"-"`
	Errors         []string         `json:"errors,omitempty"`          // Per-input errors (e.g., type mismatch)
	RawCount       int              `json:"raw_count"`                 // Count before deduplication
	MatchedIndices []int            `json:"matched_indices,omitempty"` // Indices of inputs that produced values
	LabelCounts    map[string]int   `json:"label_counts,omitempty"`    // Value count per label
}

// Select runs expression against every sample and collects the non-null
// results as new samples. Labels identify each input in error messages
// (e.g., file names); missing labels default to "samples[i]".
//
// Object members of selected values come back in sorted key order, since jq
// operates on unordered objects.
func (e *Engine) Select(ctx context.Context, samples []jsontree.Value, labels []string, expression string, deduplicate bool, maxResults int) (*Selection, error) {
	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	result := &Selection{
		Values:      make([]jsontree.Value, 0),
		Errors:      make([]string, 0),
		LabelCounts: make(map[string]int),
	}

	seen := make(map[string]bool)
	seenErrors := make(map[string]bool) // Deduplicate similar errors

	for i, sample := range samples {
		if maxResults > 0 && len(result.Values) >= maxResults {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		label := fmt.Sprintf("samples[%d]", i)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}

		iter := code.RunWithContext(ctx, toJQ(sample))
		matched := false
		for {
			if maxResults > 0 && len(result.Values) >= maxResults {
				break
			}

			v, ok := iter.Next()
			if !ok {
				break
			}

			if err, isErr := v.(error); isErr {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				errMsg := formatJQError(label, err)
				if !seenErrors[errMsg] {
					result.Errors = append(result.Errors, errMsg)
					seenErrors[errMsg] = true
				}
				continue
			}

			// Skip nil values
			if v == nil {
				continue
			}

			result.RawCount++
			result.LabelCounts[label]++
			matched = true

			if deduplicate {
				key := valueKey(v)
				if seen[key] {
					continue
				}
				seen[key] = true
			}

			value, err := jsontree.FromAny(v)
			if err != nil {
				errMsg := fmt.Sprintf("%s: %v", label, err)
				if !seenErrors[errMsg] {
					result.Errors = append(result.Errors, errMsg)
					seenErrors[errMsg] = true
				}
				continue
			}
			result.Values = append(result.Values, value)
		}

		if matched {
			result.MatchedIndices = append(result.MatchedIndices, i)
		}
	}

	return result, nil
}

func compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// toJQ converts a sample to the value types gojq accepts. Integer literals
// stay integers so that selection does not change their inferred width.
func toJQ(v jsontree.Value) any {
	switch v.Kind() {
	case jsontree.KindBool:
		return v.BoolValue()
	case jsontree.KindString:
		return v.Text()
	case jsontree.KindNumber:
		if n, err := strconv.ParseInt(v.Text(), 10, 64); err == nil {
			return int(n)
		}
		if n, ok := new(big.Int).SetString(v.Text(), 10); ok {
			return n
		}
		f, _ := strconv.ParseFloat(v.Text(), 64)
		return f
	case jsontree.KindArray:
		out := make([]any, v.Len())
		for i, item := range v.Items() {
			out[i] = toJQ(item)
		}
		return out
	case jsontree.KindObject:
		out := make(map[string]any, v.Len())
		for _, m := range v.Members() {
			out[m.Key] = toJQ(m.Value)
		}
		return out
	default:
		return nil
	}
}

// formatJQError creates a helpful error message for jq execution errors.
// It adds contextual hints to help users fix common issues.
//
// Runtime jq errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so string matching is used for the hints.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}

// valueKey creates a string key for deduplication.
func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case int, float64, *big.Int:
		return fmt.Sprintf("n:%v", val)
	case bool:
		return fmt.Sprintf("b:%v", val)
	case nil:
		return "null"
	default:
		// For complex types, marshal to JSON
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}

// ValidateExpression checks if a jq expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := compile(expression)
	return err
}

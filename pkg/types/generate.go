package types

import "github.com/usestring/typegen-mcp/pkg/jsonschema"

// GenerateOutput is the output type for the typegen_generate tool.
type GenerateOutput struct {
	Code         string            `json:"code"`
	RootTypeName string            `json:"root_type_name"`
	Target       string            `json:"target"`
	ClassCount   int               `json:"class_count"`
	SampleCount  int               `json:"sample_count"`
	Cached       bool              `json:"cached"`
	Resource     *ResourceRef      `json:"resource,omitempty"`
	Selection    *SelectionSummary `json:"selection,omitempty"`
	Hint         string            `json:"hint,omitempty"`
}

// PropertyInfo describes one property of an inferred class.
type PropertyInfo struct {
	JSONName string `json:"json_name"`
	Name     string `json:"name"`
	Type     string `json:"type"` // e.g. "long", "list<Item>?", "untyped?"
	Nullable bool   `json:"nullable"`
}

// ClassInfo describes one inferred class.
type ClassInfo struct {
	Name       string         `json:"name"`
	Properties []PropertyInfo `json:"properties,omitzero"`
}

// DescribeOutput is the output type for the typegen_describe tool.
type DescribeOutput struct {
	RootName    string                 `json:"root_name"`
	RootType    string                 `json:"root_type"`
	NeedsAlias  bool                   `json:"needs_alias"`
	Classes     []ClassInfo            `json:"classes,omitzero"`
	FieldStats  []jsonschema.FieldStat `json:"field_stats,omitzero"`
	SampleCount int                    `json:"sample_count"`
	Preview     any                    `json:"preview,omitempty"` // First sample, trimmed for display
	Selection   *SelectionSummary      `json:"selection,omitempty"`
	Hint        string                 `json:"hint,omitempty"`
}

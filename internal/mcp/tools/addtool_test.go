package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/types"
)

type nilSliceOutput struct {
	Items []string `json:"items"`
}

type omitzeroOutput struct {
	Items []string `json:"items,omitzero"`
}

type omitemptyOutput struct {
	Items []string `json:"items,omitempty"`
}

type pointerSliceOutput struct {
	Items *[]string `json:"items"`
}

type rawMessageOutput struct {
	Data json.RawMessage `json:"data,omitempty"`
}

type rawMessageSliceOutput struct {
	Items []json.RawMessage `json:"items,omitzero"`
}

type nestedRawMessageOutput struct {
	Nested struct {
		Schema json.RawMessage `json:"schema,omitempty"`
	} `json:"nested"`
}

type treeValueOutput struct {
	Sample *jsontree.Value `json:"sample,omitempty"`
}

type treeValueMapOutput struct {
	Samples map[string]jsontree.Value `json:"samples,omitempty"`
}

type hiddenTreeValueOutput struct {
	Count  int              `json:"count"`
	Values []jsontree.Value `json:"-"`
}

type anySliceOutput struct {
	Items []any `json:"items,omitzero"`
}

func TestCheckOutputSchema(t *testing.T) {
	tests := []struct {
		name   string
		check  func()
		panics bool
	}{
		{"nil slice", func() { CheckOutputSchema[nilSliceOutput]("t") }, true},
		{"omitzero slice", func() { CheckOutputSchema[omitzeroOutput]("t") }, false},
		{"omitempty slice", func() { CheckOutputSchema[omitemptyOutput]("t") }, false},
		// A nil pointer marshals as null, which the inferred schema allows.
		{"pointer to slice", func() { CheckOutputSchema[pointerSliceOutput]("t") }, false},
		{"any output", func() { CheckOutputSchema[any]("t") }, false},
		{"any slice", func() { CheckOutputSchema[anySliceOutput]("t") }, false},
		{"raw message", func() { CheckOutputSchema[rawMessageOutput]("t") }, true},
		{"raw message slice", func() { CheckOutputSchema[rawMessageSliceOutput]("t") }, true},
		{"nested raw message", func() { CheckOutputSchema[nestedRawMessageOutput]("t") }, true},
		{"tree value", func() { CheckOutputSchema[treeValueOutput]("t") }, true},
		{"tree value map", func() { CheckOutputSchema[treeValueMapOutput]("t") }, true},
		{"hidden tree values", func() { CheckOutputSchema[hiddenTreeValueOutput]("t") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.panics {
				assert.Panics(t, tt.check)
			} else {
				assert.NotPanics(t, tt.check)
			}
		})
	}
}

func TestCheckOutputSchema_toolOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[types.GenerateOutput](ToolNameGenerate)
		CheckOutputSchema[types.DescribeOutput](ToolNameDescribe)
		CheckOutputSchema[types.ValidateOutput](ToolNameValidate)
	})
}

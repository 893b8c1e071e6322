// Package untyped holds JSON values whose shape is only known at decode time.
//
// Generated Go types use Value for fields that were inferred from
// heterogeneous samples. Decoding resolves the shape structurally: objects
// become map[string]any, arrays []any, numbers int (32-bit range), int64 or
// float64, and strings, booleans and null their Go counterparts.
package untyped

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/go-json-experiment/json"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
)

// Value wraps an arbitrary JSON value.
type Value struct {
	V any
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	tree, err := jsontree.Parse(data)
	if err != nil {
		return err
	}
	v.V = FromTree(tree)
	return nil
}

// MarshalJSON implements json.Marshaler. Object keys are written in sorted order.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.V, json.Deterministic(true))
}

// IsNull reports whether the wrapped value is JSON null.
func (v Value) IsNull() bool { return v.V == nil }

func (v Value) String() string {
	if v.V == nil {
		return "null"
	}
	return fmt.Sprint(v.V)
}

// FromTree converts a parsed JSON value.
func FromTree(t jsontree.Value) any {
	switch t.Kind() {
	case jsontree.KindBool:
		return t.BoolValue()
	case jsontree.KindString:
		return t.Text()
	case jsontree.KindNumber:
		return number(t.Text())
	case jsontree.KindArray:
		out := make([]any, t.Len())
		for i, item := range t.Items() {
			out[i] = FromTree(item)
		}
		return out
	case jsontree.KindObject:
		out := make(map[string]any, t.Len())
		for _, m := range t.Members() {
			out[m.Key] = FromTree(m.Value)
		}
		return out
	default:
		return nil
	}
}

func number(literal string) any {
	if n, err := strconv.ParseInt(literal, 10, 32); err == nil {
		return int(n)
	}
	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(literal, 64); err == nil {
		return f
	}
	// Out of float64 range: keep the exact value.
	if n, ok := new(big.Float).SetString(literal); ok {
		return n
	}
	return literal
}

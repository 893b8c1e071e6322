// Package jsontree provides an immutable, order-preserving JSON value tree.
//
// Unlike decoding into map[string]any, object members keep their document
// order and numbers keep their original literal, which lets callers decide
// between 32-bit, 64-bit and floating point representations from the text.
package jsontree

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
)

// Kind identifies the JSON type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a single JSON value. The zero Value is JSON null.
// Values are never modified after construction; slices returned by accessors
// must be treated as read-only.
type Value struct {
	kind    Kind
	b       bool
	text    string // string contents or raw number literal
	items   []Value
	members []Member
}

// Member is one key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a JSON number carrying its literal text, e.g. "12" or "1.5e3".
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

// String returns a JSON string.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Array returns a JSON array of the given items.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Object returns a JSON object with members in the given order.
func Object(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{kind: KindObject, members: members}
}

// Kind reports the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsPrimitive reports whether v is a non-null scalar (boolean, number or string).
func (v Value) IsPrimitive() bool {
	return v.kind == KindBool || v.kind == KindNumber || v.kind == KindString
}

// BoolValue returns the boolean payload. Only meaningful for KindBool.
func (v Value) BoolValue() bool { return v.b }

// Text returns the string contents for KindString and the raw literal for KindNumber.
func (v Value) Text() string { return v.text }

// Items returns the elements of an array.
func (v Value) Items() []Value { return v.items }

// Members returns the members of an object in document order.
func (v Value) Members() []Member { return v.members }

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Get returns the value for key in an object.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// ToAny converts v to the representation produced by encoding/json:
// map[string]any, []any, string, float64, bool or nil.
func (v Value) ToAny() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case KindString:
		return v.text
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.ToAny()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.ToAny()
		}
		return out
	default:
		return nil
	}
}

// FromAny converts a decoded Go value (as produced by encoding/json or gojq)
// into a Value. Map keys are sorted since Go maps carry no order.
func FromAny(x any) (Value, error) {
	switch val := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Number(strconv.Itoa(val)), nil
	case int64:
		return Number(strconv.FormatInt(val, 10)), nil
	case float64:
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return Value{}, fmt.Errorf("jsontree: %v is not representable in JSON", val)
		}
		return Number(strconv.FormatFloat(val, 'g', -1, 64)), nil
	case *big.Int:
		return Number(val.String()), nil
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			converted, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			converted, err := FromAny(val[k])
			if err != nil {
				return Value{}, err
			}
			members[i] = Member{Key: k, Value: converted}
		}
		return Object(members...), nil
	default:
		return Value{}, fmt.Errorf("jsontree: unsupported Go type %T", x)
	}
}

// Package jsoncompact shrinks parsed JSON documents for display by trimming
// arrays, truncating strings and cutting deep nesting. Member order and
// number literals are kept.
package jsoncompact

import (
	"fmt"
	"unicode/utf8"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
)

// Options controls compaction.
type Options struct {
	MaxArrayItems int // Trim arrays to N items (0 = no limit)
	MaxStringLen  int // Truncate strings longer than N runes (0 = no limit)
	MaxDepth      int // Replace containers nested deeper than N (0 = unlimited)
}

// Default values for compaction options.
const (
	DefaultMaxArrayItems = 3
	DefaultMaxStringLen  = 200
	DefaultMaxDepth      = 6
)

// MaxDepthMarker replaces containers below the depth limit.
const MaxDepthMarker = "[max depth]"

// DefaultOptions returns the default compaction settings.
func DefaultOptions() *Options {
	return &Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Compact returns a trimmed copy of v. Trimmed arrays end with a string
// marker such as "... (7 more items)". If opts is nil, DefaultOptions() is
// used.
func Compact(v jsontree.Value, opts *Options) jsontree.Value {
	if opts == nil {
		opts = DefaultOptions()
	}
	return compact(v, opts, 0)
}

func compact(v jsontree.Value, opts *Options, depth int) jsontree.Value {
	switch v.Kind() {
	case jsontree.KindString:
		return jsontree.String(truncate(v.Text(), opts.MaxStringLen))
	case jsontree.KindArray, jsontree.KindObject:
		if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
			return jsontree.String(MaxDepthMarker)
		}
	default:
		return v
	}

	if v.Kind() == jsontree.KindObject {
		members := make([]jsontree.Member, len(v.Members()))
		for i, m := range v.Members() {
			members[i] = jsontree.Member{Key: m.Key, Value: compact(m.Value, opts, depth+1)}
		}
		return jsontree.Object(members...)
	}

	items := v.Items()
	keep := len(items)
	if opts.MaxArrayItems > 0 && keep > opts.MaxArrayItems {
		keep = opts.MaxArrayItems
	}
	out := make([]jsontree.Value, 0, keep+1)
	for _, item := range items[:keep] {
		out = append(out, compact(item, opts, depth+1))
	}
	if remaining := len(items) - keep; remaining > 0 {
		out = append(out, jsontree.String(fmt.Sprintf("... (%d more items)", remaining)))
	}
	return jsontree.Array(out...)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + fmt.Sprintf("... (%d more chars)", len(runes)-maxLen)
}

package jsonschema

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/typegraph"
)

// FieldStat contains per-field statistics computed across multiple JSON samples.
type FieldStat struct {
	Path          string   `json:"path"`                  // JSON path (e.g., "user.name", "items[].id")
	Type          string   `json:"type"`                  // Inferred type, e.g. "string?", "list<Item>"
	Frequency     float64  `json:"frequency"`             // Fraction of enclosing objects containing this field (0.0-1.0)
	Required      bool     `json:"required"`              // Present in every enclosing object and never null
	Nullable      bool     `json:"nullable"`              // At least one sample has null for this field
	DistinctCount int      `json:"distinct_count"`        // Number of distinct non-null scalar values observed
	Examples      []any    `json:"examples,omitempty"`    // Up to 3 example scalar values
	Format        string   `json:"format,omitempty"`      // Detected format: uuid, iso8601, url, email, enum
	EnumValues    []string `json:"enum_values,omitempty"` // All distinct values when format is "enum"

	// PresentWith lists the sibling fields that appear in exactly the same
	// objects as this one. Only set for fields missing from some objects; a
	// group of such fields usually marks one variant of a union.
	PresentWith []string `json:"present_with,omitempty"`
}

const (
	defaultMaxDepth       = 5
	maxExamples           = 3
	minSamplesForFormat   = 5
	maxEnumDistinctValues = 10
)

var (
	uuidRegex    = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	iso8601Regex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2})?`)
	urlRegex     = regexp.MustCompile(`^https?://`)
	emailRegex   = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

// ComputeFieldStats walks the graph's classes and computes per-field
// statistics by cross-referencing the samples the graph was inferred from.
// Returns a flat table in declaration order.
func ComputeFieldStats(g *typegraph.Graph, samples []jsontree.Value) []FieldStat {
	if g == nil || len(samples) == 0 {
		return nil
	}

	var stats []FieldStat
	walkType(g.Root, "", samples, 0, &stats)
	return stats
}

// walkType recursively walks t and collects field stats. samples are the
// values observed for t.
func walkType(t typegraph.Type, path string, samples []jsontree.Value, depth int, stats *[]FieldStat) {
	switch t := t.(type) {
	case typegraph.ClassRef:
		if depth > defaultMaxDepth {
			if path != "" {
				*stats = append(*stats, FieldStat{
					Path: path + " (truncated at depth limit)",
					Type: "...",
				})
			}
			return
		}
		props := t.Class.Properties()
		presence, objects := keyPresence(props, samples)
		for _, p := range props {
			fieldPath := p.JSONName
			if path != "" {
				fieldPath = path + "." + p.JSONName
			}
			stat := computeSingleFieldStat(fieldPath, p, samples)
			stat.PresentWith = presentWith(p.JSONName, props, presence, objects)
			*stats = append(*stats, stat)
			walkType(p.Type, fieldPath, collectNestedSamples(p.JSONName, samples), depth+1, stats)
		}
	case typegraph.ListOf:
		walkType(t.Elem, path+"[]", collectArrayItems(samples), depth, stats)
	}
}

// keyPresence maps each property key to the positions of the object samples
// that carry it, and returns the number of object samples.
func keyPresence(props []typegraph.Property, samples []jsontree.Value) (map[string]*roaring.Bitmap, uint64) {
	presence := make(map[string]*roaring.Bitmap, len(props))
	for _, p := range props {
		presence[p.JSONName] = roaring.New()
	}
	var objects uint64
	for i, sample := range samples {
		if sample.Kind() != jsontree.KindObject {
			continue
		}
		objects++
		for _, m := range sample.Members() {
			if bm, ok := presence[m.Key]; ok {
				bm.Add(uint32(i))
			}
		}
	}
	return presence, objects
}

// presentWith returns the other optional keys whose presence set equals key's.
func presentWith(key string, props []typegraph.Property, presence map[string]*roaring.Bitmap, objects uint64) []string {
	own := presence[key]
	if own.GetCardinality() == objects {
		return nil
	}
	var keys []string
	for _, p := range props {
		if p.JSONName != key && presence[p.JSONName].Equals(own) {
			keys = append(keys, p.JSONName)
		}
	}
	return keys
}

// computeSingleFieldStat computes statistics for a single property across all
// object samples.
func computeSingleFieldStat(path string, p typegraph.Property, samples []jsontree.Value) FieldStat {
	stat := FieldStat{
		Path: path,
		Type: p.Type.String(),
	}

	objects := 0
	presentCount := 0
	nullCount := 0
	distinctValues := make(map[string]bool)
	var examples []any
	var stringValues []string

	for _, sample := range samples {
		if sample.Kind() != jsontree.KindObject {
			continue
		}
		objects++

		val, exists := sample.Get(p.JSONName)
		if !exists {
			continue
		}
		presentCount++

		if val.IsNull() {
			nullCount++
			continue
		}
		// Nested structure is described by child field stats.
		if !val.IsPrimitive() {
			continue
		}

		key := val.Kind().String() + ":" + val.Text()
		if val.Kind() == jsontree.KindBool {
			key = strconv.FormatBool(val.BoolValue())
		}
		if !distinctValues[key] {
			distinctValues[key] = true
			if len(examples) < maxExamples {
				examples = append(examples, val.ToAny())
			}
		}

		if val.Kind() == jsontree.KindString {
			stringValues = append(stringValues, val.Text())
		}
	}

	if objects > 0 {
		stat.Frequency = float64(presentCount) / float64(objects)
	}
	stat.Required = presentCount == objects && nullCount == 0
	stat.Nullable = nullCount > 0
	stat.DistinctCount = len(distinctValues)
	stat.Examples = examples

	if prim, ok := p.Type.(typegraph.Primitive); ok && prim.Kind == typegraph.String && len(stringValues) >= minSamplesForFormat {
		stat.Format, stat.EnumValues = detectFormat(stringValues)
	}

	return stat
}

// detectFormat detects common value formats for string fields.
func detectFormat(values []string) (string, []string) {
	if len(values) == 0 {
		return "", nil
	}

	formats := []struct {
		name string
		re   *regexp.Regexp
	}{
		{"uuid", uuidRegex},
		{"iso8601", iso8601Regex},
		{"url", urlRegex},
		{"email", emailRegex},
	}
	for _, f := range formats {
		if allMatch(f.re, values) {
			return f.name, nil
		}
	}

	// Check Enum: <=10 distinct values
	distinct := make(map[string]bool)
	for _, v := range values {
		distinct[v] = true
	}
	if len(distinct) <= maxEnumDistinctValues {
		enumValues := make([]string, 0, len(distinct))
		for v := range distinct {
			enumValues = append(enumValues, v)
		}
		sort.Strings(enumValues)
		return "enum", enumValues
	}

	return "", nil
}

func allMatch(re *regexp.Regexp, values []string) bool {
	for _, v := range values {
		if !re.MatchString(v) {
			return false
		}
	}
	return true
}

// collectNestedSamples extracts the non-null value of a field from each sample object.
func collectNestedSamples(fieldName string, samples []jsontree.Value) []jsontree.Value {
	var nested []jsontree.Value
	for _, sample := range samples {
		if val, exists := sample.Get(fieldName); exists && !val.IsNull() {
			nested = append(nested, val)
		}
	}
	return nested
}

// collectArrayItems flattens the non-null items of every array sample.
func collectArrayItems(samples []jsontree.Value) []jsontree.Value {
	var items []jsontree.Value
	for _, sample := range samples {
		for _, item := range sample.Items() {
			if !item.IsNull() {
				items = append(items, item)
			}
		}
	}
	return items
}

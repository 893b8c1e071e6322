// Package codegen renders a normalized type graph as source declarations.
//
// Every target emits the same declarations in the same order: an alias for
// the root when the root is not a class carrying the root name, then one
// declaration per class in the graph's discovery order.
package codegen

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/usestring/typegen-mcp/pkg/typegraph"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"kotlinString": kotlinString,
}).ParseFS(templateFS, "templates/*.tmpl"))

// ErrUnknownTarget is returned for a target name that has no renderer.
var ErrUnknownTarget = errors.New("unknown target")

// Target names an output language.
type Target string

const (
	TargetGo         Target = "go"
	TargetKotlin     Target = "kotlin"
	TargetJSONSchema Target = "jsonschema"
)

// Targets lists every supported target, default first.
func Targets() []Target {
	return []Target{TargetGo, TargetKotlin, TargetJSONSchema}
}

// ParseTarget resolves a target name. The empty string selects TargetGo.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "go", "golang":
		return TargetGo, nil
	case "kotlin", "kt":
		return TargetKotlin, nil
	case "jsonschema", "json-schema", "schema":
		return TargetJSONSchema, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: go, kotlin, jsonschema)", ErrUnknownTarget, s)
	}
}

// Renderer turns a normalized graph into source text.
type Renderer interface {
	Target() Target
	// ReservedNames lists identifiers the target's output already gives a
	// meaning to. Generated classes must not use them.
	ReservedNames() []string
	Render(g *typegraph.Graph) ([]byte, error)
}

// Options configures renderers. Zero values select defaults.
type Options struct {
	// GoPackage is the package clause of generated Go files. Default "model".
	GoPackage string
	// GoUntypedImport is the import path of the untyped value package.
	GoUntypedImport string
	// KotlinUntypedPackage is the package providing UntypedAny and UntypedAnyNotNull.
	KotlinUntypedPackage string
	// Formatter formats generated Go source. Default goimports in format-only mode.
	Formatter Formatter
}

const (
	DefaultGoPackage            = "model"
	DefaultGoUntypedImport      = "github.com/usestring/typegen-mcp/pkg/untyped"
	DefaultKotlinUntypedPackage = "org.jetbrains.kotlinx.jupyter.serialization"
)

func (o Options) withDefaults() Options {
	if o.GoPackage == "" {
		o.GoPackage = DefaultGoPackage
	}
	if o.GoUntypedImport == "" {
		o.GoUntypedImport = DefaultGoUntypedImport
	}
	if o.KotlinUntypedPackage == "" {
		o.KotlinUntypedPackage = DefaultKotlinUntypedPackage
	}
	if o.Formatter == nil {
		o.Formatter = NewGoimportsFormatter()
	}
	return o
}

// New returns the renderer for target.
func New(target Target, opts Options) (Renderer, error) {
	opts = opts.withDefaults()
	switch target {
	case TargetGo:
		return &goRenderer{opts: opts}, nil
	case TargetKotlin:
		return &kotlinRenderer{opts: opts}, nil
	case TargetJSONSchema:
		return schemaRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, target)
	}
}

func execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}
	return b.String(), nil
}

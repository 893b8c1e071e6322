// Package typegen infers structural types from JSON samples and renders them
// as source declarations.
//
// The pipeline is pure: every call works on its own inputs and touches no
// shared state, so independent calls may run concurrently.
package typegen

import (
	"errors"
	"fmt"
	"slices"

	"github.com/usestring/typegen-mcp/pkg/codegen"
	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/naming"
	"github.com/usestring/typegen-mcp/pkg/typegraph"
)

// DefaultRootName is used when no root name is requested.
const DefaultRootName = "Response"

var (
	// ErrMalformedInput matches every JSON parse failure.
	ErrMalformedInput = jsontree.ErrMalformedInput
	// ErrInvalidRootName is returned for a root name that is not an identifier.
	ErrInvalidRootName = errors.New("invalid root type name")
	// ErrInvalidPackageName is returned for a Go package name that is not an identifier.
	ErrInvalidPackageName = errors.New("invalid package name")
	// ErrNoSamples is returned when there is nothing to infer from.
	ErrNoSamples = errors.New("no JSON samples")
)

// Options controls generation. The zero value generates Go into package
// "model" with root type "Response".
type Options struct {
	RootName      string
	ReservedNames []string
	Target        codegen.Target
	GoPackage     string
}

// GeneratedCode is the result of a generation run.
type GeneratedCode struct {
	Code string

	// RootTypeName is the declared name of the root type. It differs from the
	// requested name when that name was reserved.
	RootTypeName string
	Target       codegen.Target
	ClassCount   int

	// DeclaredNames lists every type the code declares: the root alias, if
	// any, then the classes in declaration order.
	DeclaredNames []string
}

// InferAndGenerate renders Go declarations for a single parsed document.
func InferAndGenerate(json jsontree.Value, requestedRootTypeName string, reservedNames []string) (*GeneratedCode, error) {
	return Generate([]jsontree.Value{json}, Options{
		RootName:      requestedRootTypeName,
		ReservedNames: reservedNames,
	})
}

// GenerateFromJSON parses data as one or more whitespace-separated JSON
// documents (so newline-delimited JSON works) and generates types that
// accept every document.
func GenerateFromJSON(data []byte, opts Options) (*GeneratedCode, error) {
	samples, err := jsontree.ParseAll(data)
	if err != nil {
		return nil, err
	}
	return Generate(samples, opts)
}

// Generate infers one root type accepting every sample and renders it.
func Generate(samples []jsontree.Value, opts Options) (*GeneratedCode, error) {
	target := opts.Target
	if target == "" {
		target = codegen.TargetGo
	}
	if opts.GoPackage != "" && !naming.IsIdentifier(opts.GoPackage) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPackageName, opts.GoPackage)
	}

	r, err := codegen.New(target, codegen.Options{GoPackage: opts.GoPackage})
	if err != nil {
		return nil, err
	}

	reserved := slices.Concat(opts.ReservedNames, r.ReservedNames())
	g, err := Build(samples, opts.RootName, reserved)
	if err != nil {
		return nil, err
	}

	code, err := r.Render(g)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", target, err)
	}

	declared := make([]string, 0, len(g.Classes)+1)
	if g.NeedsAlias() {
		declared = append(declared, string(g.RootName))
	}
	for _, c := range g.Classes {
		declared = append(declared, string(c.Name()))
	}

	return &GeneratedCode{
		Code:          string(code),
		RootTypeName:  string(g.RootName),
		Target:        target,
		ClassCount:    len(g.Classes),
		DeclaredNames: declared,
	}, nil
}

// Build infers and normalizes the type graph without rendering it.
func Build(samples []jsontree.Value, rootName string, reservedNames []string) (*typegraph.Graph, error) {
	name, err := ResolveRootName(rootName)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	reserved := naming.NewSet[naming.TypeName]()
	for _, r := range reservedNames {
		reserved.Add(naming.TypeName(r))
	}

	root := typegraph.InferRoot(name, samples)
	return typegraph.Normalize(root, name, reserved), nil
}

// ResolveRootName applies the default and validates the result.
func ResolveRootName(rootName string) (naming.TypeName, error) {
	if rootName == "" {
		return DefaultRootName, nil
	}
	if !naming.IsIdentifier(rootName) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRootName, rootName)
	}
	return naming.TypeName(rootName), nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/typegen-mcp/internal/query"
	"github.com/usestring/typegen-mcp/pkg/codegen"
	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/naming"
	"github.com/usestring/typegen-mcp/pkg/typegen"
)

const stdinName = "-"

// Runner executes a CLI run for the provided configuration.
type Runner interface {
	Run(ctx context.Context, cfg *Config) error
}

type defaultRunner struct {
	writer FileWriter
	stdin  io.Reader
	stdout io.Writer
	query  *query.Engine
	logger *slog.Logger
}

// NewRunner creates a Runner. Generated code goes to stdout unless the
// configuration names an output file or directory.
func NewRunner(writer FileWriter, stdin io.Reader, stdout io.Writer, logger *slog.Logger) Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &defaultRunner{
		writer: writer,
		stdin:  stdin,
		stdout: stdout,
		query:  query.NewEngine(),
		logger: logger,
	}
}

func (r *defaultRunner) Run(ctx context.Context, cfg *Config) error {
	if cfg.Each {
		return r.runEach(ctx, cfg)
	}
	return r.runMerged(ctx, cfg)
}

// runMerged treats every document of every input as a sample of one root type.
func (r *defaultRunner) runMerged(ctx context.Context, cfg *Config) error {
	inputs := cfg.Inputs
	if len(inputs) == 0 {
		inputs = []string{stdinName}
	}

	var samples []jsontree.Value
	var labels []string
	for _, name := range inputs {
		docs, err := r.read(name)
		if err != nil {
			return err
		}
		for i := range docs {
			labels = append(labels, docLabel(name, i, len(docs)))
		}
		samples = append(samples, docs...)
	}

	samples, err := r.selectSamples(ctx, cfg.JQ, samples, labels)
	if err != nil {
		return err
	}

	out, err := r.generate(samples, cfg, cfg.RootName, cfg.ReservedNames)
	if err != nil {
		return err
	}
	r.logger.Debug("generated types",
		"root", out.RootTypeName,
		"classes", out.ClassCount,
		"samples", len(samples),
	)

	if cfg.Out == "" {
		_, err := io.WriteString(r.stdout, out.Code)
		return err
	}
	return r.writer.Write(cfg.Out, []byte(out.Code))
}

// runEach generates one result per input file. Reading, jq selection and
// writing run in parallel; the first failure cancels the rest. Generation
// itself runs in input order for Go and Kotlin, whose files share one
// package: every type a file declares is reserved for the files after it.
func (r *defaultRunner) runEach(ctx context.Context, cfg *Config) error {
	if err := checkOutputPaths(cfg); err != nil {
		return err
	}

	inputs := make([][]jsontree.Value, len(cfg.Inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, name := range cfg.Inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			samples, err := r.loadFile(gctx, cfg.JQ, name)
			if err != nil {
				return err
			}
			inputs[i] = samples
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sharePackage := cfg.Target != codegen.TargetJSONSchema
	reserved := slices.Clone(cfg.ReservedNames)
	outputs := make([]*typegen.GeneratedCode, len(cfg.Inputs))
	for i, name := range cfg.Inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		rootName := cfg.RootName
		if rootName == "" {
			rootName = string(naming.JSONKeyToTypeName(fileStem(name)))
		}
		out, err := r.generate(inputs[i], cfg, rootName, reserved)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if sharePackage {
			reserved = append(reserved, out.DeclaredNames...)
		}
		outputs[i] = out
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, name := range cfg.Inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dest := cfg.OutputFilename(name)
			if err := r.writer.Write(dest, []byte(outputs[i].Code)); err != nil {
				return err
			}
			r.logger.Debug("generated types",
				"input", name,
				"output", dest,
				"root", outputs[i].RootTypeName,
				"classes", outputs[i].ClassCount,
			)
			return nil
		})
	}
	return g.Wait()
}

// loadFile reads one input file and applies the jq selection.
func (r *defaultRunner) loadFile(ctx context.Context, expr, name string) ([]jsontree.Value, error) {
	docs, err := r.read(name)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(docs))
	for i := range docs {
		labels[i] = docLabel(name, i, len(docs))
	}
	samples, err := r.selectSamples(ctx, expr, docs, labels)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return samples, nil
}

func (r *defaultRunner) generate(samples []jsontree.Value, cfg *Config, rootName string, reserved []string) (*typegen.GeneratedCode, error) {
	return typegen.Generate(samples, typegen.Options{
		RootName:      rootName,
		ReservedNames: reserved,
		Target:        cfg.Target,
		GoPackage:     cfg.GoPackage,
	})
}

// read parses every JSON document in the named file, or stdin for "-".
func (r *defaultRunner) read(name string) ([]jsontree.Value, error) {
	var src io.Reader
	if name == stdinName {
		src = r.stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}

	docs, err := jsontree.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(name), err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%s: %w", displayName(name), typegen.ErrNoSamples)
	}
	return docs, nil
}

// selectSamples applies the jq expression, if any. Per-document jq errors
// are logged and skipped; an expression that selects nothing is an error.
func (r *defaultRunner) selectSamples(ctx context.Context, expr string, samples []jsontree.Value, labels []string) ([]jsontree.Value, error) {
	if expr == "" {
		return samples, nil
	}
	sel, err := r.query.Select(ctx, samples, labels, expr, false, 0)
	if err != nil {
		return nil, fmt.Errorf("jq: %w", err)
	}
	for _, msg := range sel.Errors {
		r.logger.Warn("jq error", "error", msg)
	}
	if len(sel.Values) == 0 {
		return nil, fmt.Errorf("jq: %q selected no values", expr)
	}
	return sel.Values, nil
}

func docLabel(name string, i, total int) string {
	if total == 1 {
		return displayName(name)
	}
	return fmt.Sprintf("%s#%d", displayName(name), i+1)
}

func displayName(name string) string {
	if name == stdinName {
		return "<stdin>"
	}
	return name
}

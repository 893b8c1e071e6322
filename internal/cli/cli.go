// Package cli implements the typegen command line: flag parsing and the
// runner that turns JSON files into generated source files.
package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/usestring/typegen-mcp/internal/config"
	"github.com/usestring/typegen-mcp/pkg/codegen"
)

// ParseArgs parses command line arguments into Config. Flag defaults come
// from env, so TYPEGEN_* variables apply unless a flag overrides them.
func ParseArgs(args []string, env *config.Config) (*Config, error) {
	cfg := &Config{}
	var targetRaw, reservedRaw string

	fs := pflag.NewFlagSet("typegen", pflag.ContinueOnError)
	fs.StringVarP(&cfg.RootName, "root", "r", "", "root type name (default from TYPEGEN_ROOT_NAME, or the file name with --each)")
	fs.StringVarP(&targetRaw, "target", "t", env.Target, "output: go, kotlin, or jsonschema")
	fs.StringVar(&cfg.GoPackage, "package", env.GoPackage, "package clause for Go output")
	fs.StringVar(&reservedRaw, "reserved", "", "comma-separated type names the output must not declare")
	fs.StringVar(&cfg.JQ, "jq", "", "jq expression selecting the samples from each document")
	fs.StringVarP(&cfg.Out, "out", "o", "", "output file (default: stdout)")
	fs.BoolVar(&cfg.Each, "each", false, "generate one result per input file instead of merging them")
	fs.StringVar(&cfg.OutDir, "out-dir", "", "output directory for --each")
	fs.IntVarP(&cfg.Workers, "workers", "w", env.Workers, "parallel files with --each")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "log progress to stderr")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	target, err := codegen.ParseTarget(targetRaw)
	if err != nil {
		return nil, fmt.Errorf("--target: %w", err)
	}
	cfg.Target = target
	cfg.Inputs = fs.Args()
	cfg.ReservedNames = slices.Concat(env.ReservedNames, splitCommaList(reservedRaw))

	if cfg.RootName == "" && !cfg.Each {
		cfg.RootName = env.RootName
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("--workers must be at least 1")
	}

	if cfg.Each {
		if strings.TrimSpace(cfg.OutDir) == "" {
			return nil, fmt.Errorf("--out-dir is required with --each")
		}
		if cfg.Out != "" {
			return nil, fmt.Errorf("--out cannot be combined with --each")
		}
		if len(cfg.Inputs) == 0 || slices.Contains(cfg.Inputs, "-") {
			return nil, fmt.Errorf("--each requires input files")
		}
		if err := checkOutputPaths(cfg); err != nil {
			return nil, fmt.Errorf("--each: %w", err)
		}
	} else if cfg.OutDir != "" {
		return nil, fmt.Errorf("--out-dir requires --each")
	}

	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/usestring/typegen-mcp/pkg/codegen"
)

// Config stores CLI options for a single generation run.
type Config struct {
	RootName      string
	Target        codegen.Target
	GoPackage     string
	ReservedNames []string
	JQ            string
	Inputs        []string // files to read; empty or "-" means stdin
	Out           string   // output file; empty means stdout
	Each          bool     // one result per input file
	OutDir        string   // destination directory in Each mode
	Workers       int
	Verbose       bool
	ShowVersion   bool
}

// OutputFilename returns the output path for input in Each mode.
func (c *Config) OutputFilename(input string) string {
	return outputPath(c.OutDir, input, c.Target)
}

// checkOutputPaths rejects Each runs where two inputs map to the same output
// file. Paths are compared case-insensitively, so "User.json" and
// "user.json" collide on every file system.
func checkOutputPaths(c *Config) error {
	seen := make(map[string]string, len(c.Inputs))
	for _, input := range c.Inputs {
		key := strings.ToLower(filepath.Clean(c.OutputFilename(input)))
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%s and %s both write %s", prev, input, c.OutputFilename(input))
		}
		seen[key] = input
	}
	return nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/usestring/typegen-mcp/pkg/codegen"
)

// FileWriter abstracts file output so the runner can be tested without disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type osFileWriter struct{}

// NewFileWriter returns a FileWriter that writes to the local filesystem,
// creating parent directories as needed.
func NewFileWriter() FileWriter {
	return osFileWriter{}
}

func (osFileWriter) Write(filename string, data []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// extension returns the file extension for generated target output.
func extension(target codegen.Target) string {
	switch target {
	case codegen.TargetKotlin:
		return ".kt"
	case codegen.TargetJSONSchema:
		return ".schema.json"
	default:
		return ".go"
	}
}

// fileStem returns the base name of path without its extensions,
// e.g. "data/user.ndjson" -> "user".
func fileStem(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}

func outputPath(dir, input string, target codegen.Target) string {
	name := fileStem(input)
	if target == codegen.TargetGo {
		name = strings.ToLower(name)
	}
	return filepath.Join(dir, name+extension(target))
}

package cli

import (
	"testing"

	"github.com/usestring/typegen-mcp/internal/config"
	"github.com/usestring/typegen-mcp/pkg/codegen"
)

func testEnv() *config.Config {
	return &config.Config{
		Target:        config.DefaultTarget,
		RootName:      config.DefaultRootName,
		GoPackage:     config.DefaultGoPackage,
		ReservedNames: []string{"Envelope"},
		Workers:       2,
	}
}

func TestParseArgs_Success(t *testing.T) {
	cfg, err := ParseArgs([]string{
		"-r", "User",
		"-t", "kotlin",
		"--reserved", "Error, Meta",
		"--jq", ".data",
		"-o", "out.kt",
		"a.json", "b.json",
	}, testEnv())
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.RootName != "User" || cfg.Target != codegen.TargetKotlin {
		t.Fatalf("unexpected root/target: %#v", cfg)
	}
	if len(cfg.ReservedNames) != 3 || cfg.ReservedNames[0] != "Envelope" || cfg.ReservedNames[2] != "Meta" {
		t.Fatalf("reserved names = %v, want [Envelope Error Meta]", cfg.ReservedNames)
	}
	if len(cfg.Inputs) != 2 || cfg.Inputs[1] != "b.json" {
		t.Fatalf("inputs = %v", cfg.Inputs)
	}
	if cfg.JQ != ".data" || cfg.Out != "out.kt" {
		t.Fatalf("unexpected jq/out: %#v", cfg)
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs(nil, testEnv())
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.RootName != config.DefaultRootName {
		t.Fatalf("root = %q, want %q", cfg.RootName, config.DefaultRootName)
	}
	if cfg.Target != codegen.TargetGo || cfg.GoPackage != config.DefaultGoPackage {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.Workers != 2 {
		t.Fatalf("workers = %d, want 2", cfg.Workers)
	}
}

func TestParseArgs_EachLeavesRootUnset(t *testing.T) {
	cfg, err := ParseArgs([]string{"--each", "--out-dir", "gen", "a.json"}, testEnv())
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.RootName != "" {
		t.Fatalf("root = %q, want empty so file names are used", cfg.RootName)
	}
}

func TestParseArgs_Version(t *testing.T) {
	cfg, err := ParseArgs([]string{"-v", "-t", "nope"}, testEnv())
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if !cfg.ShowVersion {
		t.Fatal("expected ShowVersion")
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown target", []string{"-t", "rust"}},
		{"each without out-dir", []string{"--each", "a.json"}},
		{"each with out", []string{"--each", "--out-dir", "gen", "-o", "x.go", "a.json"}},
		{"each without files", []string{"--each", "--out-dir", "gen"}},
		{"each with stdin", []string{"--each", "--out-dir", "gen", "-"}},
		{"out-dir without each", []string{"--out-dir", "gen"}},
		{"zero workers", []string{"-w", "0"}},
		{"each with shared output", []string{"--each", "--out-dir", "gen", "a/x.json", "b/x.json"}},
		{"each with case-only difference", []string{"--each", "--out-dir", "gen", "-t", "kotlin", "User.json", "user.json"}},
		{"unknown flag", []string{"--nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArgs(tt.args, testEnv()); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestSplitCommaList(t *testing.T) {
	got := splitCommaList(" A, ,B ,")
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("splitCommaList() = %v", got)
	}
	if splitCommaList("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}

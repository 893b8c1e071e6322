// Package prompts contains MCP prompt implementations for typegen.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultTarget   string
	DefaultRootName string
}

package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typegen-mcp/internal/config"
)

// serverConfig collects option values. Overrides are applied on top of
// config after every option has run, so option order does not matter.
type serverConfig struct {
	config  *config.Config
	version string

	logLevel      string
	logFile       string
	defaultTarget string
	reservedNames []string

	noTools   bool
	noPrompts bool

	// extensions run after the builtin registrations, in option order.
	extensions []func(*mcp.Server, *Deps)
}

func (c *serverConfig) resolve() *config.Config {
	cfg := *c.config
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.logFile != "" {
		cfg.LogFile = c.logFile
	}
	if c.defaultTarget != "" {
		cfg.Target = c.defaultTarget
	}
	if len(c.reservedNames) > 0 {
		cfg.ReservedNames = append(append([]string(nil), cfg.ReservedNames...), c.reservedNames...)
	}
	return &cfg
}

// Option configures the server.
type Option func(*serverConfig)

// WithConfig replaces the environment-derived configuration.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		if c != nil {
			cfg.config = c
		}
	}
}

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) { cfg.logLevel = level }
}

// WithLogFile writes logs to a rotating file instead of stderr.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) { cfg.logFile = path }
}

// WithDefaultTarget sets the output used when a tool call names none.
func WithDefaultTarget(target string) Option {
	return func(cfg *serverConfig) { cfg.defaultTarget = target }
}

// WithReservedNames adds type names no tool call may declare.
func WithReservedNames(names ...string) Option {
	return func(cfg *serverConfig) {
		cfg.reservedNames = append(cfg.reservedNames, names...)
	}
}

// WithVersion sets the server version announced to clients.
func WithVersion(version string) Option {
	return func(cfg *serverConfig) { cfg.version = version }
}

// WithoutBuiltinTools leaves out typegen_generate, typegen_describe and
// typegen_validate.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) { cfg.noTools = true }
}

// WithoutBuiltinPrompts leaves out the generate_types prompt.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) { cfg.noPrompts = true }
}

// WithTool registers a custom tool. The output type is checked against the
// tool's output schema at registration, see AddTool.
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a custom tool whose handler is built from Deps, for
// tools that share the result cache, the jq engine or the configuration.
// See the package documentation for an example.
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a custom prompt.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a custom resource template, e.g.
// "custom://{id}".
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}

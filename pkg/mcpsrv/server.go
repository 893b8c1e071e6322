package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typegen-mcp/internal/config"
	"github.com/usestring/typegen-mcp/internal/logging"
	"github.com/usestring/typegen-mcp/internal/mcp"
	"github.com/usestring/typegen-mcp/internal/mcp/tools"
)

// Server is the typegen MCP server with its extension points.
type Server struct {
	internal *mcp.Server
	deps     *Deps
	closeLog func() error
}

// NewServer creates a server with the builtin typegen tools, resources and
// prompts. Configuration defaults come from the environment.
func NewServer(opts ...Option) (*Server, error) {
	sc := &serverConfig{config: config.Load()}
	for _, opt := range opts {
		opt(sc)
	}
	cfg := sc.resolve()

	closeLog, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	toolDeps, err := tools.NewDeps(cfg)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("create result cache: %w", err)
	}
	deps := &Deps{
		Config: toolDeps.Config,
		Cache:  toolDeps.Cache,
		Query:  toolDeps.Query,
	}

	var serverOpts []mcp.ServerOption
	if sc.version != "" {
		serverOpts = append(serverOpts, mcp.WithVersion(sc.version))
	}
	if !sc.noTools {
		serverOpts = append(serverOpts, mcp.WithBuiltinTools())
	}
	if !sc.noPrompts {
		serverOpts = append(serverOpts, mcp.WithBuiltinPrompts())
	}
	for _, ext := range sc.extensions {
		serverOpts = append(serverOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			ext(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, serverOpts...)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("create server: %w", err)
	}

	return &Server{
		internal: internal,
		deps:     deps,
		closeLog: closeLog,
	}, nil
}

// Run serves MCP over stdio until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// MCPServer returns the underlying SDK server, e.g. to connect it to a
// transport other than stdio.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}

// Close flushes and closes the log file, if any.
func (s *Server) Close() error {
	return s.closeLog()
}

// Deps returns the shared dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

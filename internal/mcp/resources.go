package mcp

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/typegen-mcp/internal/mcp/tools"
	"github.com/usestring/typegen-mcp/pkg/codegen"
)

// Resource URI scheme: typegen://
// Supported URIs:
//   typegen://result/{fingerprint}

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.ResultURIPrefix + "{fingerprint}",
		Name:        "Generated Types",
		Description: "Code produced by an earlier typegen_generate call, addressed by the resource URI it returned. Results live in a bounded in-memory cache and may expire.",
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant", "user"},
			Priority: 0.6,
		},
	}, s.handleResourceResult)
}

func (s *Server) handleResourceResult(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	fingerprint, err := parseResultURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	result, ok := s.deps.Cache.Get(fingerprint)
	if !ok {
		return nil, tools.ErrNotFound("result", fingerprint)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeForTarget(codegen.Target(result.Target)),
				Text:     result.Code,
			},
		},
	}, nil
}

// parseResultURI extracts the fingerprint from a typegen://result URI.
func parseResultURI(uri string) (string, error) {
	fingerprint, ok := strings.CutPrefix(uri, tools.ResultURIPrefix)
	if !ok {
		return "", tools.ErrInvalidInput("invalid URI scheme, expected " + tools.ResultURIPrefix)
	}
	if fingerprint == "" || strings.Contains(fingerprint, "/") {
		return "", tools.ErrInvalidInput("result URI requires a single fingerprint segment")
	}
	return fingerprint, nil
}

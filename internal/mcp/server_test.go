package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/typegen-mcp/internal/config"
	"github.com/usestring/typegen-mcp/internal/mcp/tools"
)

func testServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()
	t.Setenv("TYPEGEN_RESERVED_NAMES", "")
	deps, err := tools.NewDeps(config.Load())
	require.NoError(t, err)

	s, err := NewServer(deps, opts...)
	require.NoError(t, err)
	return s
}

func readResult(s *Server, uri string) (*sdkmcp.ReadResourceResult, error) {
	return s.handleResourceResult(context.Background(), &sdkmcp.ReadResourceRequest{
		Params: &sdkmcp.ReadResourceParams{URI: uri},
	})
}

func TestNewServer_RequiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)
}

func TestNewServer_CustomRegistration(t *testing.T) {
	called := false
	s := testServer(t, WithBuiltinTools(), WithBuiltinPrompts(), WithVersion("1.2.3"), WithCustomRegistration(func(srv *sdkmcp.Server) {
		called = true
	}))
	assert.True(t, called)
	assert.NotNil(t, s.MCPServer())
	assert.Equal(t, "1.2.3", s.version)
}

func TestResourceResult_RoundTrip(t *testing.T) {
	s := testServer(t, WithBuiltinTools())

	_, out, err := tools.ToolGenerate(s.deps)(context.Background(), nil, tools.GenerateInput{
		JSON:   `{"name": "x"}`,
		Target: "kotlin",
	})
	require.NoError(t, err)

	res, err := readResult(s, out.Resource.URI)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, out.Code, res.Contents[0].Text)
	assert.Equal(t, tools.MimeKotlin, res.Contents[0].MIMEType)
	assert.Equal(t, out.Resource.URI, res.Contents[0].URI)
}

func TestResourceResult_Errors(t *testing.T) {
	s := testServer(t, WithBuiltinTools())

	tests := []struct {
		uri  string
		code string
	}{
		{"typegen://result/0123456789abcdef0123456789abcdef", tools.ErrCodeNotFound},
		{"typegen://result/", tools.ErrCodeInvalidInput},
		{"typegen://result/a/b", tools.ErrCodeInvalidInput},
		{"other://result/abc", tools.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			_, err := readResult(s, tt.uri)
			var coded *tools.CodedError
			require.True(t, errors.As(err, &coded), "got %v", err)
			assert.Equal(t, tt.code, coded.Code)
		})
	}
}

func TestParseResultURI(t *testing.T) {
	fp, err := parseResultURI(tools.ResultURI("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", fp)
	assert.True(t, strings.HasPrefix(tools.ResultURI("abc"), "typegen://"))
}

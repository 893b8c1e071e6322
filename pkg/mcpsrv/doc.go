// Package mcpsrv provides an extensible MCP server for typegen.
//
// The server exposes the builtin typegen tools (typegen_generate,
// typegen_describe, typegen_validate), the typegen://result resource, and the
// generate_types prompt. Custom tools, prompts, and resources are added with
// functional options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add a tool that reuses the result cache:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(
//	        &mcp.Tool{Name: "cache_size", Description: "Number of cached results"},
//	        func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in struct{}) (*mcp.CallToolResult, SizeOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in struct{}) (*mcp.CallToolResult, SizeOutput, error) {
//	                return nil, SizeOutput{Count: d.Cache.Len()}, nil
//	            }
//	        },
//	    ),
//	)
//
// # Configuration
//
// Defaults come from the environment (see internal/config). Options override them:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/typegen-mcp.log"),
//	    mcpsrv.WithDefaultTarget("kotlin"),
//	)
package mcpsrv

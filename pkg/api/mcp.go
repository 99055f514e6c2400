package api

import (
	"log/slog"
	"strings"

	"github.com/hazyhaar/geonorm/pkg/geo"
	"github.com/hazyhaar/geonorm/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the resolver MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, store *geo.Store, logger *slog.Logger) {
	registerResolveCountry(srv, store, logger)
	registerResolveBatch(srv, store, logger)
	registerRefdataInfo(srv, store, logger)
}

func registerResolveCountry(srv *server.MCPServer, store *geo.Store, logger *slog.Logger) {
	tool := mcp.NewTool("resolve_country",
		mcp.WithDescription("Resolve a free-text country name to its canonical name and region. Reports how the match was made (alias, firstword, fuzzy) or that the value is unmapped."),
		mcp.WithString("value", mcp.Required(), mcp.Description("The raw country value to resolve")),
	)

	kit.RegisterMCPTool(srv, tool,
		kit.Chain(logging(logger, "resolve"))(resolveEndpoint(store)),
		func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			args := req.GetArguments()
			value, _ := args["value"].(string)
			return &kit.MCPDecodeResult{Request: &resolveReq{Value: value}}, nil
		})
}

func registerResolveBatch(srv *server.MCPServer, store *geo.Store, logger *slog.Logger) {
	tool := mcp.NewTool("resolve_batch",
		mcp.WithDescription("Resolve multiple free-text country names (up to 500) to canonical names and regions."),
		mcp.WithString("values", mcp.Required(), mcp.Description("Comma-separated list of raw country values")),
	)

	kit.RegisterMCPTool(srv, tool,
		kit.Chain(logging(logger, "resolve_batch"))(resolveBatchEndpoint(store)),
		func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			args := req.GetArguments()
			raw, _ := args["values"].(string)
			values := strings.Split(raw, ",")
			for i := range values {
				values[i] = strings.TrimSpace(values[i])
			}
			return &kit.MCPDecodeResult{Request: &batchReq{Values: values}}, nil
		})
}

func registerRefdataInfo(srv *server.MCPServer, store *geo.Store, logger *slog.Logger) {
	tool := mcp.NewTool("refdata_info",
		mcp.WithDescription("Describe the loaded reference data: source, version, license, and entry counts."),
	)

	kit.RegisterMCPTool(srv, tool,
		kit.Chain(logging(logger, "refdata"))(refdataEndpoint(store)),
		func(mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			return &kit.MCPDecodeResult{Request: nil}, nil
		})
}

package mcpserver

import (
	"context"

	"github.com/anukol/sitechat/internal/chat"
	"github.com/anukol/sitechat/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server exposes the chat service as MCP tools over stdio, so agent hosts
// can query the site knowledge the same way the HTTP API does.
type Server struct {
	service chat.Service
	server  *mcp.Server
	logger  *logger_i.Logger
}

func NewServer(service chat.Service) *Server {
	impl := &mcp.Implementation{
		Name:    "sitechat",
		Version: Version,
	}

	s := &Server{
		service: service,
		server:  mcp.NewServer(impl, nil),
		logger:  logger_i.NewLogger("MCPServer"),
	}

	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server running on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

package mcpserver

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"shoulders/internal/platform"
	"shoulders/pkg/logging"
)

// Server identity reported during initialisation.
const (
	ServerName    = "shoulders-mcp-server"
	ServerVersion = "0.2.0"
)

// MCPServer exposes platform operations as MCP tools.
type MCPServer struct {
	svc       *platform.Service
	repoRoot  string
	mcpServer *server.MCPServer
}

// NewMCPServer registers every tool, and the schema and example resources
// found under repoRoot.
func NewMCPServer(svc *platform.Service, repoRoot string) *MCPServer {
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	m := &MCPServer{
		svc:       svc,
		repoRoot:  repoRoot,
		mcpServer: mcpServer,
	}
	m.registerTools()
	m.registerResources()
	return m
}

// Server returns the underlying mcp-go server.
func (m *MCPServer) Server() *server.MCPServer {
	return m.mcpServer
}

// Start serves MCP over stdin/stdout until ctx is cancelled or the client
// disconnects. Logs must go to stderr while this runs.
func (m *MCPServer) Start(ctx context.Context) error {
	logging.Info("MCPServer", "Serving %s %s over stdio", ServerName, ServerVersion)
	return server.NewStdioServer(m.mcpServer).Listen(ctx, os.Stdin, os.Stdout)
}

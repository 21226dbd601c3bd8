package mcp

import (
	"fmt"

	"wikimcp/internal/config"
	"wikimcp/internal/logging"
	"wikimcp/internal/wiki"

	"github.com/mark3labs/mcp-go/server"
)

// ServerName identifies this server to MCP clients.
const ServerName = "wikimcp"

// Version is set at build time via ldflags.
var Version = "dev"

// Server represents an MCP server instance using mcp-go
type Server struct {
	opts      config.Options
	logger    *logging.AppLogger
	workflow  *wiki.Workflow
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(opts config.Options, logger *logging.AppLogger) *Server {
	return &Server{
		opts:     opts,
		logger:   logger,
		workflow: wiki.NewWorkflow(opts, logger),
	}
}

// Start initializes the MCP server, registers the wiki tools and serves
// requests over stdio until the client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Initializing MCP server", "name", ServerName, "version", Version)

	s.mcpServer = server.NewMCPServer(
		ServerName,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	s.registerTools()

	s.logger.Info("MCP server created, starting stdio communication")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Package mcp exposes the linter as MCP tools over stdio.
package mcp

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/darklint/pkg/linter"
)

// Server implements the darklint MCP server.
type Server struct {
	mcpServer *server.MCPServer
	linter    *linter.Linter
	root      string
	realRoot  string
	callLog   *CallLog
	logger    *slog.Logger
}

// NewServer creates a server that lints with l. lint_file resolves paths
// against root. callLog may be nil.
func NewServer(l *linter.Linter, root, version string, callLog *CallLog, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	// A missing root leaves lint_file with nothing to find.
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		realRoot = absRoot
	}

	s := &Server{linter: l, root: absRoot, realRoot: realRoot, callLog: callLog, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if callLog != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("darklint", version, opts...)
	s.mcpServer.AddTools(
		server.ServerTool{Tool: lintClassesTool(), Handler: s.handleLintClasses},
		server.ServerTool{Tool: lintSourceTool(), Handler: s.handleLintSource},
		server.ServerTool{Tool: lintFileTool(), Handler: s.handleLintFile},
		server.ServerTool{Tool: listRulesTool(), Handler: s.handleListRules},
	)

	return s, nil
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio", "root", s.root)
	return server.ServeStdio(s.mcpServer)
}

// ABOUTME: MCP server for scsnip integration with AI agents.
// ABOUTME: Provides tools, resources, and prompts for snippet management and playback.

package mcp

import (
	"context"
	"log/slog"

	"github.com/harper/scsnip/internal/dispatch"
	"github.com/harper/scsnip/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server
	store  store.Store
	sender dispatch.Sender
	logger *slog.Logger
}

func NewServer(st store.Store, sender dispatch.Sender, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{store: st, sender: sender, logger: logger}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "scsnip",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

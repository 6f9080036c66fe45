// ABOUTME: MCP resources for exposing snippets and the interpreter setup code.
// ABOUTME: Allows AI agents to read snippets via the scsnip:// URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/scsnip/internal/dispatch"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/ui"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	snippetURIPrefix = "scsnip://snippet/"
	setupURI         = "scsnip://setup"
)

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: snippetURIPrefix + "{id}",
			Name:        "Snippet",
			Description: "Access individual snippets by ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadSnippet,
	)

	s.server.AddResource(
		&mcp.Resource{
			URI:         setupURI,
			Name:        "Interpreter setup",
			Description: "sclang code that installs the /snippet/play and /snippet/stop receivers",
			MIMEType:    "text/plain",
		},
		s.handleReadSetup,
	)
}

func (s *Server) handleReadSnippet(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, ok := strings.CutPrefix(req.Params.URI, snippetURIPrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	sn, err := store.Find(s.store, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get snippet: %w", err)
	}

	content := fmt.Sprintf("# %s\n\n", sn.Name)
	content += fmt.Sprintf("**Folder:** %s\n\n", sn.Folder)
	if len(sn.Tags) > 0 {
		content += fmt.Sprintf("**Tags:** %s\n\n", strings.Join(sn.Tags, ", "))
	}
	content += ui.SnippetMarkdown(sn)

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		},
	}, nil
}

func (s *Server) handleReadSetup(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      setupURI,
				MIMEType: "text/plain",
				Text:     dispatch.SetupCode,
			},
		},
	}, nil
}

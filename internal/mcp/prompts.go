// ABOUTME: MCP prompts for common live-coding workflows.
// ABOUTME: Provides pre-configured prompts for authoring and organizing snippets.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "compose-snippet",
		Description: "Write a new SuperCollider snippet and save it",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "idea",
				Description: "What the snippet should sound like or do",
				Required:    true,
			},
			{
				Name:        "folder",
				Description: "Folder to save it in",
				Required:    false,
			},
		},
	}, s.getComposeSnippetPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-snippets",
		Description: "Get suggestions for folders and tags across the library",
	}, s.getOrganizeSnippetsPrompt)
}

func (s *Server) getComposeSnippetPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	idea, ok := req.Params.Arguments["idea"]
	if !ok || idea == "" {
		return nil, fmt.Errorf("idea argument is required")
	}
	folder, ok := req.Params.Arguments["folder"]
	if !ok || folder == "" {
		folder = "sketches"
	}

	template := fmt.Sprintf(`Write a SuperCollider snippet for: %s

Guidelines:
- A SynthDef should use a symbol name, e.g. SynthDef(\name, { ... }). It is added and started for you on play, so leave out .add and Synth(...).
- A Pdef or Pbind is played for you; leave out the trailing .play.
- Any other expression is wrapped in ( ... ).play unless it already calls .play.

Steps:
1. Use list_snippets with a search term to check for something similar.
2. Use add_snippet to save it in the folder %q with a short description and a few tags.
3. Use play_snippet with the new ID to hear it, then stop_all when done.`, idea, folder)

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: template,
				},
			},
		},
	}, nil
}

func (s *Server) getOrganizeSnippetsPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `Help me organize my SuperCollider snippets by:

1. Use list_folders and list_tags to see the current structure
2. Use list_snippets to review names and tags in each folder
3. Suggest folders that could be merged or renamed (rename_folder)
4. Suggest tags for snippets that have none, using update_snippet

Please give specific recommendations with snippet IDs.`

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: template,
				},
			},
		},
	}, nil
}

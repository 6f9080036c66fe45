// ABOUTME: MCP tools for snippet CRUD, folders, tags, and playback.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/scsnip/internal/codec"
	"github.com/harper/scsnip/internal/models"
	"github.com/harper/scsnip/internal/query"
	"github.com/harper/scsnip/internal/store"
	"github.com/harper/scsnip/internal/wrap"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// snippetSummary is the list view returned by list_snippets.
type snippetSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Folder       string    `json:"folder"`
	Tags         []string  `json:"tags"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

func (s *Server) registerTools() {
	// list_snippets
	s.server.AddTool(&mcp.Tool{
		Name:        "list_snippets",
		Description: "List snippets, newest first. A tag filter overrides the folder filter.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"search": {"type": "string", "description": "Case-insensitive text in name, code, tags, or description"},
				"folder": {"type": "string", "description": "Exact folder (subfolders are not included)"},
				"tag": {"type": "string", "description": "Exact tag"},
				"limit": {"type": "integer", "description": "Max results", "default": 50}
			}
		}`),
	}, s.handleListSnippets)

	// get_snippet
	s.server.AddTool(&mcp.Tool{
		Name:        "get_snippet",
		Description: "Get a snippet by ID or prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Snippet ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetSnippet)

	// add_snippet
	s.server.AddTool(&mcp.Tool{
		Name:        "add_snippet",
		Description: "Create a new SuperCollider snippet",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Snippet name"},
				"code": {"type": "string", "description": "SuperCollider source"},
				"folder": {"type": "string", "description": "Relative folder path, e.g. synths/pads"},
				"description": {"type": "string", "description": "Optional description"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Optional tags"}
			},
			"required": ["name", "code", "folder"]
		}`),
	}, s.handleAddSnippet)

	// update_snippet
	s.server.AddTool(&mcp.Tool{
		Name:        "update_snippet",
		Description: "Update a snippet. Omitted fields keep their current value.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Snippet ID or prefix"},
				"name": {"type": "string", "description": "New name"},
				"code": {"type": "string", "description": "New source"},
				"folder": {"type": "string", "description": "Move to this folder"},
				"description": {"type": "string", "description": "New description (empty clears it)"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Replacement tags"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateSnippet)

	// duplicate_snippet
	s.server.AddTool(&mcp.Tool{
		Name:        "duplicate_snippet",
		Description: "Copy a snippet under a new ID with \"(Copy)\" appended to its name",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Snippet ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDuplicateSnippet)

	// delete_snippet
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_snippet",
		Description: "Delete a snippet",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Snippet ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteSnippet)

	// list_tags
	s.server.AddTool(&mcp.Tool{
		Name:        "list_tags",
		Description: "List every tag with the number of snippets using it",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)

	// list_folders
	s.server.AddTool(&mcp.Tool{
		Name:        "list_folders",
		Description: "List every folder in tree order",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListFolders)

	// create_folder
	s.server.AddTool(&mcp.Tool{
		Name:        "create_folder",
		Description: "Create a folder (and any missing parents)",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"folder": {"type": "string", "description": "Relative folder path"}
			},
			"required": ["folder"]
		}`),
	}, s.handleCreateFolder)

	// rename_folder
	s.server.AddTool(&mcp.Tool{
		Name:        "rename_folder",
		Description: "Rename or move a folder; snippets beneath it follow",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"from": {"type": "string", "description": "Existing folder"},
				"to": {"type": "string", "description": "New folder path (must not exist)"}
			},
			"required": ["from", "to"]
		}`),
	}, s.handleRenameFolder)

	// play_snippet
	s.server.AddTool(&mcp.Tool{
		Name:        "play_snippet",
		Description: "Send a stored snippet, or raw code, to the running SuperCollider interpreter",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Snippet ID or prefix"},
				"code": {"type": "string", "description": "Raw code to play instead of a stored snippet"}
			}
		}`),
	}, s.handlePlaySnippet)

	// stop_all
	s.server.AddTool(&mcp.Tool{
		Name:        "stop_all",
		Description: "Stop all patterns and free all synths",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleStopAll)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to encode result: %v", err)
	}
	return textResult(string(data))
}

func unmarshalArgs(req *mcp.CallToolRequest, v any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

// Tool handlers.
func (s *Server) handleListSnippets(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Search string `json:"search"`
		Folder string `json:"folder"`
		Tag    string `json:"tag"`
		Limit  int    `json:"limit"`
	}
	params.Limit = 50 // default
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	filter, err := store.CleanFilter(query.Filter{SearchText: params.Search, Folder: params.Folder, Tag: params.Tag})
	if err != nil {
		return errorResult("invalid filter: %v", err), nil
	}

	all, err := s.store.LoadAll()
	if err != nil {
		return errorResult("failed to load snippets: %v", err), nil
	}
	filtered := query.Apply(all, filter)
	if params.Limit > 0 && len(filtered) > params.Limit {
		filtered = filtered[:params.Limit]
	}

	out := make([]snippetSummary, 0, len(filtered))
	for _, sn := range filtered {
		out = append(out, snippetSummary{
			ID:           sn.ID.String(),
			Name:         sn.Name,
			Folder:       sn.Folder,
			Tags:         sn.Tags,
			ModifiedDate: sn.ModifiedDate,
		})
	}
	return jsonResult(out), nil
}

func (s *Server) handleGetSnippet(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	sn, err := store.Find(s.store, params.ID)
	if err != nil {
		return errorResult("failed to get snippet: %v", err), nil
	}
	data, err := codec.Encode(sn)
	if err != nil {
		return errorResult("failed to encode snippet: %v", err), nil
	}
	return textResult(string(data)), nil
}

func (s *Server) handleAddSnippet(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Name        string   `json:"name"`
		Code        string   `json:"code"`
		Folder      string   `json:"folder"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	folder, err := store.CleanFolder(params.Folder)
	if err != nil {
		return errorResult("%v", err), nil
	}
	sn, err := models.NewSnippet(params.Name, models.StringPtr(params.Description), params.Code, models.DedupeTags(params.Tags), folder)
	if err != nil {
		return errorResult("%v", err), nil
	}
	if _, err := s.store.Save(sn); err != nil {
		return errorResult("failed to save snippet: %v", err), nil
	}

	s.logger.Info("snippet created", "id", sn.ID, "folder", sn.Folder)
	return textResult(fmt.Sprintf("Created snippet %s", sn.ID.String())), nil
}

func (s *Server) handleUpdateSnippet(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID          string    `json:"id"`
		Name        *string   `json:"name"`
		Code        *string   `json:"code"`
		Folder      *string   `json:"folder"`
		Description *string   `json:"description"`
		Tags        *[]string `json:"tags"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	current, err := store.Find(s.store, params.ID)
	if err != nil {
		return errorResult("failed to find snippet: %v", err), nil
	}

	name, code, folder, description, tags := current.Name, current.Code, current.Folder, current.Description, current.Tags
	if params.Name != nil {
		name = *params.Name
	}
	if params.Code != nil {
		code = *params.Code
	}
	if params.Folder != nil {
		if folder, err = store.CleanFolder(*params.Folder); err != nil {
			return errorResult("%v", err), nil
		}
	}
	if params.Description != nil {
		description = models.StringPtr(*params.Description)
	}
	if params.Tags != nil {
		tags = models.DedupeTags(*params.Tags)
	}

	updated, err := current.WithUpdatedContent(name, description, code, tags, folder)
	if err != nil {
		return errorResult("%v", err), nil
	}
	if _, err := s.store.Save(updated); err != nil {
		return errorResult("failed to save snippet: %v", err), nil
	}
	if updated.Folder != current.Folder {
		if err := s.store.Delete(current.ID, current.Folder); err != nil {
			return errorResult("saved, but failed to remove the old copy: %v", err), nil
		}
	}

	return textResult(fmt.Sprintf("Updated snippet %s", updated.ShortID())), nil
}

func (s *Server) handleDuplicateSnippet(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	current, err := store.Find(s.store, params.ID)
	if err != nil {
		return errorResult("failed to find snippet: %v", err), nil
	}
	dup, err := current.Duplicate()
	if err != nil {
		return errorResult("%v", err), nil
	}
	if _, err := s.store.Save(dup); err != nil {
		return errorResult("failed to save snippet: %v", err), nil
	}
	return textResult(fmt.Sprintf("Created snippet %s (%s)", dup.ID.String(), dup.Name)), nil
}

func (s *Server) handleDeleteSnippet(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	sn, err := store.Find(s.store, params.ID)
	if err != nil {
		return errorResult("failed to find snippet: %v", err), nil
	}
	if err := s.store.Delete(sn.ID, sn.Folder); err != nil {
		return errorResult("failed to delete snippet: %v", err), nil
	}
	return textResult(fmt.Sprintf("Deleted snippet %s", sn.ShortID())), nil
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all, err := s.store.LoadAll()
	if err != nil {
		return errorResult("failed to load snippets: %v", err), nil
	}

	type tagCount struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	}
	out := []tagCount{}
	for _, tc := range query.TagCounts(all) {
		out = append(out, tagCount{Tag: tc.Tag, Count: tc.Count})
	}
	return jsonResult(out), nil
}

func (s *Server) handleListFolders(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folders, err := s.store.Folders()
	if err != nil {
		return errorResult("failed to list folders: %v", err), nil
	}
	return jsonResult(folders), nil
}

func (s *Server) handleCreateFolder(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Folder string `json:"folder"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	if err := s.store.CreateFolder(params.Folder); err != nil {
		return errorResult("failed to create folder: %v", err), nil
	}
	return textResult(fmt.Sprintf("Created folder %s", params.Folder)), nil
}

func (s *Server) handleRenameFolder(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	if err := s.store.RenameFolder(params.From, params.To); err != nil {
		return errorResult("failed to rename folder: %v", err), nil
	}
	return textResult(fmt.Sprintf("Renamed folder %s to %s", params.From, params.To)), nil
}

func (s *Server) handlePlaySnippet(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	code := params.Code
	if params.ID != "" {
		sn, err := store.Find(s.store, params.ID)
		if err != nil {
			return errorResult("failed to find snippet: %v", err), nil
		}
		code = sn.Code
	}
	if code == "" {
		return errorResult("either id or code is required"), nil
	}

	wrapped := wrap.Wrap(code)
	if err := s.sender.Play(wrapped); err != nil {
		return errorResult("failed to send: %v", err), nil
	}
	return textResult("Sent to SuperCollider:\n" + wrapped), nil
}

func (s *Server) handleStopAll(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.sender.Stop(); err != nil {
		return errorResult("failed to send stop: %v", err), nil
	}
	return textResult("Stop sent"), nil
}

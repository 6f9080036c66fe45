// ABOUTME: Store-level helpers for lookup by id prefix, moving, import, and export.
// ABOUTME: They work against any Store so the CLI and MCP server share one code path.

package store

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/codec"
	"github.com/harper/scsnip/internal/models"
)

var ErrPrefixTooShort = errors.New("prefix must be at least 6 characters")
var ErrAmbiguousPrefix = errors.New("prefix matches multiple snippets")

// Format names an export encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", apperror.InvalidArgument("parse format", fmt.Sprintf("unknown format %q (want json or md)", s))
}

// Find resolves a snippet by full id or by an id prefix of at least six
// characters.
func Find(st Store, ref string) (*models.Snippet, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if len(ref) < 6 {
		return nil, ErrPrefixTooShort
	}

	all, err := st.LoadAll()
	if err != nil {
		return nil, err
	}
	var matches []*models.Snippet
	for _, s := range all {
		id := s.ID.String()
		if id == ref {
			return s, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return nil, apperror.NotFound("snippet", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(matches))
	}
}

// Move places a snippet in another folder. The modified date is refreshed and
// the copy in the old folder is removed once the new one is stored.
func Move(st Store, s *models.Snippet, folder string) (*models.Snippet, error) {
	dest, err := CleanFolder(folder)
	if err != nil {
		return nil, err
	}
	moved, err := s.WithUpdatedContent(s.Name, s.Description, s.Code, s.Tags, dest)
	if err != nil {
		return nil, err
	}
	saved, err := st.Save(moved)
	if err != nil {
		return nil, err
	}
	if s.Folder != dest {
		if err := st.Delete(s.ID, s.Folder); err != nil {
			return saved, err
		}
	}
	return saved, nil
}

// Import decodes a JSON or markdown document, places it in folder, and saves
// it. The snippet keeps its id, so importing a file twice overwrites it.
func Import(st Store, data []byte, folder string) (*models.Snippet, error) {
	dest, err := CleanFolder(folder)
	if err != nil {
		return nil, err
	}

	var s *models.Snippet
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		s, err = codec.Decode(data)
	} else {
		s, err = codec.DecodeMarkdown(data)
	}
	if err != nil {
		return nil, err
	}
	return st.Save(s.WithFolder(dest))
}

// Export encodes a snippet in the requested format.
func Export(s *models.Snippet, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return codec.EncodeMarkdown(s)
	case FormatJSON, "":
		return codec.Encode(s)
	}
	return nil, apperror.InvalidArgument("export snippet", fmt.Sprintf("unknown format %q", format))
}

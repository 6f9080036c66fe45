// ABOUTME: Markdown export format with YAML frontmatter for snippets.
// ABOUTME: Code is kept verbatim inside a fence longer than any backtick run it contains.

package codec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/models"
	"gopkg.in/yaml.v3"
)

type frontmatter struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Tags        []string  `yaml:"tags"`
	Folder      string    `yaml:"folder"`
	Created     time.Time `yaml:"created"`
	Modified    time.Time `yaml:"modified"`
}

func EncodeMarkdown(s *models.Snippet) ([]byte, error) {
	fm := frontmatter{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.DescriptionText(),
		Tags:        s.Tags,
		Folder:      s.Folder,
		Created:     s.CreatedDate.UTC(),
		Modified:    s.ModifiedDate.UTC(),
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	fence := fenceFor(s.Code)
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(head)
	sb.WriteString("---\n\n")
	sb.WriteString(fence + "\n")
	sb.WriteString(s.Code)
	sb.WriteString("\n" + fence + "\n")
	return []byte(sb.String()), nil
}

// DecodeMarkdown reads a document written by EncodeMarkdown. Missing ids and
// dates are filled in so hand-written files can be imported; the folder may
// be empty and is expected to be set by the caller.
func DecodeMarkdown(data []byte) (*models.Snippet, error) {
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		return nil, apperror.Decode("", errors.New("missing frontmatter"))
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return nil, apperror.Decode("", errors.New("unterminated frontmatter"))
	}
	head, body := rest[:end+1], rest[end+len("\n---\n"):]

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		return nil, apperror.Decode("", err)
	}
	if strings.TrimSpace(fm.Name) == "" {
		return nil, apperror.Decode("", errors.New("missing required fields: name"))
	}

	code, err := fencedCode(strings.TrimLeft(body, "\n"))
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(fm.ID)
	if err != nil {
		id = uuid.New()
	}
	created, modified := fm.Created.UTC(), fm.Modified.UTC()
	if fm.Created.IsZero() {
		created = time.Now().UTC()
	}
	if fm.Modified.IsZero() || modified.Before(created) {
		modified = created
	}

	tags := fm.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.Snippet{
		ID:           id,
		Name:         fm.Name,
		Description:  models.StringPtr(fm.Description),
		Code:         code,
		Tags:         tags,
		Folder:       fm.Folder,
		CreatedDate:  created,
		ModifiedDate: modified,
	}, nil
}

func fencedCode(body string) (string, error) {
	n := 0
	for n < len(body) && body[n] == '`' {
		n++
	}
	if n < 3 {
		code := strings.TrimSpace(body)
		if code == "" {
			return "", apperror.Decode("", errors.New("missing required fields: code"))
		}
		return code, nil
	}
	fence := body[:n]
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return "", apperror.Decode("", errors.New("unterminated code fence"))
	}
	rest := body[nl+1:]
	end := strings.LastIndex(rest, "\n"+fence)
	if end < 0 {
		return "", apperror.Decode("", errors.New("unterminated code fence"))
	}
	code := rest[:end]
	if strings.TrimSpace(code) == "" {
		return "", apperror.Decode("", errors.New("missing required fields: code"))
	}
	return code, nil
}

func fenceFor(code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

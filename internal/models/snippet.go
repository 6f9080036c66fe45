// ABOUTME: Snippet model representing one stored unit of code with metadata.
// ABOUTME: Snippets are values; updates construct a new Snippet with a fresh modified date.

package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/scsnip/internal/apperror"
)

// CopySuffix is appended to the name of a duplicated snippet.
const CopySuffix = " (Copy)"

type Snippet struct {
	ID           uuid.UUID
	Name         string
	Description  *string
	Code         string
	Tags         []string
	Folder       string
	CreatedDate  time.Time
	ModifiedDate time.Time
}

// now returns wall-clock time in UTC; snippets never carry local offsets.
var now = func() time.Time { return time.Now().UTC() }

// NewSnippet creates a snippet with a fresh id and matching created and
// modified dates.
func NewSnippet(name string, description *string, code string, tags []string, folder string) (*Snippet, error) {
	if err := requireContent(name, code, folder); err != nil {
		return nil, err
	}
	t := now()
	return &Snippet{
		ID:           uuid.New(),
		Name:         name,
		Description:  copyString(description),
		Code:         code,
		Tags:         copyTags(tags),
		Folder:       folder,
		CreatedDate:  t,
		ModifiedDate: t,
	}, nil
}

// WithUpdatedContent returns a new snippet that keeps the id and created date.
func (s *Snippet) WithUpdatedContent(name string, description *string, code string, tags []string, folder string) (*Snippet, error) {
	if err := requireContent(name, code, folder); err != nil {
		return nil, err
	}
	modified := now()
	if modified.Before(s.CreatedDate) {
		modified = s.CreatedDate
	}
	return &Snippet{
		ID:           s.ID,
		Name:         name,
		Description:  copyString(description),
		Code:         code,
		Tags:         copyTags(tags),
		Folder:       folder,
		CreatedDate:  s.CreatedDate,
		ModifiedDate: modified,
	}, nil
}

// Duplicate creates an independent copy with a new id and a "(Copy)" name.
func (s *Snippet) Duplicate() (*Snippet, error) {
	return NewSnippet(s.Name+CopySuffix, s.Description, s.Code, s.Tags, s.Folder)
}

// WithFolder returns a copy placed in another folder. Dates are unchanged so
// that moving a folder does not reorder the list.
func (s *Snippet) WithFolder(folder string) *Snippet {
	c := s.Clone()
	c.Folder = folder
	return c
}

func (s *Snippet) Clone() *Snippet {
	c := *s
	c.Description = copyString(s.Description)
	c.Tags = copyTags(s.Tags)
	return &c
}

// Validate checks the invariants every stored snippet must satisfy.
func (s *Snippet) Validate() error {
	if s.ID == uuid.Nil {
		return apperror.InvalidArgument("validate snippet", "id is required")
	}
	if err := requireContent(s.Name, s.Code, s.Folder); err != nil {
		return err
	}
	if s.CreatedDate.IsZero() || s.ModifiedDate.IsZero() {
		return apperror.InvalidArgument("validate snippet", "createdDate and modifiedDate are required")
	}
	if s.ModifiedDate.Before(s.CreatedDate) {
		return apperror.InvalidArgument("validate snippet", "modifiedDate must not be before createdDate")
	}
	return nil
}

// Equal compares snippets by identity.
func (s *Snippet) Equal(other *Snippet) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID
}

// DescriptionText returns the description or "" when absent.
func (s *Snippet) DescriptionText() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

func (s *Snippet) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

func (s *Snippet) String() string {
	return s.Name
}

// ShortID is the six character prefix shown in listings.
func (s *Snippet) ShortID() string {
	return s.ID.String()[:6]
}

func requireContent(name, code, folder string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return apperror.InvalidArgument("validate snippet", "name is required")
	case strings.TrimSpace(code) == "":
		return apperror.InvalidArgument("validate snippet", "code is required")
	case strings.TrimSpace(folder) == "":
		return apperror.InvalidArgument("validate snippet", "folder is required")
	}
	return nil
}

func copyTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	return slices.Clone(tags)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr turns "" into nil and anything else into a pointer, the way
// shells pass an optional description.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

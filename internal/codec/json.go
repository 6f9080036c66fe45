// ABOUTME: JSON document encoding for snippets with stable field names.
// ABOUTME: Timestamps are ISO-8601 in UTC; unknown fields are ignored on read.

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/models"
)

type document struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Code         string    `json:"code"`
	Tags         []string  `json:"tags"`
	Folder       string    `json:"folder"`
	CreatedDate  time.Time `json:"createdDate"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

// incoming uses pointers so a missing field can be told apart from an empty one.
type incoming struct {
	ID           *string    `json:"id"`
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Code         *string    `json:"code"`
	Tags         []string   `json:"tags"`
	Folder       *string    `json:"folder"`
	CreatedDate  *time.Time `json:"createdDate"`
	ModifiedDate *time.Time `json:"modifiedDate"`
}

func Encode(s *models.Snippet) ([]byte, error) {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	doc := document{
		ID:           s.ID.String(),
		Name:         s.Name,
		Description:  s.Description,
		Code:         s.Code,
		Tags:         tags,
		Folder:       s.Folder,
		CreatedDate:  s.CreatedDate.UTC(),
		ModifiedDate: s.ModifiedDate.UTC(),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode snippet %s: %w", s.ID, err)
	}
	return buf.Bytes(), nil
}

// Decode parses one snippet document. Every failure wraps apperror.ErrDecode.
func Decode(data []byte) (*models.Snippet, error) {
	var in incoming
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, apperror.Decode("", err)
	}

	var missing []string
	for name, present := range map[string]bool{
		"id":           in.ID != nil,
		"name":         in.Name != nil,
		"code":         in.Code != nil,
		"folder":       in.Folder != nil,
		"createdDate":  in.CreatedDate != nil,
		"modifiedDate": in.ModifiedDate != nil,
	} {
		if !present {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, apperror.Decode("", fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	id, err := uuid.Parse(*in.ID)
	if err != nil {
		return nil, apperror.Decode("", fmt.Errorf("invalid id: %w", err))
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	s := &models.Snippet{
		ID:           id,
		Name:         *in.Name,
		Description:  in.Description,
		Code:         *in.Code,
		Tags:         tags,
		Folder:       *in.Folder,
		CreatedDate:  in.CreatedDate.UTC(),
		ModifiedDate: in.ModifiedDate.UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, apperror.Decode("", fmt.Errorf("invalid snippet: %v", err))
	}
	return s, nil
}

// IsDecodeError reports whether err came from Decode or DecodeMarkdown.
func IsDecodeError(err error) bool {
	return errors.Is(err, apperror.ErrDecode)
}

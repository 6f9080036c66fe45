// ABOUTME: Store capability for snippet persistence and folder management.
// ABOUTME: FileStore backs it with JSON files on disk; MemStore keeps everything in memory.

package store

import (
	"github.com/google/uuid"
	"github.com/harper/scsnip/internal/models"
)

// Store owns snippet persistence and every invariant on folder paths.
// Folder arguments are validated with CleanFolder before any side effect.
type Store interface {
	// LoadAll returns every stored snippet, most recently modified first.
	LoadAll() ([]*models.Snippet, error)

	// Save writes the snippet to its folder and returns it as stored.
	Save(s *models.Snippet) (*models.Snippet, error)

	// Delete removes a snippet. A missing snippet is not an error.
	Delete(id uuid.UUID, folder string) error

	CreateFolder(folder string) error

	// RenameFolder moves a folder and rewrites the folder field of every
	// snippet beneath it.
	RenameFolder(oldPath, newPath string) error

	DeleteFolder(folder string) error

	// Folders lists every folder, ordered by path segment.
	Folders() ([]string, error)
}

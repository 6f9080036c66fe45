// ABOUTME: In-memory Store with the same folder rules as FileStore.
// ABOUTME: Used by shells and tests that do not need anything on disk.

package store

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/models"
)

type MemStore struct {
	mu       sync.RWMutex
	snippets map[uuid.UUID]*models.Snippet
	folders  map[string]bool
}

func NewMemStore() *MemStore {
	return &MemStore{
		snippets: make(map[uuid.UUID]*models.Snippet),
		folders:  make(map[string]bool),
	}
}

func (m *MemStore) LoadAll() ([]*models.Snippet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.Snippet, 0, len(m.snippets))
	for _, s := range m.snippets {
		out = append(out, s.Clone())
	}
	slices.SortStableFunc(out, func(a, b *models.Snippet) int {
		if c := b.ModifiedDate.Compare(a.ModifiedDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

func (m *MemStore) Save(snippet *models.Snippet) (*models.Snippet, error) {
	if snippet == nil {
		return nil, apperror.InvalidArgument("save snippet", "snippet is required")
	}
	folder, err := CleanFolder(snippet.Folder)
	if err != nil {
		return nil, err
	}
	stored := snippet.WithFolder(folder)
	if err := stored.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snippets[stored.ID] = stored
	m.addFolderLocked(folder)
	return stored.Clone(), nil
}

func (m *MemStore) Delete(id uuid.UUID, folder string) error {
	clean, err := CleanFolder(folder)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.snippets[id]; ok && s.Folder == clean {
		delete(m.snippets, id)
	}
	return nil
}

func (m *MemStore) CreateFolder(folder string) error {
	clean, err := CleanFolder(folder)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addFolderLocked(clean)
	return nil
}

// addFolderLocked records folder and each of its parents, mirroring MkdirAll.
func (m *MemStore) addFolderLocked(folder string) {
	for f := folder; f != "."; f = parentFolder(f) {
		m.folders[f] = true
	}
}

func (m *MemStore) RenameFolder(oldPath, newPath string) error {
	from, to, err := cleanRename(oldPath, newPath)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.folders[from] {
		return &apperror.Error{Kind: apperror.ErrNotFound, Op: "rename folder", Path: from, Msg: "folder does not exist"}
	}
	if m.folders[to] {
		return apperror.InvalidArgument("rename folder", fmt.Sprintf("folder %q already exists", to))
	}

	var moved []string
	for f := range m.folders {
		if next, ok := RebaseFolder(f, from, to); ok {
			delete(m.folders, f)
			moved = append(moved, next)
		}
	}
	for _, f := range moved {
		m.folders[f] = true
	}
	m.addFolderLocked(to)
	for id, s := range m.snippets {
		if next, ok := RebaseFolder(s.Folder, from, to); ok {
			m.snippets[id] = s.WithFolder(next)
		}
	}
	return nil
}

func (m *MemStore) DeleteFolder(folder string) error {
	clean, err := CleanFolder(folder)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for f := range m.folders {
		if IsWithin(f, clean) {
			delete(m.folders, f)
		}
	}
	for id, s := range m.snippets {
		if IsWithin(s.Folder, clean) {
			delete(m.snippets, id)
		}
	}
	return nil
}

func (m *MemStore) Folders() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.folders))
	for f := range m.folders {
		out = append(out, f)
	}
	SortFolders(out)
	return out, nil
}

func parentFolder(folder string) string {
	for i := len(folder) - 1; i >= 0; i-- {
		if folder[i] == '/' {
			return folder[:i]
		}
	}
	return "."
}

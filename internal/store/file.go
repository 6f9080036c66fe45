// ABOUTME: FileStore keeps one JSON document per snippet under <dataDir>/<folder>/<id>.json.
// ABOUTME: Writes go through a temp file and rename so a crash never leaves a half-written snippet.

package store

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/codec"
	"github.com/harper/scsnip/internal/models"
)

const (
	snippetExt       = ".json"
	defaultCacheSize = 4096
)

// cacheEntry is valid only while the file keeps the same size and mtime.
type cacheEntry struct {
	size    int64
	modTime time.Time
	snippet *models.Snippet
}

type FileStore struct {
	dataDir string
	logger  *slog.Logger
	cache   *lru.Cache[string, cacheEntry]
}

type Option func(*FileStore)

func WithLogger(logger *slog.Logger) Option {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore returns a store rooted at dataDir. The directory is created
// lazily on first write.
func NewFileStore(dataDir string, opts ...Option) (*FileStore, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, apperror.InvalidArgument("open store", "data directory is required")
	}
	cache, err := lru.New[string, cacheEntry](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	s := &FileStore{
		dataDir: dataDir,
		logger:  slog.New(slog.DiscardHandler),
		cache:   cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *FileStore) DataDir() string {
	return s.dataDir
}

func (s *FileStore) folderDir(folder string) string {
	return filepath.Join(s.dataDir, filepath.FromSlash(folder))
}

func (s *FileStore) snippetPath(folder string, id uuid.UUID) string {
	return filepath.Join(s.folderDir(folder), id.String()+snippetExt)
}

// folderOf maps a directory inside dataDir back to its folder name.
func (s *FileStore) folderOf(dir string) (string, bool) {
	rel, err := filepath.Rel(s.dataDir, dir)
	if err != nil || rel == "." {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (s *FileStore) LoadAll() ([]*models.Snippet, error) {
	if _, err := os.Stat(s.dataDir); errors.Is(err, fs.ErrNotExist) {
		return []*models.Snippet{}, nil
	}

	snippets := []*models.Snippet{}
	err := filepath.WalkDir(s.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || filepath.Ext(path) != snippetExt {
			return nil
		}
		snippet, ok := s.readSnippet(path, d)
		if ok {
			snippets = append(snippets, snippet)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.IO("load snippets", s.dataDir, err)
	}

	slices.SortStableFunc(snippets, func(a, b *models.Snippet) int {
		if c := b.ModifiedDate.Compare(a.ModifiedDate); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return snippets, nil
}

// readSnippet decodes one file, consulting the cache first. Unreadable or
// malformed files are logged and skipped so one bad file never hides the rest.
func (s *FileStore) readSnippet(path string, d fs.DirEntry) (*models.Snippet, bool) {
	info, err := d.Info()
	if err != nil {
		s.logger.Warn("skipping snippet file", "path", path, "error", err)
		return nil, false
	}
	if e, ok := s.cache.Get(path); ok && e.size == info.Size() && e.modTime.Equal(info.ModTime()) {
		return e.snippet.Clone(), true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("skipping snippet file", "path", path, "error", err)
		return nil, false
	}
	snippet, err := codec.Decode(data)
	if err != nil {
		s.logger.Warn("skipping malformed snippet", "path", path, "error", err)
		return nil, false
	}

	folder, ok := s.folderOf(filepath.Dir(path))
	if !ok {
		s.logger.Warn("skipping snippet outside any folder", "path", path)
		return nil, false
	}
	if snippet.Folder != folder {
		s.logger.Warn("snippet folder does not match its location", "path", path, "folder", snippet.Folder)
		snippet = snippet.WithFolder(folder)
	}

	s.cache.Add(path, cacheEntry{size: info.Size(), modTime: info.ModTime(), snippet: snippet})
	return snippet.Clone(), true
}

func (s *FileStore) Save(snippet *models.Snippet) (*models.Snippet, error) {
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

	data, err := codec.Encode(stored)
	if err != nil {
		return nil, apperror.IO("save snippet", stored.ID.String(), err)
	}

	dir := s.folderDir(folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.IO("create folder", dir, err)
	}
	target := s.snippetPath(folder, stored.ID)
	if err := writeAtomic(dir, target, stored.ID.String(), data); err != nil {
		return nil, apperror.IO("save snippet", target, err)
	}
	if info, err := os.Stat(target); err == nil {
		s.cache.Add(target, cacheEntry{size: info.Size(), modTime: info.ModTime(), snippet: stored.Clone()})
	}

	s.removeStaleCopies(stored.ID, target)
	s.logger.Debug("saved snippet", "id", stored.ID, "folder", folder)
	return stored, nil
}

// removeStaleCopies deletes files for the same id left in other folders, so
// saving a snippet with a new folder moves it instead of duplicating it.
func (s *FileStore) removeStaleCopies(id uuid.UUID, keep string) {
	name := id.String() + snippetExt
	err := filepath.WalkDir(s.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("could not scan for previous copies", "path", path, "error", err)
			if d != nil && d.IsDir() && path != s.dataDir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() != name || path == keep {
			return nil
		}
		if err := os.Remove(path); err != nil {
			s.logger.Warn("could not remove previous copy", "path", path, "error", err)
			return nil
		}
		s.cache.Remove(path)
		s.logger.Debug("removed previous copy", "path", path)
		return nil
	})
	if err != nil {
		s.logger.Warn("could not scan for previous copies", "dir", s.dataDir, "error", err)
	}
}

func (s *FileStore) Delete(id uuid.UUID, folder string) error {
	clean, err := CleanFolder(folder)
	if err != nil {
		return err
	}
	path := s.snippetPath(clean, id)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperror.IO("delete snippet", path, err)
	}
	s.cache.Remove(path)
	return nil
}

func (s *FileStore) CreateFolder(folder string) error {
	clean, err := CleanFolder(folder)
	if err != nil {
		return err
	}
	dir := s.folderDir(clean)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperror.IO("create folder", dir, err)
	}
	return nil
}

func (s *FileStore) RenameFolder(oldPath, newPath string) error {
	from, to, err := cleanRename(oldPath, newPath)
	if err != nil {
		return err
	}
	src, dst := s.folderDir(from), s.folderDir(to)

	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return &apperror.Error{Kind: apperror.ErrNotFound, Op: "rename folder", Path: from, Msg: "folder does not exist"}
	}
	if err != nil {
		return apperror.IO("rename folder", src, err)
	}
	if _, err := os.Stat(dst); err == nil {
		return apperror.InvalidArgument("rename folder", fmt.Sprintf("folder %q already exists", to))
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return apperror.IO("rename folder", dst, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return apperror.IO("rename folder", src, err)
	}
	s.cache.Purge()

	err = filepath.WalkDir(dst, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || filepath.Ext(path) != snippetExt {
			return nil
		}
		return s.rewriteFolder(path, from, to)
	})
	if err != nil {
		return apperror.IO("rename folder", dst, err)
	}
	s.logger.Debug("renamed folder", "from", from, "to", to)
	return nil
}

// rewriteFolder points the document at path to its new folder. The dates are
// left alone so a rename does not reorder the list.
func (s *FileStore) rewriteFolder(path, from, to string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	snippet, err := codec.Decode(data)
	if err != nil {
		s.logger.Warn("skipping malformed snippet during rename", "path", path, "error", err)
		return nil
	}

	folder, ok := RebaseFolder(snippet.Folder, from, to)
	if loc, inside := s.folderOf(filepath.Dir(path)); inside && (!ok || folder != loc) {
		folder = loc
	}
	if folder == snippet.Folder {
		return nil
	}

	out, err := codec.Encode(snippet.WithFolder(folder))
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Dir(path), path, snippet.ID.String(), out)
}

func (s *FileStore) DeleteFolder(folder string) error {
	clean, err := CleanFolder(folder)
	if err != nil {
		return err
	}
	dir := s.folderDir(clean)
	if err := os.RemoveAll(dir); err != nil {
		return apperror.IO("delete folder", dir, err)
	}
	s.cache.Purge()
	return nil
}

func (s *FileStore) Folders() ([]string, error) {
	if _, err := os.Stat(s.dataDir); errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}

	folders := []string{}
	err := filepath.WalkDir(s.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if folder, ok := s.folderOf(path); ok {
			folders = append(folders, folder)
		}
		return nil
	})
	if err != nil {
		return nil, apperror.IO("list folders", s.dataDir, err)
	}
	SortFolders(folders)
	return folders, nil
}

// rename is swapped in tests to simulate filesystems that refuse to rename
// over an existing file.
var rename = os.Rename

// writeAtomic writes data beside target and renames it into place. On return
// target holds either its previous contents or data, and the temp file is gone.
func writeAtomic(dir, target, prefix string, data []byte) (err error) {
	tmp, err := os.CreateTemp(dir, prefix+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	if err = rename(tmpName, target); err == nil {
		return nil
	}
	if _, statErr := os.Stat(target); statErr != nil {
		return err
	}

	// Some filesystems refuse to rename over an existing file. Move the old
	// file aside first and put it back if the replacement cannot land.
	backup := tmpName + ".old"
	if bErr := rename(target, backup); bErr != nil {
		return err
	}
	if err = rename(tmpName, target); err != nil {
		if rbErr := rename(backup, target); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	_ = os.Remove(backup)
	return nil
}

// ABOUTME: Tests for the JSON file store: layout, atomic saves, and folder operations.
// ABOUTME: Each test gets its own data directory under t.TempDir().

package store

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/codec"
	"github.com/harper/scsnip/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	st, err := NewFileStore(dir)
	require.NoError(t, err)
	return st, dir
}

func newSnippet(t *testing.T, name, folder string, tags ...string) *models.Snippet {
	t.Helper()
	s, err := models.NewSnippet(name, nil, "SinOsc.ar(440)", tags, folder)
	require.NoError(t, err)
	return s
}

// listFiles returns every file under dir relative to it, using "/" separators.
func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	return files
}

func TestSaveAndLoad(t *testing.T) {
	st, dir := newTestStore(t)

	s, err := models.NewSnippet("Bell", models.StringPtr(""), "SinOsc.ar(440)", []string{"synth", "tonal"}, "tones")
	require.NoError(t, err)
	_, err = st.Save(s)
	require.NoError(t, err)

	all, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, s.ID, all[0].ID)
	assert.Equal(t, "tones", all[0].Folder)
	assert.Equal(t, []string{"synth", "tonal"}, all[0].Tags)
	assert.FileExists(t, filepath.Join(dir, "tones", s.ID.String()+".json"))
}

func TestLoadAllMissingDataDir(t *testing.T) {
	st, dir := newTestStore(t)

	all, err := st.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoDirExists(t, dir, "LoadAll must not create the data directory")

	folders, err := st.Folders()
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestSaveTwiceIsIdempotent(t *testing.T) {
	st, dir := newTestStore(t)
	s := newSnippet(t, "Bell", "tones")

	_, err := st.Save(s)
	require.NoError(t, err)
	first := listFiles(t, dir)

	_, err = st.Save(s)
	require.NoError(t, err)
	assert.Equal(t, first, listFiles(t, dir))

	all, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Equal(s))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	st, dir := newTestStore(t)
	for i := 0; i < 5; i++ {
		_, err := st.Save(newSnippet(t, "Bell", "tones"))
		require.NoError(t, err)
	}

	for _, f := range listFiles(t, dir) {
		assert.True(t, strings.HasSuffix(f, ".json"), "unexpected file %s", f)
	}
}

// failRenames makes the listed calls to rename fail (counting from 1) and
// passes the others through to os.Rename.
func failRenames(t *testing.T, calls ...int) {
	t.Helper()
	n := 0
	rename = func(from, to string) error {
		n++
		for _, c := range calls {
			if c == n {
				return &os.LinkError{Op: "rename", Old: from, New: to, Err: fs.ErrPermission}
			}
		}
		return os.Rename(from, to)
	}
	t.Cleanup(func() { rename = os.Rename })
}

func TestWriteAtomicReplacesWhenRenameOverFails(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "snippet.json")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))
	failRenames(t, 1)

	require.NoError(t, writeAtomic(dir, target, "snippet", []byte("new")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.Equal(t, []string{"snippet.json"}, listFiles(t, dir))
}

func TestWriteAtomicKeepsPreviousOnFailure(t *testing.T) {
	tests := []struct {
		name  string
		calls []int
	}{
		{"no rename works", []int{1, 2, 3, 4}},
		{"replacement fails after backup", []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			target := filepath.Join(dir, "snippet.json")
			require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))
			failRenames(t, tt.calls...)

			require.Error(t, writeAtomic(dir, target, "snippet", []byte("new")))

			data, err := os.ReadFile(target)
			require.NoError(t, err)
			assert.Equal(t, "old", string(data))
			assert.Equal(t, []string{"snippet.json"}, listFiles(t, dir))
		})
	}
}

func TestLoadIgnoresInterruptedWrite(t *testing.T) {
	st, dir := newTestStore(t)
	s := newSnippet(t, "Bell", "tones")
	_, err := st.Save(s)
	require.NoError(t, err)

	// A crash between write and rename leaves only a partial temp file.
	partial := filepath.Join(dir, "tones", s.ID.String()+"-123456.tmp")
	require.NoError(t, os.WriteFile(partial, []byte(`{"id": "`+s.ID.String()+`", "na`), 0o644))

	all, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, s.Name, all[0].Name)
}

func TestLoadSkipsMalformedFiles(t *testing.T) {
	var logs bytes.Buffer
	dir := filepath.Join(t.TempDir(), "data")
	st, err := NewFileStore(dir, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)

	good := newSnippet(t, "Good", "tones")
	_, err = st.Save(good)
	require.NoError(t, err)

	bad := filepath.Join(dir, "tones", uuid.NewString()+".json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name": "no id"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tones", "notes.txt"), []byte("hello"), 0o644))

	all, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, good.ID, all[0].ID)
	assert.Contains(t, logs.String(), "skipping malformed snippet")
}

func TestLoadAllOrdersByModifiedDate(t *testing.T) {
	st, _ := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		s := newSnippet(t, "s", "misc")
		s.CreatedDate = base
		s.ModifiedDate = base.Add(time.Duration(i) * time.Hour)
		_, err := st.Save(s)
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	all, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[1], all[1].ID)
	assert.Equal(t, ids[0], all[2].ID)
}

func TestLoadUsesLocationForFolder(t *testing.T) {
	st, dir := newTestStore(t)
	s := newSnippet(t, "Bell", "tones")

	data, err := codec.Encode(s)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "elsewhere"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "elsewhere", s.ID.String()+".json"), data, 0o644))

	all, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "elsewhere", all[0].Folder)
}

func TestLoadSeesExternalEdits(t *testing.T) {
	st, dir := newTestStore(t)
	s := newSnippet(t, "Bell", "tones")
	_, err := st.Save(s)
	require.NoError(t, err)

	_, err = st.LoadAll()
	require.NoError(t, err)

	edited, err := s.WithUpdatedContent("Gong", nil, s.Code, nil, "tones")
	require.NoError(t, err)
	data, err := codec.Encode(edited)
	require.NoError(t, err)
	path := filepath.Join(dir, "tones", s.ID.String()+".json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	all, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Gong", all[0].Name)
}

func TestLoadReturnsIndependentCopies(t *testing.T) {
	st, _ := newTestStore(t)
	_, err := st.Save(newSnippet(t, "Bell", "tones", "a"))
	require.NoError(t, err)

	first, err := st.LoadAll()
	require.NoError(t, err)
	first[0].Tags[0] = "mutated"

	second, err := st.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, second[0].Tags)
}

func TestSaveToNewFolderMovesFile(t *testing.T) {
	st, dir := newTestStore(t)
	s := newSnippet(t, "Bell", "tones")
	_, err := st.Save(s)
	require.NoError(t, err)

	moved, err := s.WithUpdatedContent(s.Name, s.Description, s.Code, s.Tags, "percussion")
	require.NoError(t, err)
	_, err = st.Save(moved)
	require.NoError(t, err)

	assert.Equal(t, []string{"percussion/" + s.ID.String() + ".json"}, listFiles(t, dir))
}

func TestSaveLogsUnreadableFolders(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := filepath.Join(t.TempDir(), "data")
	var logs bytes.Buffer
	st, err := NewFileStore(dir, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)

	require.NoError(t, st.CreateFolder("locked"))
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err = st.Save(newSnippet(t, "Bell", "tones"))
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "could not scan for previous copies")
	assert.Contains(t, logs.String(), "locked")
}

func TestDeleteMissingSnippetSucceeds(t *testing.T) {
	st, dir := newTestStore(t)
	_, err := st.Save(newSnippet(t, "Bell", "tones"))
	require.NoError(t, err)
	before := listFiles(t, dir)

	require.NoError(t, st.Delete(uuid.New(), "tones"))
	require.NoError(t, st.Delete(uuid.New(), "nowhere"))
	assert.Equal(t, before, listFiles(t, dir))
}

func TestDeleteRemovesFile(t *testing.T) {
	st, dir := newTestStore(t)
	s := newSnippet(t, "Bell", "tones")
	_, err := st.Save(s)
	require.NoError(t, err)

	require.NoError(t, st.Delete(s.ID, "tones"))
	assert.NoFileExists(t, filepath.Join(dir, "tones", s.ID.String()+".json"))

	all, err := st.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInvalidFoldersMakeNoChanges(t *testing.T) {
	st, dir := newTestStore(t)
	_, err := st.Save(newSnippet(t, "Bell", "tones"))
	require.NoError(t, err)
	before := listFiles(t, dir)

	for _, folder := range []string{"", "  ", "..", "../escape", "a/../../b", "/abs", `C:\x`} {
		t.Run(folder, func(t *testing.T) {
			s := newSnippet(t, "x", "tones")
			s.Folder = folder

			checks := map[string]error{
				"save":          func() error { _, err := st.Save(s); return err }(),
				"delete":        st.Delete(s.ID, folder),
				"create":        st.CreateFolder(folder),
				"rename from":   st.RenameFolder(folder, "ok"),
				"rename to":     st.RenameFolder("tones", folder),
				"delete folder": st.DeleteFolder(folder),
			}
			for op, err := range checks {
				assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "%s(%q): expected invalid argument, got %v", op, folder, err)
			}
		})
	}

	assert.Equal(t, before, listFiles(t, dir))
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRenameFolder(t *testing.T) {
	st, dir := newTestStore(t)
	inA := newSnippet(t, "top", "a")
	inAB := newSnippet(t, "nested", "a/b")
	inC := newSnippet(t, "other", "c")
	for _, s := range []*models.Snippet{inA, inAB, inC} {
		_, err := st.Save(s)
		require.NoError(t, err)
	}

	require.NoError(t, st.RenameFolder("a", "z"))

	assert.DirExists(t, filepath.Join(dir, "z"))
	assert.DirExists(t, filepath.Join(dir, "z", "b"))
	assert.NoDirExists(t, filepath.Join(dir, "a"))

	all, err := st.LoadAll()
	require.NoError(t, err)
	byID := map[uuid.UUID]*models.Snippet{}
	for _, s := range all {
		byID[s.ID] = s
	}
	assert.Equal(t, "z", byID[inA.ID].Folder)
	assert.Equal(t, "z/b", byID[inAB.ID].Folder)
	assert.Equal(t, "c", byID[inC.ID].Folder)

	// The persisted document is rewritten, not just reinterpreted on load.
	data, err := os.ReadFile(filepath.Join(dir, "z", "b", inAB.ID.String()+".json"))
	require.NoError(t, err)
	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "z/b", decoded.Folder)
	assert.True(t, decoded.ModifiedDate.Equal(inAB.ModifiedDate), "rename must not touch modified date")
}

func TestRenameFolderIntoNestedPath(t *testing.T) {
	st, dir := newTestStore(t)
	s := newSnippet(t, "kick", "drums")
	_, err := st.Save(s)
	require.NoError(t, err)

	require.NoError(t, st.RenameFolder("drums", "percussion/drums"))

	assert.FileExists(t, filepath.Join(dir, "percussion", "drums", s.ID.String()+".json"))
	folders, err := st.Folders()
	require.NoError(t, err)
	assert.Equal(t, []string{"percussion", "percussion/drums"}, folders)
}

func TestRenameFolderErrors(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.CreateFolder("a/b"))
	require.NoError(t, st.CreateFolder("c"))

	err := st.RenameFolder("missing", "z")
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)

	err = st.RenameFolder("a", "c")
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "got %v", err)

	err = st.RenameFolder("a", "a/b/deeper")
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "got %v", err)

	err = st.RenameFolder("a", "a")
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), "got %v", err)
}

func TestCreateAndDeleteFolder(t *testing.T) {
	st, dir := newTestStore(t)

	require.NoError(t, st.CreateFolder("tones/bells"))
	require.NoError(t, st.CreateFolder("tones/bells"))
	assert.DirExists(t, filepath.Join(dir, "tones", "bells"))

	_, err := st.Save(newSnippet(t, "Bell", "tones/bells"))
	require.NoError(t, err)

	require.NoError(t, st.DeleteFolder("tones"))
	assert.NoDirExists(t, filepath.Join(dir, "tones"))
	require.NoError(t, st.DeleteFolder("tones"))

	all, err := st.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFoldersSortedBySegment(t *testing.T) {
	st, _ := newTestStore(t)
	for _, f := range []string{"b", "a-b", "a/b", "a"} {
		require.NoError(t, st.CreateFolder(f))
	}

	folders, err := st.Folders()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a/b", "a-b", "b"}, folders)
}

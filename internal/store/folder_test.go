// ABOUTME: Tests for folder validation, rebasing, and ordering.
// ABOUTME: Every rejected input must report an invalid-argument error.

package store

import (
	"errors"
	"testing"

	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFolder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tones", "tones"},
		{"  tones  ", "tones"},
		{"tones/bells", "tones/bells"},
		{"tones//bells/", "tones/bells"},
		{"./tones", "tones"},
		{`tones\bells`, "tones/bells"},
		{"my drums", "my drums"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanFolder(tt.in)
			if err != nil {
				t.Fatalf("CleanFolder(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCleanFolderRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"dot", "."},
		{"parent", ".."},
		{"escape", "../outside"},
		{"inner parent", "a/../b"},
		{"trailing parent", "a/.."},
		{"backslash parent", `a\..\b`},
		{"absolute", "/etc"},
		{"windows absolute", `\windows`},
		{"drive letter", `C:\data`},
		{"drive relative", "c:data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CleanFolder(tt.in)
			if !errors.Is(err, apperror.ErrInvalidArgument) {
				t.Errorf("expected invalid argument for %q, got %v", tt.in, err)
			}
		})
	}
}

func TestRebaseFolder(t *testing.T) {
	tests := []struct {
		folder string
		want   string
		ok     bool
	}{
		{"a", "z", true},
		{"a/b", "z/b", true},
		{"a/b/c", "z/b/c", true},
		{"ab", "ab", false},
		{"c/a", "c/a", false},
	}

	for _, tt := range tests {
		got, ok := RebaseFolder(tt.folder, "a", "z")
		if got != tt.want || ok != tt.ok {
			t.Errorf("RebaseFolder(%q): expected (%q, %v), got (%q, %v)", tt.folder, tt.want, tt.ok, got, ok)
		}
	}
}

func TestSortFolders(t *testing.T) {
	folders := []string{"b", "a-b", "a/b", "a", "a/a"}
	SortFolders(folders)

	want := []string{"a", "a/a", "a/b", "a-b", "b"}
	for i := range want {
		if folders[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, folders)
		}
	}
}

func TestCleanFilterNormalizesFolder(t *testing.T) {
	st := NewMemStore()
	s := newSnippet(t, "Nested", "a/b")
	_, err := st.Save(s)
	require.NoError(t, err)
	require.NoError(t, st.RenameFolder("a", "z"))

	all, err := st.LoadAll()
	require.NoError(t, err)

	for _, folder := range []string{"z/b/", "./z/b", " z//b "} {
		f, err := CleanFilter(query.Filter{Folder: folder})
		require.NoError(t, err, folder)
		assert.Equal(t, "z/b", f.Folder)

		got := query.Apply(all, f)
		require.Len(t, got, 1, folder)
		assert.Equal(t, s.ID, got[0].ID)
	}
}

func TestCleanFilterRejectsMalformedFolder(t *testing.T) {
	for _, folder := range []string{"../x", "/abs", "a/../b"} {
		_, err := CleanFilter(query.Filter{Folder: folder, Tag: "x"})
		assert.True(t, errors.Is(err, apperror.ErrInvalidArgument), folder)
	}
}

func TestCleanFilterKeepsBlankFolderUnset(t *testing.T) {
	f, err := CleanFilter(query.Filter{SearchText: "saw", Folder: "   "})
	require.NoError(t, err)
	assert.Equal(t, query.Filter{SearchText: "saw"}, f)
	assert.False(t, f.IsEmpty())
}

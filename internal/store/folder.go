// ABOUTME: Folder path validation and helpers shared by every Store.
// ABOUTME: Folders are relative, normalized, slash-separated, and never contain "..".

package store

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/harper/scsnip/internal/apperror"
	"github.com/harper/scsnip/internal/query"
)

// CleanFolder validates a folder argument and returns its canonical form.
// Backslashes are treated as separators so Windows-style input normalizes
// to the same folder.
func CleanFolder(folder string) (string, error) {
	f := strings.TrimSpace(folder)
	if f == "" {
		return "", apperror.InvalidArgument("folder", "folder is required")
	}
	f = strings.ReplaceAll(f, `\`, "/")
	if strings.HasPrefix(f, "/") || filepath.IsAbs(folder) || hasDriveLetter(f) {
		return "", apperror.InvalidArgument("folder", "folder must be relative")
	}
	for _, seg := range strings.Split(f, "/") {
		if seg == ".." {
			return "", apperror.InvalidArgument("folder", "folder must not contain '..'")
		}
	}
	clean := path.Clean(f)
	if clean == "." {
		return "", apperror.InvalidArgument("folder", "folder is required")
	}
	return clean, nil
}

// CleanFilter normalizes the folder of a filter the same way CleanFolder
// does. A blank folder leaves the folder filter unset.
func CleanFilter(f query.Filter) (query.Filter, error) {
	if strings.TrimSpace(f.Folder) == "" {
		f.Folder = ""
		return f, nil
	}
	clean, err := CleanFolder(f.Folder)
	if err != nil {
		return query.Filter{}, err
	}
	f.Folder = clean
	return f, nil
}

func hasDriveLetter(f string) bool {
	if len(f) < 2 || f[1] != ':' {
		return false
	}
	c := f[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// RebaseFolder replaces the leading segments oldPrefix of folder with
// newPrefix. Only whole segments match: "ab" is not under "a".
func RebaseFolder(folder, oldPrefix, newPrefix string) (string, bool) {
	if folder == oldPrefix {
		return newPrefix, true
	}
	if strings.HasPrefix(folder, oldPrefix+"/") {
		return newPrefix + folder[len(oldPrefix):], true
	}
	return folder, false
}

// IsWithin reports whether folder equals parent or lies beneath it.
func IsWithin(folder, parent string) bool {
	_, ok := RebaseFolder(folder, parent, parent)
	return ok
}

// SortFolders orders folders lexicographically by segment, so a parent is
// always followed directly by its subtree.
func SortFolders(folders []string) {
	slices.SortFunc(folders, func(a, b string) int {
		return slices.Compare(strings.Split(a, "/"), strings.Split(b, "/"))
	})
}

func cleanRename(oldPath, newPath string) (string, string, error) {
	from, err := CleanFolder(oldPath)
	if err != nil {
		return "", "", err
	}
	to, err := CleanFolder(newPath)
	if err != nil {
		return "", "", err
	}
	if from == to {
		return "", "", apperror.InvalidArgument("rename folder", "new folder is the same as the old folder")
	}
	if IsWithin(to, from) {
		return "", "", apperror.InvalidArgument("rename folder", "cannot move a folder inside itself")
	}
	return from, to, nil
}

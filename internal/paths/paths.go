// ABOUTME: Resolves the application root, data directory, and config file.
// ABOUTME: Pure path computation under the user's home directory; no I/O.

package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the directory created under the user's home.
const AppDirName = ".supercollider-snippet-manager"

// AppRoot fails rather than fall back to a path relative to the working
// directory when the home directory is unknown.
func AppRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return AppRootFor(home), nil
}

// AppRootFor returns the application root for an explicit home directory.
func AppRootFor(home string) string {
	return filepath.Join(home, AppDirName)
}

func DataDir() (string, error) {
	root, err := AppRoot()
	if err != nil {
		return "", err
	}
	return DataDirFor(root), nil
}

func DataDirFor(appRoot string) string {
	return filepath.Join(appRoot, "data")
}

// ConfigFile is reserved for shell settings; the core never reads it.
func ConfigFile() (string, error) {
	root, err := AppRoot()
	if err != nil {
		return "", err
	}
	return ConfigFileFor(root), nil
}

func ConfigFileFor(appRoot string) string {
	return filepath.Join(appRoot, "config.json")
}

// Package config handles the repository layout and global configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/papers/internal/fileutil"
)

const (
	IndexFile  = "papers.yaml"
	BibDataDir = "bibdata"
	MetaDir    = "meta"
	BibDataExt = ".bibyaml"
	MetaExt    = ".meta"
	CacheDir   = "papers"
	DBExt      = ".db"
)

// ErrNoRepository is returned when no repository can be located.
var ErrNoRepository = errors.New("not in a papers repository")

// IndexPath returns the path to papers.yaml from a root path.
func IndexPath(root string) string {
	return filepath.Join(root, IndexFile)
}

// BibDataPath returns the directory holding bibliographic data files.
func BibDataPath(root string) string {
	return filepath.Join(root, BibDataDir)
}

// MetaPath returns the directory holding metadata files.
func MetaPath(root string) string {
	return filepath.Join(root, MetaDir)
}

// BibFile returns the bibdata file of a citekey.
func BibFile(root, citekey string) string {
	return filepath.Join(root, BibDataDir, citekey+BibDataExt)
}

// MetaFile returns the meta file of a citekey.
func MetaFile(root, citekey string) string {
	return filepath.Join(root, MetaDir, citekey+MetaExt)
}

// CacheDBPath returns the query cache database of a repository. The cache
// lives under the user cache directory so the repository root only ever
// holds the index file and the two paper directories.
func CacheDBPath(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome, err = os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("locating cache directory: %w", err)
		}
	}
	name := fileutil.Checksum([]byte(abs))[:16] + DBExt
	return filepath.Join(cacheHome, CacheDir, name), nil
}

// IsRepository checks if the given path contains a papers repository.
func IsRepository(root string) bool {
	info, err := os.Stat(IndexPath(root))
	return err == nil && !info.IsDir()
}

// FindRepository walks up from the given path to find a papers repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(ExpandPath(start))
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("%w (no %s found above %s)", ErrNoRepository, IndexFile, start)
		}
		abs = parent
	}
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

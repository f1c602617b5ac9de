// Package index maintains the ordered citekey registry stored in papers.yaml.
//
// The position of a citekey in the index is its number, a shorthand accepted
// wherever a citekey is. The index is append-only, so numbers never change
// or get reused for the lifetime of a repository.
package index

import (
	"fmt"
	"os"

	"github.com/matsen/papers/internal/apperr"
	"github.com/matsen/papers/internal/fileutil"
	"gopkg.in/yaml.v3"
)

// Index is an ordered list of unique citekeys.
type Index struct {
	keys []string
	pos  map[string]int
}

// file is the on-disk shape of papers.yaml.
type file struct {
	Citekeys *[]string `yaml:"citekeys"`
}

// New returns an empty index.
func New() *Index {
	return &Index{pos: make(map[string]int)}
}

// FromCitekeys builds an index from an ordered list, rejecting empty and
// duplicate entries.
func FromCitekeys(keys []string) (*Index, error) {
	idx := New()
	for i, key := range keys {
		if key == "" {
			return nil, fmt.Errorf("empty citekey at position %d", i)
		}
		if err := idx.Append(key); err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
	}
	return idx, nil
}

// Len returns the number of citekeys.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Contains reports whether key is registered.
func (idx *Index) Contains(key string) bool {
	_, ok := idx.pos[key]
	return ok
}

// Ordinal returns the number of key.
func (idx *Index) Ordinal(key string) (int, bool) {
	n, ok := idx.pos[key]
	return n, ok
}

// Citekey returns the citekey with the given number.
func (idx *Index) Citekey(n int) (string, error) {
	if n < 0 || n >= len(idx.keys) {
		return "", fmt.Errorf("%w: no paper with number %d (have %d)", apperr.ErrNotFound, n, len(idx.keys))
	}
	return idx.keys[n], nil
}

// Append registers key as the last entry. Callers check for duplicates
// first; Append refuses them anyway so the index never holds two copies.
func (idx *Index) Append(key string) error {
	if idx.Contains(key) {
		return fmt.Errorf("%w: %s", apperr.ErrDuplicateCitekey, key)
	}
	idx.pos[key] = len(idx.keys)
	idx.keys = append(idx.keys, key)
	return nil
}

// RemoveLast drops the most recent Append of key. It undoes an append whose
// follow-up save failed and refuses to touch any other entry.
func (idx *Index) RemoveLast(key string) bool {
	n := len(idx.keys)
	if n == 0 || idx.keys[n-1] != key {
		return false
	}
	idx.keys = idx.keys[:n-1]
	delete(idx.pos, key)
	return true
}

// Citekeys returns a copy of the ordered citekeys.
func (idx *Index) Citekeys() []string {
	out := make([]string, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Load reads an index file.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", apperr.ErrCorruptIndex, path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", apperr.ErrCorruptIndex, path, err)
	}
	if f.Citekeys == nil {
		return nil, fmt.Errorf("%w: %s has no citekeys field", apperr.ErrCorruptIndex, path)
	}

	idx, err := FromCitekeys(*f.Citekeys)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrCorruptIndex, path, err)
	}
	return idx, nil
}

// Save rewrites the whole index file. The new content goes to a temporary
// file in the same directory which then replaces path.
func (idx *Index) Save(path string) error {
	keys := idx.Citekeys()
	data, err := yaml.Marshal(file{Citekeys: &keys})
	if err != nil {
		return fmt.Errorf("%w: encoding index: %v", apperr.ErrStorage, err)
	}
	if err := fileutil.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", apperr.ErrStorage, path, err)
	}
	return nil
}

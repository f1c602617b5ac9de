// Package repository ties the citekey index to the per-paper files.
//
// A repository root holds papers.yaml (the index), bibdata/ with one
// <citekey>.bibyaml per paper and meta/ with one <citekey>.meta per paper.
// The Repository is the only writer of the index and the only authority on
// which citekeys exist.
//
// There is no locking: a repository assumes one writing process at a time.
// Two processes adding papers concurrently can lose each other's index
// updates (the last save wins).
package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/matsen/papers/internal/apperr"
	"github.com/matsen/papers/internal/bibfile"
	"github.com/matsen/papers/internal/config"
	"github.com/matsen/papers/internal/fileutil"
	"github.com/matsen/papers/internal/index"
	"github.com/matsen/papers/internal/paper"
	"github.com/matsen/papers/internal/pdf"
)

// Parser reads bibliographic metadata files.
type Parser interface {
	ParseEntry(path string) (bibfile.Entry, error)
	ParseBatch(path string) ([]bibfile.Entry, error)
}

// Attacher attaches a document file to a paper.
type Attacher interface {
	Attach(p *paper.Paper, docPath string) error
}

// Store persists the two files of a paper.
type Store interface {
	Save(p *paper.Paper, bibPath, metaPath string) error
	Load(bibPath, metaPath string) (*paper.Paper, error)
}

// Repository is an opened papers repository.
type Repository struct {
	root     string
	index    *index.Index
	parser   Parser
	attacher Attacher
	store    Store
	logger   *slog.Logger
}

// Option is a functional option for configuring a repository.
type Option func(*Repository)

// WithParser sets the bibliographic metadata parser.
func WithParser(p Parser) Option {
	return func(r *Repository) {
		r.parser = p
	}
}

// WithAttacher sets the document attacher.
func WithAttacher(a Attacher) Option {
	return func(r *Repository) {
		r.attacher = a
	}
}

// WithStore sets the paper file store.
func WithStore(s Store) Option {
	return func(r *Repository) {
		r.store = s
	}
}

// WithLogger sets the logger. Repositories log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = l
	}
}

func newRepository(root string, opts ...Option) *Repository {
	r := &Repository{
		root:   root,
		parser: bibfile.Parser{},
		store:  paper.FileStore{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.attacher == nil {
		r.attacher = pdf.Attacher{Logger: r.logger}
	}
	return r
}

// Open loads the repository at root.
func Open(root string, opts ...Option) (*Repository, error) {
	r := newRepository(root, opts...)
	idx, err := index.Load(r.indexPath())
	if err != nil {
		return nil, err
	}
	r.index = idx
	r.logger.Debug("repository opened", slog.String("root", root), slog.Int("papers", idx.Len()))
	return r, nil
}

// Init creates a new, empty repository at root. It refuses to touch a root
// that already holds the index file or either paper directory.
func Init(root string, opts ...Option) (*Repository, error) {
	r := newRepository(root, opts...)

	for _, path := range []string{r.indexPath(), config.BibDataPath(root), config.MetaPath(root)} {
		if fileutil.Exists(path) {
			return nil, fmt.Errorf("%w: %s exists", apperr.ErrAlreadyInitialized, path)
		}
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", apperr.ErrStorage, root, err)
	}
	for _, dir := range []string{config.BibDataPath(root), config.MetaPath(root)} {
		if err := os.Mkdir(dir, 0755); err != nil {
			if errors.Is(err, os.ErrExist) {
				return nil, fmt.Errorf("%w: %s exists", apperr.ErrAlreadyInitialized, dir)
			}
			return nil, fmt.Errorf("%w: creating %s: %v", apperr.ErrStorage, dir, err)
		}
	}

	r.index = index.New()
	if err := r.index.Save(r.indexPath()); err != nil {
		return nil, err
	}
	r.logger.Info("repository initialized", slog.String("root", root))
	return r, nil
}

// Root returns the repository root directory.
func (r *Repository) Root() string {
	return r.root
}

// Size returns the number of papers.
func (r *Repository) Size() int {
	return r.index.Len()
}

// Contains reports whether citekey belongs to a paper of the repository.
func (r *Repository) Contains(citekey string) bool {
	return r.index.Contains(citekey)
}

// Citekeys returns all citekeys; position i holds the paper numbered i.
func (r *Repository) Citekeys() []string {
	return r.index.Citekeys()
}

// Number returns the number of the paper filed under citekey.
func (r *Repository) Number(citekey string) (int, bool) {
	return r.index.Ordinal(citekey)
}

func (r *Repository) indexPath() string {
	return config.IndexPath(r.root)
}

func (r *Repository) bibPath(citekey string) string {
	return config.BibFile(r.root, citekey)
}

func (r *Repository) metaPath(citekey string) string {
	return config.MetaFile(r.root, citekey)
}

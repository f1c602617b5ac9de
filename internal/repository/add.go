package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/matsen/papers/internal/apperr"
	"github.com/matsen/papers/internal/citekey"
	"github.com/matsen/papers/internal/fileutil"
	"github.com/matsen/papers/internal/paper"
)

// AddPaperFromPaths builds a paper from a bibliographic file holding one
// entry and an optional document, then adds it. The citekey is, in order
// of preference: key, the key the entry was filed under, a free key
// derived from the entry. Tags are set before the paper is first written.
func (r *Repository) AddPaperFromPaths(docPath, bibPath, key string, tags ...string) (*paper.Paper, error) {
	entry, err := r.parser.ParseEntry(bibPath)
	if err != nil {
		return nil, err
	}

	p := paper.New(entry.Citekey, entry.Ref)
	if key != "" {
		p.Citekey = key
	}
	p.AddTags(tags...)
	if docPath != "" {
		if err := r.attacher.Attach(p, docPath); err != nil {
			return nil, err
		}
	}
	if p.Citekey == "" {
		p.Citekey = r.FreeCitekey(p, "")
	}

	if err := r.AddPaper(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddPaper adds a new paper. The paper files are written before the index
// is touched, so a failure leaves the index exactly as it was.
func (r *Repository) AddPaper(p *paper.Paper) error {
	if p == nil || p.Citekey == "" {
		return fmt.Errorf("%w: citekey is empty", apperr.ErrInvalidCitekey)
	}
	if err := citekey.Validate(p.Citekey); err != nil {
		return err
	}
	if r.index.Contains(p.Citekey) {
		return fmt.Errorf("%w: %s", apperr.ErrDuplicateCitekey, p.Citekey)
	}

	bibPath, metaPath := r.bibPath(p.Citekey), r.metaPath(p.Citekey)
	if fileutil.Exists(bibPath) || fileutil.Exists(metaPath) {
		// Left over from an add that died before the index was saved.
		r.logger.Warn("overwriting unindexed paper files", slog.String("citekey", p.Citekey))
	}
	if err := r.save(p); err != nil {
		return err
	}

	if err := r.index.Append(p.Citekey); err != nil {
		return err
	}
	if err := r.index.Save(r.indexPath()); err != nil {
		r.index.RemoveLast(p.Citekey)
		_ = os.Remove(bibPath)
		_ = os.Remove(metaPath)
		return err
	}

	r.logger.Info("paper added", slog.String("citekey", p.Citekey), slog.Int("number", r.index.Len()-1))
	return nil
}

// AddOrUpdate adds p if its citekey is new and otherwise rewrites the
// files of the existing paper in place, leaving the index untouched.
func (r *Repository) AddOrUpdate(p *paper.Paper) error {
	if p != nil && r.index.Contains(p.Citekey) {
		return r.SavePaper(p)
	}
	return r.AddPaper(p)
}

// SavePaper rewrites the files of a paper already in the repository.
func (r *Repository) SavePaper(p *paper.Paper) error {
	if !r.index.Contains(p.Citekey) {
		return fmt.Errorf("%w: paper %s is not in the repository, add it first", apperr.ErrNotFound, p.Citekey)
	}
	if err := r.save(p); err != nil {
		return err
	}
	r.logger.Debug("paper saved", slog.String("citekey", p.Citekey))
	return nil
}

func (r *Repository) save(p *paper.Paper) error {
	err := r.store.Save(p, r.bibPath(p.Citekey), r.metaPath(p.Citekey))
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: saving paper %s: %v", apperr.ErrStorage, p.Citekey, err)
}

// FreeCitekey returns a citekey not yet used in the repository: base, or
// base followed by the first free suffix a, b, ..., z, aa, ab, ...
// An empty base is derived from the paper's entry (first author and year).
func (r *Repository) FreeCitekey(p *paper.Paper, base string) string {
	if base == "" {
		base = citekey.Derive(p.Bib)
	}
	return citekey.Free(base, r.index.Contains)
}

// ImportOptions controls AddPapers.
type ImportOptions struct {
	// SkipExisting skips entries whose citekey is taken instead of failing.
	SkipExisting bool
}

// ImportResult reports what AddPapers did.
type ImportResult struct {
	Added   []string `json:"added"`
	Skipped []string `json:"skipped,omitempty"`
}

// AddPapers adds every entry of a bibliographic file. Entries without a
// citekey get a free derived one. The import stops at the first entry that
// cannot be added; papers added before it stay added.
func (r *Repository) AddPapers(bibPath string, opts ImportOptions) (ImportResult, error) {
	var res ImportResult

	entries, err := r.parser.ParseBatch(bibPath)
	if err != nil {
		return res, err
	}

	for i, entry := range entries {
		p := paper.New(entry.Citekey, entry.Ref)
		if p.Citekey == "" {
			p.Citekey = r.FreeCitekey(p, "")
		}

		err := r.AddPaper(p)
		switch {
		case err == nil:
			res.Added = append(res.Added, p.Citekey)
		case opts.SkipExisting && errors.Is(err, apperr.ErrDuplicateCitekey):
			res.Skipped = append(res.Skipped, p.Citekey)
		default:
			return res, fmt.Errorf("entry %d (%s) of %s: %w", i+1, p.Citekey, bibPath, err)
		}
	}
	return res, nil
}

package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/papers/internal/apperr"
	"github.com/matsen/papers/internal/paper"
)

// The Lookup* functions probe: a miss is reported through the boolean and
// is not an error. The PaperFrom* functions turn a miss into ErrNotFound.
// Errors from either kind are failures to read a paper that the index
// does list.

// LookupCitekey loads the paper filed under citekey, if there is one.
func (r *Repository) LookupCitekey(citekey string) (*paper.Paper, bool, error) {
	if !r.index.Contains(citekey) {
		return nil, false, nil
	}
	p, err := r.load(citekey)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// PaperFromCitekey loads the paper filed under citekey.
func (r *Repository) PaperFromCitekey(citekey string) (*paper.Paper, error) {
	p, ok, err := r.LookupCitekey(citekey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no paper with citekey %s", apperr.ErrNotFound, citekey)
	}
	return p, nil
}

// LookupNumber loads the paper with number n, if there is one.
func (r *Repository) LookupNumber(n int) (*paper.Paper, bool, error) {
	citekey, err := r.index.Citekey(n)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	p, err := r.load(citekey)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// PaperFromNumber loads the paper with number n.
func (r *Repository) PaperFromNumber(n int) (*paper.Paper, error) {
	p, ok, err := r.LookupNumber(n)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no paper with number %d", apperr.ErrNotFound, n)
	}
	return p, nil
}

// LookupAny tries key as a citekey first and then as a paper number.
func (r *Repository) LookupAny(key string) (*paper.Paper, bool, error) {
	p, ok, err := r.LookupCitekey(key)
	if ok || err != nil {
		return p, ok, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return nil, false, nil
	}
	return r.LookupNumber(n)
}

// PaperFromAny loads the paper whose citekey or number is key.
func (r *Repository) PaperFromAny(key string) (*paper.Paper, error) {
	p, ok, err := r.LookupAny(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no paper with citekey or number %s", apperr.ErrNotFound, key)
	}
	return p, nil
}

// Papers loads every paper in index order.
func (r *Repository) Papers() ([]*paper.Paper, error) {
	keys := r.index.Citekeys()
	papers := make([]*paper.Paper, 0, len(keys))
	for _, key := range keys {
		p, err := r.load(key)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, nil
}

func (r *Repository) load(citekey string) (*paper.Paper, error) {
	p, err := r.store.Load(r.bibPath(citekey), r.metaPath(citekey))
	if err != nil {
		return nil, fmt.Errorf("%w: loading paper %s: %v", apperr.ErrStorage, citekey, err)
	}
	// The index is authoritative for identity.
	p.Citekey = citekey
	return p, nil
}

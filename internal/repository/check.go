package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matsen/papers/internal/config"
	"github.com/matsen/papers/internal/fileutil"
)

// Issue types reported by Check.
const (
	IssueMissingBibData = "missing_bibdata"
	IssueMissingMeta    = "missing_meta"
	IssueUnreadable     = "unreadable"
	IssueOrphanFile     = "orphan_file"
	IssueMissingDoc     = "missing_document"
)

// Issue is one inconsistency between the index and the paper files.
type Issue struct {
	Type    string `json:"type"`
	Citekey string `json:"citekey,omitempty"`
	Path    string `json:"path,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Check compares the index with the paper directories. It reports indexed
// papers whose files are missing or unreadable, files that no index entry
// owns (typically left by an interrupted add) and attached documents that
// no longer exist. It never modifies the repository.
func (r *Repository) Check() ([]Issue, error) {
	var issues []Issue

	for _, key := range r.index.Citekeys() {
		bibPath, metaPath := r.bibPath(key), r.metaPath(key)
		missing := false
		if !fileutil.Exists(bibPath) {
			issues = append(issues, Issue{Type: IssueMissingBibData, Citekey: key, Path: bibPath})
			missing = true
		}
		if !fileutil.Exists(metaPath) {
			issues = append(issues, Issue{Type: IssueMissingMeta, Citekey: key, Path: metaPath})
			missing = true
		}
		if missing {
			continue
		}

		p, err := r.load(key)
		if err != nil {
			issues = append(issues, Issue{Type: IssueUnreadable, Citekey: key, Detail: err.Error()})
			continue
		}
		if p.Meta.DocFile != "" && !fileutil.Exists(p.Meta.DocFile) {
			issues = append(issues, Issue{Type: IssueMissingDoc, Citekey: key, Path: p.Meta.DocFile})
		}
	}

	for _, dir := range []struct{ path, ext string }{
		{config.BibDataPath(r.root), config.BibDataExt},
		{config.MetaPath(r.root), config.MetaExt},
	} {
		orphans, err := r.orphans(dir.path, dir.ext)
		if err != nil {
			return nil, err
		}
		issues = append(issues, orphans...)
	}
	return issues, nil
}

func (r *Repository) orphans(dir, ext string) ([]Issue, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var issues []Issue
	for _, name := range names {
		key, ok := strings.CutSuffix(name, ext)
		if ok && r.index.Contains(key) {
			continue
		}
		issue := Issue{Type: IssueOrphanFile, Path: filepath.Join(dir, name)}
		if ok {
			issue.Citekey = key
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

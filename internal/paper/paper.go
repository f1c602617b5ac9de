// Package paper holds the in-memory form of one stored paper and its two
// on-disk files: the bibliographic data file and the metadata file.
package paper

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/matsen/papers/internal/apperr"
	"github.com/matsen/papers/internal/fileutil"
	"github.com/matsen/papers/internal/reference"
	"gopkg.in/yaml.v3"
)

// Paper is one paper of the repository.
type Paper struct {
	Citekey string              `json:"citekey"`
	Bib     reference.Reference `json:"bib"`
	Meta    Meta                `json:"meta"`
}

// Meta is paper-management data kept apart from the bibliographic entry.
type Meta struct {
	DocFile string    `json:"docfile,omitempty" yaml:"docfile,omitempty"` // Absolute path to the attached PDF/PS
	Tags    []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Notes   string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	Added   time.Time `json:"added" yaml:"added"`
}

// bibFile is the on-disk shape of a .bibyaml file.
type bibFile struct {
	Citekey string              `yaml:"citekey"`
	Entry   reference.Reference `yaml:"entry"`
}

// New returns a paper with the given citekey and entry, stamped as added now.
func New(citekey string, ref reference.Reference) *Paper {
	return &Paper{
		Citekey: citekey,
		Bib:     ref,
		Meta:    Meta{Added: time.Now().UTC().Truncate(time.Second)},
	}
}

// Load reads a paper from its bibdata and meta files.
func Load(bibPath, metaPath string) (*Paper, error) {
	data, err := os.ReadFile(bibPath)
	if err != nil {
		return nil, fmt.Errorf("reading bibdata: %w", err)
	}
	var bf bibFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing bibdata %s: %w", bibPath, err)
	}

	data, err = os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("reading meta: %w", err)
	}
	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing meta %s: %w", metaPath, err)
	}

	return &Paper{Citekey: bf.Citekey, Bib: bf.Entry, Meta: meta}, nil
}

// Save writes both files of the paper. The bibdata file is written first;
// if the meta write fails a freshly created bibdata file is removed again.
func (p *Paper) Save(bibPath, metaPath string) error {
	bibData, err := yaml.Marshal(bibFile{Citekey: p.Citekey, Entry: p.Bib})
	if err != nil {
		return fmt.Errorf("%w: encoding bibdata for %s: %v", apperr.ErrStorage, p.Citekey, err)
	}
	metaData, err := yaml.Marshal(p.Meta)
	if err != nil {
		return fmt.Errorf("%w: encoding meta for %s: %v", apperr.ErrStorage, p.Citekey, err)
	}

	existed := fileutil.Exists(bibPath)
	if err := fileutil.WriteAtomic(bibPath, bibData); err != nil {
		return fmt.Errorf("%w: writing %s: %v", apperr.ErrStorage, bibPath, err)
	}
	if err := fileutil.WriteAtomic(metaPath, metaData); err != nil {
		if !existed {
			_ = os.Remove(bibPath)
		}
		return fmt.Errorf("%w: writing %s: %v", apperr.ErrStorage, metaPath, err)
	}
	return nil
}

// HasTag reports whether the paper carries tag.
func (p *Paper) HasTag(tag string) bool {
	return slices.Contains(p.Meta.Tags, tag)
}

// AddTags adds tags, keeping the list sorted and free of duplicates.
func (p *Paper) AddTags(tags ...string) {
	for _, t := range tags {
		if t != "" && !p.HasTag(t) {
			p.Meta.Tags = append(p.Meta.Tags, t)
		}
	}
	sort.Strings(p.Meta.Tags)
}

// RemoveTags drops tags from the paper.
func (p *Paper) RemoveTags(tags ...string) {
	p.Meta.Tags = slices.DeleteFunc(p.Meta.Tags, func(t string) bool {
		return slices.Contains(tags, t)
	})
	if len(p.Meta.Tags) == 0 {
		p.Meta.Tags = nil
	}
}

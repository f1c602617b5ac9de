package paper

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/papers/internal/apperr"
	"github.com/matsen/papers/internal/reference"
)

func testPaper() *Paper {
	p := New("smith2020", reference.Reference{
		Type:      "article",
		DOI:       "10.1234/smith",
		Title:     "On Things",
		Authors:   []reference.Author{{First: "Jane", Last: "Smith"}},
		Venue:     "Nature",
		Published: reference.PublicationDate{Year: 2020, Month: 5},
		Source:    reference.ImportSource{Type: "bibtex", ID: "smith2020"},
		Extra:     map[string]string{"volume": "12", "pages": "1--10"},
	})
	p.Meta.DocFile = "/home/jane/papers/smith.pdf"
	p.Meta.Notes = "read twice"
	p.AddTags("ml", "biology")
	return p
}

func TestPaper_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	bibPath := filepath.Join(dir, "smith2020.bibyaml")
	metaPath := filepath.Join(dir, "smith2020.meta")

	p := testPaper()
	if err := p.Save(bibPath, metaPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(bibPath, metaPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got.Citekey != p.Citekey {
		t.Errorf("Citekey = %q, want %q", got.Citekey, p.Citekey)
	}
	if got.Bib.Title != p.Bib.Title || got.Bib.DOI != p.Bib.DOI || got.Bib.Venue != p.Bib.Venue {
		t.Errorf("Bib = %+v, want %+v", got.Bib, p.Bib)
	}
	if !reflect.DeepEqual(got.Bib.Authors, p.Bib.Authors) {
		t.Errorf("Authors = %+v, want %+v", got.Bib.Authors, p.Bib.Authors)
	}
	if got.Bib.Published != p.Bib.Published {
		t.Errorf("Published = %+v, want %+v", got.Bib.Published, p.Bib.Published)
	}
	if got.Bib.Source != p.Bib.Source {
		t.Errorf("Source = %+v, want %+v", got.Bib.Source, p.Bib.Source)
	}
	if !reflect.DeepEqual(got.Bib.Extra, p.Bib.Extra) {
		t.Errorf("Extra = %v, want %v", got.Bib.Extra, p.Bib.Extra)
	}
	if got.Meta.DocFile != p.Meta.DocFile || got.Meta.Notes != p.Meta.Notes {
		t.Errorf("Meta = %+v, want %+v", got.Meta, p.Meta)
	}
	if !reflect.DeepEqual(got.Meta.Tags, p.Meta.Tags) {
		t.Errorf("Tags = %v, want %v", got.Meta.Tags, p.Meta.Tags)
	}
	if !got.Meta.Added.Equal(p.Meta.Added) {
		t.Errorf("Added = %v, want %v", got.Meta.Added, p.Meta.Added)
	}
}

func TestPaper_SaveMetaFailureRemovesNewBibFile(t *testing.T) {
	dir := t.TempDir()
	bibPath := filepath.Join(dir, "smith2020.bibyaml")
	metaPath := filepath.Join(dir, "missing", "smith2020.meta")

	err := testPaper().Save(bibPath, metaPath)
	if !errors.Is(err, apperr.ErrStorage) {
		t.Fatalf("Save() error = %v, want ErrStorage", err)
	}
	if _, err := os.Stat(bibPath); !os.IsNotExist(err) {
		t.Errorf("bibdata file left behind after failed save: %v", err)
	}
}

func TestPaper_SaveMetaFailureKeepsExistingBibFile(t *testing.T) {
	dir := t.TempDir()
	bibPath := filepath.Join(dir, "smith2020.bibyaml")
	if err := os.WriteFile(bibPath, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := testPaper().Save(bibPath, filepath.Join(dir, "missing", "x.meta")); err == nil {
		t.Fatal("Save() succeeded, want error")
	}
	if _, err := os.Stat(bibPath); err != nil {
		t.Errorf("existing bibdata file removed: %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bibPath := filepath.Join(dir, "k.bibyaml")
	metaPath := filepath.Join(dir, "k.meta")

	if _, err := Load(bibPath, metaPath); err == nil {
		t.Error("Load() of missing files succeeded")
	}

	os.WriteFile(bibPath, []byte("citekey: k\nentry:\n  title: T\n"), 0644)
	if _, err := Load(bibPath, metaPath); err == nil {
		t.Error("Load() without meta file succeeded")
	}

	os.WriteFile(metaPath, []byte("tags: [unclosed"), 0644)
	if _, err := Load(bibPath, metaPath); err == nil {
		t.Error("Load() of malformed meta succeeded")
	}
}

func TestPaper_Tags(t *testing.T) {
	p := New("k", reference.Reference{})

	p.AddTags("b", "a", "b", "")
	if !reflect.DeepEqual(p.Meta.Tags, []string{"a", "b"}) {
		t.Errorf("AddTags() = %v, want [a b]", p.Meta.Tags)
	}
	if !p.HasTag("a") || p.HasTag("c") {
		t.Errorf("HasTag() inconsistent with %v", p.Meta.Tags)
	}

	p.RemoveTags("a", "missing")
	if !reflect.DeepEqual(p.Meta.Tags, []string{"b"}) {
		t.Errorf("RemoveTags() = %v, want [b]", p.Meta.Tags)
	}
	p.RemoveTags("b")
	if p.Meta.Tags != nil {
		t.Errorf("RemoveTags() of last tag = %v, want nil", p.Meta.Tags)
	}
}

func TestNew_StampsAdded(t *testing.T) {
	p := New("k", reference.Reference{})
	if p.Meta.Added.IsZero() {
		t.Error("New() left Added zero")
	}
	if p.Meta.Added.Location().String() != "UTC" {
		t.Errorf("Added location = %v, want UTC", p.Meta.Added.Location())
	}
}

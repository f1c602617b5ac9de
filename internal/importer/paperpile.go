// Package importer converts exports of other reference managers into entries.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/matsen/papers/internal/reference"
)

// FlexibleString holds a JSON value Paperpile writes either as a string or
// as a number (dates mostly).
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch v := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = FlexibleString(v)
	case json.Number:
		*f = FlexibleString(v.String())
	default:
		return fmt.Errorf("paperpile: want string or number, got %s", data)
	}
	return nil
}

func (f FlexibleString) String() string {
	return string(f)
}

// PaperpileEntry is one item of a Paperpile JSON export.
type PaperpileEntry struct {
	ID        string         `json:"_id"`
	Citekey   string         `json:"citekey"`
	PubType   string         `json:"pubtype"`
	DOI       string         `json:"doi"`
	Title     string         `json:"title"`
	Abstract  string         `json:"abstract"`
	Journal   string         `json:"journal"`
	Volume    FlexibleString `json:"volume"`
	Issue     FlexibleString `json:"issue"`
	Pages     FlexibleString `json:"pages"`
	Publisher string         `json:"publisher"`
	Published struct {
		Year  FlexibleString `json:"year"`
		Month FlexibleString `json:"month"`
		Day   FlexibleString `json:"day"`
	} `json:"published"`
	Author []struct {
		First string `json:"first"`
		Last  string `json:"last"`
		ORCID string `json:"orcid"`
	} `json:"author"`
	Attachments []struct {
		ID         string `json:"_id"`
		ArticlePDF int    `json:"article_pdf"` // 1 = main PDF, 0 = supplement
		Filename   string `json:"filename"`
	} `json:"attachments"`
}

// Validate checks the fields every stored entry needs.
func (e PaperpileEntry) Validate() error {
	return validation.Errors{
		"title":          validation.Validate(e.Title, validation.Required),
		"author":         validation.Validate(e.Author, validation.Required),
		"published.year": validation.Validate(e.Published.Year.String(), validation.Required, is.Digit),
	}.Filter()
}

// Paperpile pubtype codes and their BibTeX entry types.
var pubTypes = map[string]string{
	"JOUR": "article",
	"CONF": "inproceedings",
	"BOOK": "book",
	"CHAP": "incollection",
	"THES": "phdthesis",
	"RPRT": "techreport",
	"PREP": "misc",
	"GEN":  "misc",
}

// Imported is one converted Paperpile entry.
type Imported struct {
	Citekey string
	Ref     reference.Reference
	PDF     string // Main PDF attachment file name, if any
}

// ParsePaperpile parses a Paperpile JSON export. Invalid entries are
// skipped and reported, one error each.
func ParsePaperpile(data []byte) ([]Imported, []error) {
	var entries []PaperpileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, []error{fmt.Errorf("parsing Paperpile JSON: %w", err)}
	}

	var out []Imported
	var errs []error
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i+1, e.Citekey, err))
			continue
		}
		out = append(out, e.toImported())
	}
	return out, errs
}

func (e PaperpileEntry) toImported() Imported {
	ref := reference.Reference{
		Type:      reference.DefaultType,
		DOI:       e.DOI,
		Title:     e.Title,
		Abstract:  e.Abstract,
		Venue:     e.Journal,
		Published: e.date(),
		Source:    reference.ImportSource{Type: "paperpile", ID: e.ID},
	}
	if t, ok := pubTypes[e.PubType]; ok {
		ref.Type = t
	}
	for _, a := range e.Author {
		ref.Authors = append(ref.Authors, reference.Author{First: a.First, Last: a.Last, ORCID: a.ORCID})
	}
	for name, v := range map[string]string{
		"volume":    e.Volume.String(),
		"number":    e.Issue.String(),
		"pages":     e.Pages.String(),
		"publisher": e.Publisher,
	} {
		if v != "" {
			ref.SetExtra(name, v)
		}
	}

	imp := Imported{Citekey: e.Citekey, Ref: ref}
	for _, att := range e.Attachments {
		if att.ArticlePDF == 1 {
			imp.PDF = att.Filename
			break
		}
	}
	return imp
}

// date converts the published block; out-of-range months and days are dropped.
func (e PaperpileEntry) date() reference.PublicationDate {
	d := reference.PublicationDate{}
	d.Year, _ = strconv.Atoi(e.Published.Year.String())
	if m, err := strconv.Atoi(e.Published.Month.String()); err == nil && m >= 1 && m <= 12 {
		d.Month = m
	}
	if day, err := strconv.Atoi(e.Published.Day.String()); err == nil && day >= 1 && day <= 31 {
		d.Day = day
	}
	return d
}

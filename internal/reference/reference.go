// Package reference defines the bibliographic entry types stored for each paper.
package reference

// Reference is the bibliographic entry of a paper.
type Reference struct {
	// Entry type as in BibTeX (article, inproceedings, book, ...)
	Type string `json:"type" yaml:"type"`
	DOI  string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Metadata
	Title    string   `json:"title" yaml:"title"`
	Authors  []Author `json:"authors" yaml:"authors"`
	Abstract string   `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Venue    string   `json:"venue,omitempty" yaml:"venue,omitempty"` // Journal, conference, or preprint server

	// Publication Date
	Published PublicationDate `json:"published" yaml:"published"`

	// Import Tracking
	Source ImportSource `json:"source" yaml:"source"`

	// Fields without a dedicated slot above (volume, pages, publisher, url, ...)
	Extra map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// PublicationDate represents a publication date with optional month and day.
type PublicationDate struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month,omitempty" yaml:"month,omitempty"` // 1-12, 0 if unknown
	Day   int `json:"day,omitempty" yaml:"day,omitempty"`     // 1-31, 0 if unknown
}

// ImportSource tracks where a reference was imported from.
type ImportSource struct {
	Type string `json:"type" yaml:"type"`                 // bibtex, bibyaml, paperpile, manual
	ID   string `json:"id,omitempty" yaml:"id,omitempty"` // Original ID from source system
}

// DefaultType is used for entries that do not declare one.
const DefaultType = "article"

// EntryType returns the entry type, defaulting to article.
func (r Reference) EntryType() string {
	if r.Type == "" {
		return DefaultType
	}
	return r.Type
}

// SetExtra stores a field without a dedicated slot.
func (r *Reference) SetExtra(name, value string) {
	if r.Extra == nil {
		r.Extra = make(map[string]string)
	}
	r.Extra[name] = value
}

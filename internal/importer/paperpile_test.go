package importer

import (
	"encoding/json"
	"testing"
)

func TestFlexibleString_String(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string year", `"2026"`, "2026"},
		{"number year", `2026`, "2026"},
		{"null value", `null`, ""},
		{"float number", `2026.0`, "2026.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexibleString
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("UnmarshalJSON() error = %v", err)
			}
			if got := f.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlexibleString_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `[1,2,3]`},
		{"object", `{"key": "value"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexibleString
			if err := json.Unmarshal([]byte(tt.input), &f); err == nil {
				t.Errorf("UnmarshalJSON() expected error for input %s", tt.input)
			}
		})
	}
}

func TestParsePaperpile_ValidEntry(t *testing.T) {
	data := []byte(`[{
		"_id": "abc123",
		"citekey": "Smith2026-ab",
		"doi": "10.1234/test",
		"title": "Test Paper",
		"abstract": "This is a test abstract",
		"journal": "Test Journal",
		"published": {"year": "2026", "month": "3", "day": "15"},
		"author": [
			{"first": "John", "last": "Smith", "orcid": "0000-0001-2345-6789"},
			{"first": "Jane", "last": "Doe"}
		],
		"attachments": [
			{"_id": "att1", "article_pdf": 1, "filename": "Papers/main.pdf"},
			{"_id": "att2", "article_pdf": 0, "filename": "Papers/supplement.pdf"}
		]
	}]`)

	imported, errs := ParsePaperpile(data)
	if len(errs) > 0 {
		t.Fatalf("ParsePaperpile() returned errors: %v", errs)
	}
	if len(imported) != 1 {
		t.Fatalf("ParsePaperpile() returned %d entries, want 1", len(imported))
	}

	imp := imported[0]
	if imp.Citekey != "Smith2026-ab" {
		t.Errorf("Citekey = %v, want Smith2026-ab", imp.Citekey)
	}
	if imp.PDF != "Papers/main.pdf" {
		t.Errorf("PDF = %v, want Papers/main.pdf", imp.PDF)
	}

	ref := imp.Ref
	if ref.DOI != "10.1234/test" {
		t.Errorf("DOI = %v, want 10.1234/test", ref.DOI)
	}
	if ref.Title != "Test Paper" {
		t.Errorf("Title = %v, want Test Paper", ref.Title)
	}
	if ref.Venue != "Test Journal" {
		t.Errorf("Venue = %v, want Test Journal", ref.Venue)
	}
	if ref.Type != "article" {
		t.Errorf("Type = %v, want article", ref.Type)
	}

	if len(ref.Authors) != 2 {
		t.Fatalf("Authors count = %d, want 2", len(ref.Authors))
	}
	if ref.Authors[0].First != "John" || ref.Authors[0].Last != "Smith" {
		t.Errorf("Authors[0] = %+v, want John Smith", ref.Authors[0])
	}
	if ref.Authors[0].ORCID != "0000-0001-2345-6789" {
		t.Errorf("Authors[0].ORCID = %v, want 0000-0001-2345-6789", ref.Authors[0].ORCID)
	}

	if ref.Published.Year != 2026 || ref.Published.Month != 3 || ref.Published.Day != 15 {
		t.Errorf("Published = %+v, want 2026-03-15", ref.Published)
	}

	if ref.Source.Type != "paperpile" || ref.Source.ID != "abc123" {
		t.Errorf("Source = %+v, want paperpile/abc123", ref.Source)
	}
}

func TestParsePaperpile_NoCitekey(t *testing.T) {
	data := []byte(`[{
		"_id": "abc123",
		"title": "Test Paper",
		"published": {"year": "2026"},
		"author": [{"first": "John", "last": "Smith"}]
	}]`)

	imported, errs := ParsePaperpile(data)
	if len(errs) > 0 {
		t.Fatalf("ParsePaperpile() returned errors: %v", errs)
	}
	if len(imported) != 1 {
		t.Fatalf("ParsePaperpile() returned %d entries, want 1", len(imported))
	}

	// Without a citekey the repository derives one, so none is invented here
	if imported[0].Citekey != "" {
		t.Errorf("Citekey = %v, want empty", imported[0].Citekey)
	}
}

func TestParsePaperpile_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing title",
			data: `[{"_id": "abc", "published": {"year": "2026"}, "author": [{"first": "John", "last": "Smith"}]}]`,
		},
		{
			name: "missing author",
			data: `[{"_id": "abc", "title": "Test", "published": {"year": "2026"}, "author": []}]`,
		},
		{
			name: "missing year",
			data: `[{"_id": "abc", "title": "Test", "author": [{"first": "John", "last": "Smith"}]}]`,
		},
		{
			name: "invalid year",
			data: `[{"_id": "abc", "title": "Test", "published": {"year": "invalid"}, "author": [{"last": "Smith"}]}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imported, errs := ParsePaperpile([]byte(tt.data))
			if len(errs) == 0 {
				t.Errorf("ParsePaperpile() expected error for %s, got: %+v", tt.name, imported)
			}
		})
	}
}

func TestParsePaperpile_NumericYearMonth(t *testing.T) {
	// Paperpile exports both string and numeric dates
	data := []byte(`[{
		"_id": "abc123",
		"title": "Test Paper",
		"published": {"year": 2026, "month": 6},
		"author": [{"first": "John", "last": "Smith"}]
	}]`)

	imported, errs := ParsePaperpile(data)
	if len(errs) > 0 {
		t.Fatalf("ParsePaperpile() returned errors: %v", errs)
	}
	if imported[0].Ref.Published.Year != 2026 {
		t.Errorf("Published.Year = %d, want 2026", imported[0].Ref.Published.Year)
	}
	if imported[0].Ref.Published.Month != 6 {
		t.Errorf("Published.Month = %d, want 6", imported[0].Ref.Published.Month)
	}
}

func TestParsePaperpile_InvalidJSON(t *testing.T) {
	imported, errs := ParsePaperpile([]byte(`not valid json`))
	if len(errs) == 0 {
		t.Errorf("ParsePaperpile() expected error for invalid JSON, got: %+v", imported)
	}
}

func TestParsePaperpile_PartialErrors(t *testing.T) {
	data := []byte(`[
		{"_id": "1", "citekey": "Valid2026", "title": "Valid", "published": {"year": "2026"}, "author": [{"last": "Valid"}]},
		{"_id": "2", "citekey": "Invalid", "title": "", "published": {"year": "2026"}, "author": [{"last": "Invalid"}]},
		{"_id": "3", "citekey": "AlsoValid2026", "title": "Also Valid", "published": {"year": "2025"}, "author": [{"last": "Also"}]}
	]`)

	imported, errs := ParsePaperpile(data)
	if len(imported) != 2 {
		t.Errorf("ParsePaperpile() returned %d valid entries, want 2", len(imported))
	}
	if len(errs) != 1 {
		t.Errorf("ParsePaperpile() returned %d errors, want 1", len(errs))
	}
	if imported[0].Citekey != "Valid2026" || imported[1].Citekey != "AlsoValid2026" {
		t.Errorf("Citekeys = [%s, %s], want [Valid2026, AlsoValid2026]", imported[0].Citekey, imported[1].Citekey)
	}
}

func TestParsePaperpile_TypeAndExtras(t *testing.T) {
	data := []byte(`[{
		"_id": "x1",
		"pubtype": "CONF",
		"title": "Folding at Scale",
		"journal": "Proc. Folding",
		"volume": 12,
		"issue": "3",
		"pages": "1-10",
		"published": {"year": 2021, "month": 13},
		"author": [{"first": "Ann", "last": "Lee"}]
	}]`)

	imported, errs := ParsePaperpile(data)
	if len(errs) > 0 {
		t.Fatalf("ParsePaperpile() returned errors: %v", errs)
	}
	ref := imported[0].Ref
	if ref.Type != "inproceedings" {
		t.Errorf("Type = %v, want inproceedings", ref.Type)
	}
	want := map[string]string{"volume": "12", "number": "3", "pages": "1-10"}
	for k, v := range want {
		if ref.Extra[k] != v {
			t.Errorf("Extra[%s] = %q, want %q", k, ref.Extra[k], v)
		}
	}
	if _, ok := ref.Extra["publisher"]; ok {
		t.Error("empty publisher stored")
	}
	if ref.Published.Month != 0 {
		t.Errorf("Published.Month = %d, want 0 for out-of-range month", ref.Published.Month)
	}
}

func TestPaperpileEntry_UnknownPubType(t *testing.T) {
	data := []byte(`[{"pubtype": "ZZZ", "title": "T", "published": {"year": "2020"}, "author": [{"last": "X"}]}]`)
	imported, errs := ParsePaperpile(data)
	if len(errs) > 0 {
		t.Fatalf("ParsePaperpile() returned errors: %v", errs)
	}
	if imported[0].Ref.Type != "article" {
		t.Errorf("Type = %v, want article", imported[0].Ref.Type)
	}
}

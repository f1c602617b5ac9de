package reference

import (
	"reflect"
	"testing"
)

func TestParseAuthor(t *testing.T) {
	tests := []struct {
		in   string
		want Author
	}{
		{"Smith, Jane", Author{First: "Jane", Last: "Smith"}},
		{"Jane Smith", Author{First: "Jane", Last: "Smith"}},
		{"Jane Q. Smith", Author{First: "Jane Q.", Last: "Smith"}},
		{"{van der Berg}, Jan", Author{First: "Jan", Last: "van der Berg"}},
		{"Plato", Author{Last: "Plato"}},
		{"  Doe ,  John ", Author{First: "John", Last: "Doe"}},
	}
	for _, tt := range tests {
		if got := ParseAuthor(tt.in); got != tt.want {
			t.Errorf("ParseAuthor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		in   string
		want []Author
	}{
		{"", nil},
		{"Smith, Jane", []Author{{First: "Jane", Last: "Smith"}}},
		{
			"Smith, Jane and Doe, John",
			[]Author{{First: "Jane", Last: "Smith"}, {First: "John", Last: "Doe"}},
		},
		{
			"{Barnes and Noble} and Andrew Sand",
			[]Author{{Last: "Barnes and Noble"}, {First: "Andrew", Last: "Sand"}},
		},
		{
			"Jane Smith AND John\nDoe",
			[]Author{{First: "Jane", Last: "Smith"}, {First: "John", Last: "Doe"}},
		},
	}
	for _, tt := range tests {
		if got := ParseAuthors(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseAuthors(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestAuthor_FullName(t *testing.T) {
	if got := (Author{First: "Jane", Last: "Smith"}).FullName(); got != "Jane Smith" {
		t.Errorf("FullName() = %q", got)
	}
	if got := (Author{Last: "Plato"}).FullName(); got != "Plato" {
		t.Errorf("FullName() = %q", got)
	}
}

func TestReference_EntryTypeAndExtra(t *testing.T) {
	var r Reference
	if r.EntryType() != DefaultType {
		t.Errorf("EntryType() = %q, want %q", r.EntryType(), DefaultType)
	}
	r.SetExtra("volume", "3")
	if r.Extra["volume"] != "3" {
		t.Errorf("Extra = %v", r.Extra)
	}
}

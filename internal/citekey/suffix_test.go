package citekey

import "testing"

func TestSuffix(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "a"},
		{2, "b"},
		{26, "z"},
		{27, "aa"},
		{28, "ab"},
		{52, "az"},
		{53, "ba"},
		{702, "zz"},
		{703, "aaa"},
	}

	for _, tt := range tests {
		if got := Suffix(tt.n); got != tt.want {
			t.Errorf("Suffix(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSuffix_Distinct(t *testing.T) {
	seen := make(map[string]int)
	for n := 0; n < 1000; n++ {
		s := Suffix(n)
		if prev, ok := seen[s]; ok {
			t.Fatalf("Suffix(%d) = Suffix(%d) = %q", n, prev, s)
		}
		seen[s] = n
	}
}

func TestCounter_Increment(t *testing.T) {
	c := Counter("zz") // little-endian: value "zz"
	c.Increment()
	if got := c.String(); got != "aaa" {
		t.Errorf("after zz, got %q, want %q", got, "aaa")
	}

	c = Counter("za") // renders "az"
	c.Increment()
	if got := c.String(); got != "ba" {
		t.Errorf("after az, got %q, want %q", got, "ba")
	}
}

func TestFree(t *testing.T) {
	taken := func(keys ...string) func(string) bool {
		set := make(map[string]bool)
		for _, k := range keys {
			set[k] = true
		}
		return func(k string) bool { return set[k] }
	}

	tests := []struct {
		name  string
		base  string
		taken []string
		want  string
	}{
		{"base free", "smith2020", nil, "smith2020"},
		{"base taken", "smith2020", []string{"smith2020"}, "smith2020a"},
		{"skips taken suffixes", "smith2020", []string{"smith2020", "smith2020a", "smith2020b"}, "smith2020c"},
		{"gap is reused", "smith2020", []string{"smith2020", "smith2020b"}, "smith2020a"},
		{"other bases ignored", "doe2019", []string{"smith2020"}, "doe2019"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Free(tt.base, taken(tt.taken...)); got != tt.want {
				t.Errorf("Free(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestFree_PastSingleLetters(t *testing.T) {
	taken := map[string]bool{"k": true}
	for n := 1; n <= 26; n++ {
		taken["k"+Suffix(n)] = true
	}
	if got := Free("k", func(s string) bool { return taken[s] }); got != "kaa" {
		t.Errorf("Free() = %q, want %q", got, "kaa")
	}
}

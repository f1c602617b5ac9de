// Package citekey allocates, derives and validates paper citekeys.
package citekey

// Counter is a base-26 number written with the letters a-z, least
// significant digit first. The empty counter is zero and renders as "".
type Counter []byte

// Increment advances the counter by one. A 'z' digit rolls over to 'a' and
// carries; when every digit overflows a new most significant 'a' is appended.
func (c *Counter) Increment() {
	for i := range *c {
		if (*c)[i] == 'z' {
			(*c)[i] = 'a'
			continue
		}
		(*c)[i]++
		return
	}
	*c = append(*c, 'a')
}

// String renders the counter most significant digit first.
func (c Counter) String() string {
	out := make([]byte, len(c))
	for i, d := range c {
		out[len(c)-1-i] = d
	}
	return string(out)
}

// Suffix returns the n-th disambiguating suffix: "", "a", ..., "z", "aa", "ab", ...
func Suffix(n int) string {
	var c Counter
	for i := 0; i < n; i++ {
		c.Increment()
	}
	return c.String()
}

// Free returns the first of base+Suffix(0), base+Suffix(1), ... for which
// taken reports false. It terminates for any finite set of taken keys.
func Free(base string, taken func(string) bool) string {
	var c Counter
	for taken(base + c.String()) {
		c.Increment()
	}
	return base + c.String()
}

package bibfile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/matsen/papers/internal/reference"
)

// monthNames maps the standard BibTeX month macros to month numbers.
var monthNames = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// bibParser is a small recursive-descent reader for BibTeX sources.
type bibParser struct {
	src    string
	pos    int
	macros map[string]string
}

// ParseBibTeX parses every regular entry of a BibTeX source. @string
// definitions are expanded; @comment and @preamble blocks are skipped.
func ParseBibTeX(src string) ([]Entry, error) {
	p := &bibParser{src: src, macros: make(map[string]string)}
	for name := range monthNames {
		p.macros[name] = name
	}

	var entries []Entry
	for {
		at := strings.IndexByte(p.src[p.pos:], '@')
		if at < 0 {
			return entries, nil
		}
		p.pos += at + 1

		// Text outside entries is a comment, so an '@' that does not start
		// an entry (an e-mail address, say) is skipped.
		kind := strings.ToLower(p.ident())
		if kind == "" {
			continue
		}
		p.skipSpace()
		closer, err := p.open()
		if err != nil {
			continue
		}

		switch kind {
		case "comment", "preamble":
			if err := p.skipBlock(closer); err != nil {
				return nil, err
			}
		case "string":
			if err := p.parseMacro(closer); err != nil {
				return nil, err
			}
		default:
			entry, err := p.parseEntry(kind, closer)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
}

func (p *bibParser) errorf(format string, args ...interface{}) error {
	line := strings.Count(p.src[:min(p.pos, len(p.src))], "\n") + 1
	return fmt.Errorf("bibtex line %d: %s", line, fmt.Sprintf(format, args...))
}

func (p *bibParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *bibParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *bibParser) skipSpace() {
	for !p.eof() && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		strings.IndexByte("_-:.+/'", c) >= 0
}

func (p *bibParser) ident() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// open consumes the opening delimiter of an entry and returns its closer.
func (p *bibParser) open() (byte, error) {
	switch p.peek() {
	case '{':
		p.pos++
		return '}', nil
	case '(':
		p.pos++
		return ')', nil
	}
	return 0, p.errorf("expected '{' or '(' to open entry")
}

// skipBlock skips to the closer matching an already consumed opener.
func (p *bibParser) skipBlock(closer byte) error {
	depth := 0
	for ; !p.eof(); p.pos++ {
		c := p.src[p.pos]
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closer && depth == 0:
			p.pos++
			return nil
		}
	}
	return p.errorf("unterminated block")
}

func (p *bibParser) parseMacro(closer byte) error {
	p.skipSpace()
	name := strings.ToLower(p.ident())
	if name == "" {
		return p.errorf("expected macro name in @string")
	}
	p.skipSpace()
	if p.peek() != '=' {
		return p.errorf("expected '=' after macro %s", name)
	}
	p.pos++
	val, err := p.value()
	if err != nil {
		return err
	}
	p.macros[name] = val
	p.skipSpace()
	if p.peek() != closer {
		return p.errorf("expected end of @string %s", name)
	}
	p.pos++
	return nil
}

func (p *bibParser) parseEntry(kind string, closer byte) (Entry, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && p.src[p.pos] != ',' && p.src[p.pos] != closer {
		p.pos++
	}
	key := strings.TrimSpace(p.src[start:p.pos])
	if p.eof() {
		return Entry{}, p.errorf("unterminated entry %s", key)
	}

	fields := make(map[string]string)
	if p.peek() == ',' {
		p.pos++
	}
	for {
		p.skipSpace()
		if p.eof() {
			return Entry{}, p.errorf("unterminated entry %s", key)
		}
		if p.peek() == closer {
			p.pos++
			break
		}

		name := strings.ToLower(p.ident())
		if name == "" {
			return Entry{}, p.errorf("expected field name in entry %s", key)
		}
		p.skipSpace()
		if p.peek() != '=' {
			return Entry{}, p.errorf("expected '=' after field %s in entry %s", name, key)
		}
		p.pos++
		val, err := p.value()
		if err != nil {
			return Entry{}, err
		}
		fields[name] = val

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closer:
			p.pos++
			return Entry{Citekey: key, Ref: fieldsToReference(kind, key, fields)}, nil
		default:
			return Entry{}, p.errorf("expected ',' after field %s in entry %s", name, key)
		}
	}

	return Entry{Citekey: key, Ref: fieldsToReference(kind, key, fields)}, nil
}

// value reads a field value: braced, quoted, numeric or macro parts
// joined with '#'.
func (p *bibParser) value() (string, error) {
	var parts []string
	for {
		p.skipSpace()
		switch c := p.peek(); {
		case c == '{':
			s, err := p.delimited('}')
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		case c == '"':
			s, err := p.delimited('"')
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		case isIdentByte(c):
			word := p.ident()
			if _, err := strconv.Atoi(word); err == nil {
				parts = append(parts, word)
			} else if expanded, ok := p.macros[strings.ToLower(word)]; ok {
				parts = append(parts, expanded)
			} else {
				parts = append(parts, word)
			}
		default:
			return "", p.errorf("expected field value")
		}

		p.skipSpace()
		if p.peek() != '#' {
			return strings.Join(strings.Fields(strings.Join(parts, "")), " "), nil
		}
		p.pos++
	}
}

// delimited reads text up to close, honouring nested braces. The opening
// delimiter is at p.pos.
func (p *bibParser) delimited(close byte) (string, error) {
	p.pos++
	start := p.pos
	depth := 0
	for ; !p.eof(); p.pos++ {
		c := p.src[p.pos]
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == close && depth == 0:
			s := p.src[start:p.pos]
			p.pos++
			return s, nil
		case c == '}':
			return "", p.errorf("unbalanced '}' in value")
		}
	}
	return "", p.errorf("unterminated value")
}

// fieldsToReference maps BibTeX fields onto a Reference. Fields without a
// dedicated slot are kept in Extra.
func fieldsToReference(kind, key string, fields map[string]string) reference.Reference {
	ref := reference.Reference{
		Type:   kind,
		Source: reference.ImportSource{Type: "bibtex", ID: key},
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val := fields[name]
		switch name {
		case "author":
			ref.Authors = reference.ParseAuthors(val)
		case "title":
			ref.Title = stripBraces(val)
		case "abstract":
			ref.Abstract = stripBraces(val)
		case "journal", "booktitle":
			if ref.Venue == "" {
				ref.Venue = stripBraces(val)
			} else {
				ref.SetExtra(name, val)
			}
		case "doi":
			ref.DOI = val
		case "year":
			if year, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
				ref.Published.Year = year
			} else {
				ref.SetExtra(name, val)
			}
		case "month":
			if month := parseMonth(val); month > 0 {
				ref.Published.Month = month
			} else {
				ref.SetExtra(name, val)
			}
		case "day":
			if day, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && day >= 1 && day <= 31 {
				ref.Published.Day = day
			} else {
				ref.SetExtra(name, val)
			}
		default:
			ref.SetExtra(name, val)
		}
	}
	return ref
}

// stripBraces drops protective braces and undoes the escapes that export
// adds, so text survives an import/export round trip unchanged.
func stripBraces(s string) string {
	return latexUnescaper.Replace(s)
}

var latexUnescaper = strings.NewReplacer(
	`\&`, "&", `\%`, "%", `\$`, "$", `\#`, "#", `\_`, "_",
	`\{`, "{", `\}`, "}",
	`\textasciitilde{}`, "~", `\textasciicircum{}`, "^",
	"{", "", "}", "",
)

// parseMonth accepts "3", "mar" or "March".
func parseMonth(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	if len(s) >= 3 {
		return monthNames[s[:3]]
	}
	return 0
}

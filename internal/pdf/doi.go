package pdf

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// inspectPages bounds how far into a document Inspect reads.
const inspectPages = 3

var doiPattern = regexp.MustCompile(`\b10\.\d{4,9}/[^\s"<>{}|\\^\[\]` + "`" + `]+`)

// Words marking running headers and banners rather than a title.
var bannerWords = []string{"journal", "copyright", "©", "preprint", "volume", "doi", "http", "licen"}

// Info is what Inspect could read from a document.
type Info struct {
	DOI   string
	Title string
}

// Inspect reads the text of the first pages of a PDF for a DOI and a title
// guess. Finding neither is not an error.
func Inspect(path string) (Info, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var info Info
	for i := 1; i <= min(r.NumPage(), inspectPages) && info.DOI == ""; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i == 1 {
			info.Title = guessTitle(text)
		}
		info.DOI = findDOI(text)
	}
	return info, nil
}

// guessTitle picks the first long line of a first page that is not a banner.
func guessTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if utf8.RuneCountInString(line) >= 20 && !isBanner(line) {
			return line
		}
	}
	return ""
}

func isBanner(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range bannerWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// findDOI returns the first well-formed DOI in text, without trailing
// sentence punctuation.
func findDOI(text string) string {
	for _, m := range doiPattern.FindAllString(text, -1) {
		if doi := strings.TrimRight(m, ".,;:)"); isValidDOI(doi) {
			return doi
		}
	}
	return ""
}

func isValidDOI(doi string) bool {
	prefix, suffix, ok := strings.Cut(doi, "/")
	return ok && strings.HasPrefix(prefix, "10.") && len(prefix) > len("10.") && suffix != ""
}

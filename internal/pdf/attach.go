package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/matsen/papers/internal/paper"
)

// SupportedExtensions lists the document types that can be attached.
var SupportedExtensions = []string{".pdf", ".ps", ".djvu"}

// Attacher records a document on a paper. Documents stay where they are;
// the paper's metadata points at them by absolute path.
type Attacher struct {
	Logger *slog.Logger
}

// Attach validates docPath and stores it in p.Meta.DocFile. For a PDF whose
// entry has no DOI or title, they are looked up in the document text.
func (a Attacher) Attach(p *paper.Paper, docPath string) error {
	abs, err := filepath.Abs(docPath)
	if err != nil {
		return fmt.Errorf("resolving document path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("document %s: %w", docPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("document %s is a directory", docPath)
	}

	ext := strings.ToLower(filepath.Ext(abs))
	if !isSupported(ext) {
		return fmt.Errorf("document %s: unsupported type %q (want one of %v)", docPath, ext, SupportedExtensions)
	}
	p.Meta.DocFile = abs

	if ext == ".pdf" {
		a.fillFromPDF(p, abs)
	}
	return nil
}

// fillFromPDF completes a missing DOI or title from the document text.
// Failures only cost the enrichment, never the attachment.
func (a Attacher) fillFromPDF(p *paper.Paper, path string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger().Warn("pdf: reader panicked", slog.String("path", path), slog.Any("panic", r))
		}
	}()

	if p.Bib.DOI != "" && p.Bib.Title != "" {
		return
	}
	info, err := Inspect(path)
	if err != nil {
		a.logger().Debug("pdf: inspection failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	if p.Bib.DOI == "" && info.DOI != "" {
		p.Bib.DOI = info.DOI
		a.logger().Debug("pdf: DOI extracted", slog.String("path", path), slog.String("doi", info.DOI))
	}
	if p.Bib.Title == "" {
		p.Bib.Title = info.Title
	}
}

func (a Attacher) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func isSupported(ext string) bool {
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

package main

import (
	"fmt"

	"github.com/matsen/papers/internal/export"
	"github.com/matsen/papers/internal/fileutil"
	"github.com/matsen/papers/internal/paper"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportAppend bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this .bib file instead of stdout")
	exportCmd.Flags().BoolVar(&exportAppend, "append", false, "Append to --output, skipping entries already there (by DOI or key)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [citekey-or-number...]",
	Short: "Export papers as BibTeX",
	Long: `Export papers as BibTeX, all of them or only those named.

Examples:
  papers export > library.bib
  papers export smith2020 3 -o refs.bib
  papers export -o refs.bib --append`,
	RunE: runExport,
}

// ExportResponse is the response for export with --output.
type ExportResponse struct {
	Path     string `json:"path"`
	Exported int    `json:"exported"`
	Skipped  int    `json:"skipped,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportAppend && exportOutput == "" {
		exitWithError(ExitError, "--append requires --output")
	}

	repo := mustOpenRepository()

	var papers []*paper.Paper
	if len(args) > 0 {
		for _, key := range args {
			p, err := repo.PaperFromAny(key)
			if err != nil {
				exitForError(err, "getting paper")
			}
			papers = append(papers, p)
		}
	} else {
		var err error
		papers, err = repo.Papers()
		if err != nil {
			exitForError(err, "loading papers")
		}
	}

	// BibTeX on stdout is always text output, never JSON
	if exportOutput == "" {
		fmt.Print(export.ToBibTeXList(papers))
		return nil
	}

	skipped := 0
	if exportAppend {
		existing, err := export.ParseBibTeXFile(exportOutput)
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", exportOutput, err)
		}
		var fresh []*paper.Paper
		for _, p := range papers {
			if existing.HasEntry(p.Citekey, p.Bib.DOI) {
				skipped++
				continue
			}
			existing.Add(p.Citekey, p.Bib.DOI)
			fresh = append(fresh, p)
		}
		papers = fresh
		if len(papers) > 0 {
			if err := export.AppendToBibFile(exportOutput, export.ToBibTeXList(papers)); err != nil {
				exitWithError(ExitError, "appending to %s: %v", exportOutput, err)
			}
		}
	} else if err := fileutil.WriteAtomic(exportOutput, []byte(export.ToBibTeXList(papers))); err != nil {
		exitWithError(ExitError, "writing %s: %v", exportOutput, err)
	}

	if humanOutput {
		fmt.Printf("Exported %d papers to %s", len(papers), exportOutput)
		if skipped > 0 {
			fmt.Printf(" (%d already present)", skipped)
		}
		fmt.Println()
	} else {
		outputJSON(ExportResponse{Path: exportOutput, Exported: len(papers), Skipped: skipped})
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/matsen/papers/internal/clipboard"
	"github.com/matsen/papers/internal/export"
	"github.com/spf13/cobra"
)

var (
	getBibtex bool
	getCopy   bool
)

func init() {
	getCmd.Flags().BoolVarP(&getCopy, "copy", "c", false, "Copy the citekey (or with --bibtex the entry) to the clipboard")
	getCmd.Flags().BoolVar(&getBibtex, "bibtex", false, "Print the paper as a BibTeX entry")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <citekey-or-number>",
	Short: "Show a single paper",
	Long: `Show a single paper by citekey or number. A citekey wins over a number
when both match.

Examples:
  papers get smith2020
  papers get 12 --human
  papers get smith2020 --bibtex
  papers get 12 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	if getCopy && !clipboard.IsAvailable() {
		exitWithError(ExitError, "--copy: %v", clipboard.ErrClipboardUnavailable)
	}

	repo := mustOpenRepository()

	p, err := repo.PaperFromAny(args[0])
	if err != nil {
		exitForError(err, "getting paper")
	}
	num, _ := repo.Number(p.Citekey)

	if getCopy {
		text := p.Citekey
		if getBibtex {
			text = export.ToBibTeX(p)
		}
		if err := clipboard.Copy(text); err != nil {
			exitWithError(ExitError, "copying to clipboard: %v", err)
		}
	}

	switch {
	case getBibtex:
		fmt.Print(export.ToBibTeX(p))
	case humanOutput:
		printPaperDetail(num, p)
	default:
		outputJSON(PaperResult{Number: num, Paper: p})
	}
	return nil
}

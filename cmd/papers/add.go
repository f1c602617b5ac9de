package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addCitekey string
	addTags    []string
)

func init() {
	addCmd.Flags().StringVarP(&addCitekey, "citekey", "k", "", "Citekey to file the paper under (default: from the entry, else derived)")
	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "Tag the new paper (can be repeated)")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add [doc] <bibfile>",
	Short: "Add a paper from a bibliographic file and an optional document",
	Long: `Add one paper. The bibliographic file (.bib, .bibyaml, .yaml or Paperpile
.json) must hold exactly one entry; use import for batches. The document
(.pdf, .ps or .djvu) is referenced by absolute path, not copied.

The citekey is --citekey if given, else the key in the file, else derived
from the first author and year with a suffix a, b, ... when taken.

Examples:
  papers add smith2020.pdf smith2020.bib
  papers add entry.bib --citekey smith2020 -t ml -t toread`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	repo := mustOpenRepository()

	docPath, bibPath := "", args[0]
	if len(args) == 2 {
		docPath, bibPath = args[0], args[1]
	}

	p, err := repo.AddPaperFromPaths(docPath, bibPath, addCitekey, addTags...)
	if err != nil {
		exitForError(err, "adding paper")
	}

	num, _ := repo.Number(p.Citekey)
	if humanOutput {
		fmt.Printf("Added [%d] %s\n", num, p.Citekey)
	} else {
		outputJSON(PaperResult{Number: num, Paper: p})
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/matsen/papers/internal/pdf"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <citekey-or-number>",
	Short: "Open a paper's document in the configured reader",
	Long: `Open a paper's document in the configured reader (doc_reader in the
global config: system, skim, zathura, evince or okular).

Examples:
  papers open smith2020
  papers open 4`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

// OpenedPaper is the response for the open command.
type OpenedPaper struct {
	Citekey string `json:"citekey"`
	Path    string `json:"path"`
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg := mustLoadGlobalConfig()
	repo := mustOpenRepository()

	p, err := repo.PaperFromAny(args[0])
	if err != nil {
		exitForError(err, "getting paper")
	}
	if p.Meta.DocFile == "" {
		exitWithError(ExitError, "paper %s has no document attached", p.Citekey)
	}

	if err := pdf.NewOpener(cfg.Reader()).Open(p.Meta.DocFile); err != nil {
		exitWithError(ExitError, "opening document: %v", err)
	}

	if humanOutput {
		fmt.Printf("Opening %s: %s\n", p.Citekey, p.Meta.DocFile)
	} else {
		outputJSON(OpenedPaper{Citekey: p.Citekey, Path: p.Meta.DocFile})
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/matsen/papers/internal/repository"
	"github.com/spf13/cobra"
)

var importSkipExisting bool

func init() {
	importCmd.Flags().BoolVar(&importSkipExisting, "skip-existing", false, "Skip entries whose citekey is already taken")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <bibfile>",
	Short: "Add every entry of a bibliographic file",
	Long: `Add every entry of a .bib, .bibyaml, .yaml or Paperpile .json file.

The import stops at the first entry that cannot be added; the papers added
before it stay. Entries without a citekey get one derived from the first
author and year.

Examples:
  papers import library.bib
  papers import paperpile-export.json --skip-existing`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResponse is the response for the import command.
type ImportResponse struct {
	repository.ImportResult
	Error string `json:"error,omitempty"`
}

func runImport(cmd *cobra.Command, args []string) error {
	repo := mustOpenRepository()

	res, err := repo.AddPapers(args[0], repository.ImportOptions{SkipExisting: importSkipExisting})

	if humanOutput {
		fmt.Printf("Added %d papers", len(res.Added))
		if len(res.Skipped) > 0 {
			fmt.Printf(", skipped %d existing", len(res.Skipped))
		}
		fmt.Println()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	} else {
		resp := ImportResponse{ImportResult: res}
		if err != nil {
			resp.Error = err.Error()
		}
		outputJSON(resp)
	}

	if err != nil {
		return exitErrorSilent(exitCodeFor(err))
	}
	return nil
}

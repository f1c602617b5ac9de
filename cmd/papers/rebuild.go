package main

import (
	"fmt"

	"github.com/matsen/papers/internal/repository"
	"github.com/matsen/papers/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the search cache from the paper files",
	Long: `Rebuild the SQLite search cache from the paper files.

The cache lives in the user cache directory, never in the repository, and
can be deleted at any time. search rebuilds it when the number of papers
changed and tag refreshes it; run rebuild after editing paper files by hand.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status string `json:"status"`
	Papers int    `json:"papers"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repo := mustOpenRepository()
	db := mustOpenCache(repo.Root())
	defer db.Close()

	count := mustRebuildCache(repo, db)

	if humanOutput {
		fmt.Printf("Rebuilt search cache with %d papers\n", count)
	} else {
		outputJSON(RebuildResult{Status: "rebuilt", Papers: count})
	}
	return nil
}

// mustRebuildCache refills the cache from the repository, exits on error.
func mustRebuildCache(repo *repository.Repository, db *storage.DB) int {
	papers, err := repo.Papers()
	if err != nil {
		exitForError(err, "loading papers")
	}
	count, err := db.Rebuild(papers)
	if err != nil {
		exitWithError(ExitError, "rebuilding cache: %v", err)
	}
	return count
}

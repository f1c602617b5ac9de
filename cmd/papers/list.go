package main

import (
	"fmt"

	"github.com/matsen/papers/internal/author"
	"github.com/matsen/papers/internal/paper"
	"github.com/spf13/cobra"
)

var (
	listTags    []string
	listAuthors []string
)

func init() {
	listCmd.Flags().StringArrayVarP(&listAuthors, "author", "a", nil, "Only papers by this author (\"Last\", \"First Last\" or \"Last, First\"; can be repeated)")
	listCmd.Flags().StringArrayVarP(&listTags, "tag", "t", nil, "Only papers carrying this tag (can be repeated, AND logic)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List papers in number order",
	Long: `List papers in number order, optionally only those carrying all given
tags and written by all given authors. Last names match exactly and first
names by prefix, ignoring case and accents.

Examples:
  papers list --human
  papers list -t toread
  papers list -a "Tim Yu" -a Bloom`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repo := mustOpenRepository()

	papers, err := repo.Papers()
	if err != nil {
		exitForError(err, "loading papers")
	}

	authors := author.ParseQueries(listAuthors)
	results := make([]PaperResult, 0, len(papers))
	for i, p := range papers {
		if hasAllTags(p, listTags) && author.AllMatch(authors, p.Bib.Authors) {
			results = append(results, PaperResult{Number: i, Paper: p})
		}
	}

	if humanOutput {
		if len(results) == 0 {
			fmt.Println("No papers")
			return nil
		}
		for _, r := range results {
			printPaperSummary(r.Number, r.Paper)
		}
	} else {
		outputJSON(results)
	}
	return nil
}

func hasAllTags(p *paper.Paper, tags []string) bool {
	for _, t := range tags {
		if !p.HasTag(t) {
			return false
		}
	}
	return true
}

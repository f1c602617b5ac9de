package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tagRemove []string

func init() {
	tagCmd.Flags().StringArrayVarP(&tagRemove, "remove", "r", nil, "Remove this tag (can be repeated)")
	rootCmd.AddCommand(tagCmd)
}

var tagCmd = &cobra.Command{
	Use:   "tag <citekey-or-number> [tags...]",
	Short: "Show, add or remove the tags of a paper",
	Long: `Show, add or remove the tags of a paper. Tags are kept sorted.
Changing tags also refreshes the search cache.

Examples:
  papers tag smith2020
  papers tag smith2020 ml toread
  papers tag 3 --remove toread`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTag,
}

// TagResponse is the response for the tag command.
type TagResponse struct {
	Citekey string   `json:"citekey"`
	Tags    []string `json:"tags"`
}

func runTag(cmd *cobra.Command, args []string) error {
	repo := mustOpenRepository()

	p, err := repo.PaperFromAny(args[0])
	if err != nil {
		exitForError(err, "getting paper")
	}

	if add := args[1:]; len(add) > 0 || len(tagRemove) > 0 {
		for _, t := range add {
			if strings.ContainsAny(t, " \t\n") {
				exitWithError(ExitError, "tag %q contains whitespace", t)
			}
		}
		p.AddTags(add...)
		p.RemoveTags(tagRemove...)
		if err := repo.SavePaper(p); err != nil {
			exitForError(err, "saving paper")
		}

		db := mustOpenCache(repo.Root())
		defer db.Close()
		mustRebuildCache(repo, db)
	}

	if humanOutput {
		fmt.Printf("%s: %s\n", p.Citekey, strings.Join(p.Meta.Tags, " "))
	} else {
		tags := p.Meta.Tags
		if tags == nil {
			tags = []string{}
		}
		outputJSON(TagResponse{Citekey: p.Citekey, Tags: tags})
	}
	return nil
}

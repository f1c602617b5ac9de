package main

import (
	"fmt"

	"github.com/matsen/papers/internal/repository"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify repository integrity",
	Long: `Verify that every indexed paper has readable files, that no paper files
exist without an index entry (left behind by an interrupted add) and that
attached documents still exist. Exits with status 3 when issues are found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status string             `json:"status"`
	Papers int                `json:"papers"`
	Issues []repository.Issue `json:"issues"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	repo := mustOpenRepository()

	issues, err := repo.Check()
	if err != nil {
		exitForError(err, "checking repository")
	}

	status := "ok"
	if len(issues) > 0 {
		status = "issues"
	}
	if issues == nil {
		issues = []repository.Issue{}
	}

	if humanOutput {
		fmt.Printf("Checked %d papers: %d issues\n", repo.Size(), len(issues))
		for _, is := range issues {
			line := fmt.Sprintf("  %s", is.Type)
			if is.Citekey != "" {
				line += " " + is.Citekey
			}
			if is.Path != "" {
				line += " " + is.Path
			}
			if is.Detail != "" {
				line += ": " + is.Detail
			}
			fmt.Println(line)
		}
	} else {
		outputJSON(CheckResult{Status: status, Papers: repo.Size(), Issues: issues})
	}

	if len(issues) > 0 {
		return exitErrorSilent(ExitDataError)
	}
	return nil
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/matsen/papers/internal/config"
	"github.com/matsen/papers/internal/repository"
	"github.com/spf13/cobra"
)

var initDefault bool

func init() {
	initCmd.Flags().BoolVar(&initDefault, "default", false, "Record the new repository as papers_dir in the global config")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new, empty repository",
	Long: `Create a new, empty repository in dir (default: the current directory).

Fails if dir already holds papers.yaml, bibdata/ or meta/.

Examples:
  papers init
  papers init ~/papers --default`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = config.ExpandPath(args[0])
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		exitWithError(ExitError, "resolving %s: %v", dir, err)
	}

	if _, err := repository.Init(root, repository.WithLogger(logger)); err != nil {
		exitForError(err, "initializing repository")
	}

	if initDefault {
		cfg := mustLoadGlobalConfig()
		cfg.PapersDir = root
		if err := cfg.Save(); err != nil {
			exitWithError(ExitConfigError, "saving config: %v", err)
		}
	}

	if humanOutput {
		fmt.Printf("Initialized empty papers repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: root})
	}
	return nil
}

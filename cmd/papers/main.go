// Package main provides the papers CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/matsen/papers/internal/config"
	"github.com/matsen/papers/internal/repository"
	"github.com/matsen/papers/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
	logger      = slog.New(slog.DiscardHandler)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var silent silentExitError
		if errors.As(err, &silent) {
			os.Exit(silent.code)
		}
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "papers",
	Short: "Personal paper archive manager",
	Long: `papers keeps a personal archive of scientific papers.

A repository is a directory holding papers.yaml (the ordered list of
citekeys), bibdata/ with one <citekey>.bibyaml per paper and meta/ with
one <citekey>.meta per paper. Papers are addressed by citekey or by their
number, the position of the citekey in papers.yaml.

The repository is found from PAPERS_DIR, papers_dir in the global config,
or by walking up from the current directory.
All commands output JSON by default; use --human for text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		logger = newLogger(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr")
	rootCmd.Version = Version
}

// newLogger returns the stderr logger; --verbose lowers the level to debug.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// mustLoadGlobalConfig loads the global configuration, exits on error.
func mustLoadGlobalConfig() *config.GlobalConfig {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// getStartingDirectory returns the directory to start searching for a repository.
// Checks papers_dir (or PAPERS_DIR) first, then the current working directory.
func getStartingDirectory() string {
	if dir := mustLoadGlobalConfig().PapersDir; dir != "" {
		return dir
	}
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	return cwd
}

// mustFindRepository finds the repository root, exits on error.
func mustFindRepository() string {
	root, err := config.FindRepository(getStartingDirectory())
	if err != nil {
		logger.Debug("repository lookup failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustOpenRepository finds and opens the repository, exits on error.
func mustOpenRepository() *repository.Repository {
	repo, err := repository.Open(mustFindRepository(), repository.WithLogger(logger))
	if err != nil {
		exitForError(err, "opening repository")
	}
	return repo
}

// mustOpenCache opens the query cache of a repository, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenCache(root string) *storage.DB {
	path, err := config.CacheDBPath(root)
	if err != nil {
		exitWithError(ExitError, "locating cache: %v", err)
	}
	db, err := storage.OpenDB(path)
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	return db
}

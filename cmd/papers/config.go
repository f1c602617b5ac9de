package main

import (
	"fmt"
	"strings"

	"github.com/matsen/papers/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set global configuration values",
	Long: `Get or set values of the global configuration file.

Usage:
  papers config                        # Show all config
  papers config papers-dir             # Get specific value
  papers config papers-dir ~/papers    # Set value
  papers config doc-reader zathura     # Set document reader

Keys:
  papers-dir   Repository used when not inside one (PAPERS_DIR overrides)
  doc-reader   Document reader (system, skim, zathura, evince, okular)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config commands.
type ConfigResponse struct {
	Path      string `json:"path"`
	PapersDir string `json:"papers_dir,omitempty"`
	DocReader string `json:"doc_reader"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadGlobalConfig()

	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("config:      %s\n", config.GlobalConfigPath())
			fmt.Printf("papers-dir:  %s\n", cfg.PapersDir)
			fmt.Printf("doc-reader:  %s\n", cfg.Reader())
		} else {
			outputJSON(ConfigResponse{
				Path:      config.GlobalConfigPath(),
				PapersDir: cfg.PapersDir,
				DocReader: cfg.Reader(),
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	if len(args) == 1 {
		var value string
		switch key {
		case "papers-dir":
			value = cfg.PapersDir
		case "doc-reader":
			value = cfg.Reader()
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	value := args[1]
	switch key {
	case "papers-dir":
		value = config.ExpandPath(value)
		if !config.IsRepository(value) {
			exitWithError(ExitConfigError, "%s is not a papers repository (no %s)", value, config.IndexFile)
		}
		cfg.PapersDir = value
	case "doc-reader":
		cfg.DocReader = value
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

// normalizeKey converts key formats (papers-dir, papers_dir, PAPERS_DIR) to one form
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "_", "-")
}

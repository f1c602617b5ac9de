package config

import (
	"fmt"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/papers/config.yml.
type GlobalConfig struct {
	PapersDir string `yaml:"papers_dir,omitempty"`
	DocReader string `yaml:"doc_reader,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "papers"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// PapersDirEnv overrides papers_dir when set.
	PapersDirEnv = "PAPERS_DIR"
)

// ValidReaders lists the supported document reader values.
var ValidReaders = []string{"system", "skim", "zathura", "evince", "okular"}

// Validate checks the configured values.
func (c *GlobalConfig) Validate() error {
	readers := make([]interface{}, len(ValidReaders))
	for i, r := range ValidReaders {
		readers[i] = r
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.DocReader, validation.In(readers...)),
	)
}

// Reader returns the configured document reader, defaulting to system.
func (c *GlobalConfig) Reader() string {
	if c.DocReader == "" {
		return "system"
	}
	return c.DocReader
}

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/papers/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
// PAPERS_DIR takes precedence over papers_dir.
func LoadGlobalConfig() (*GlobalConfig, error) {
	cfg := &GlobalConfig{}

	if path := GlobalConfigPath(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	if dir := os.Getenv(PapersDirEnv); dir != "" {
		cfg.PapersDir = dir
	}
	if cfg.PapersDir != "" {
		cfg.PapersDir = ExpandPath(cfg.PapersDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid global config: %w", err)
	}
	return cfg, nil
}

// Save writes the global configuration, creating its directory if needed.
func (c *GlobalConfig) Save() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid global config: %w", err)
	}
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot locate home directory for global config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}
	return nil
}

// HelpfulConfigMessage returns a helpful message when no repository is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No papers repository found.

Run 'papers init' to create one, or point to an existing one:
  export %s=/path/to/papers
or in %s:
  papers_dir: /path/to/papers`,
		PapersDirEnv,
		configPath)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrConfigNotFound is returned when no page dump is configured
var ErrConfigNotFound = errors.New("configuration not found")

const (
	defaultLimit         = 7
	defaultSnippetLength = 120
)

// Config holds the application configuration
type Config struct {
	Pages         PagesConfig  `mapstructure:"pages" yaml:"pages"`
	Search        SearchConfig `mapstructure:"search" yaml:"search"`
	ExcludedPaths []string     `mapstructure:"excluded_paths" yaml:"excluded_paths"`
}

// PagesConfig points at the page dump produced by the site build
type PagesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// SearchConfig holds query settings
type SearchConfig struct {
	Limit         int `mapstructure:"limit" yaml:"limit"`                   // hits per field per index
	SnippetLength int `mapstructure:"snippet_length" yaml:"snippet_length"` // characters, ellipses excluded
}

// configDir returns ~/.config/sitesearch
func configDir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "sitesearch")
}

// Load loads configuration from file and environment variables.
// A missing page dump setting is not an error here, see Validate.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir())
	viper.AddConfigPath(".") // Also check current directory

	// SITESEARCH_PAGES_FILE, SITESEARCH_SEARCH_LIMIT, ...
	viper.SetEnvPrefix("SITESEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("pages.file", "")
	viper.SetDefault("search.limit", defaultLimit)
	viper.SetDefault("search.snippet_length", defaultSnippetLength)

	// Try to read config file (it's okay if it doesn't exist)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Pages.File != "" {
		cfg.Pages.File = expandPath(cfg.Pages.File)
	}
	if cfg.Search.Limit <= 0 {
		cfg.Search.Limit = defaultLimit
	}
	if cfg.Search.SnippetLength <= 0 {
		cfg.Search.SnippetLength = defaultSnippetLength
	}

	return &cfg, nil
}

// Validate checks the settings required to run a search
func (c *Config) Validate() error {
	if c.Pages.File == "" {
		return ErrConfigNotFound
	}
	return nil
}

// expandPath expands ~ to home directory in paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home := os.Getenv("HOME")
		if len(path) == 1 {
			return home
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// EnsureConfigDir ensures the config directory exists
func EnsureConfigDir() error {
	return os.MkdirAll(configDir(), 0755)
}

// ExampleConfigPath returns the path where the example config should be created
func ExampleConfigPath() string {
	return filepath.Join(configDir(), "config.yaml.example")
}

// IsExcluded checks if a page path matches any excluded pattern
func (c *Config) IsExcluded(pagePath string) bool {
	for _, pattern := range c.ExcludedPaths {
		if matchPattern(pattern, pagePath) {
			return true
		}
	}
	return false
}

// matchPattern supports "prefix/*" for whole subtrees and filepath.Match
// syntax otherwise
func matchPattern(pattern, pagePath string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok && prefix != "" {
		return strings.HasPrefix(pagePath, prefix+"/")
	}
	matched, err := filepath.Match(pattern, pagePath)
	return err == nil && matched
}

// AddExclusion adds a new exclusion pattern if it doesn't already exist
func (c *Config) AddExclusion(pattern string) error {
	for _, existing := range c.ExcludedPaths {
		if existing == pattern {
			return nil // Already exists
		}
	}

	c.ExcludedPaths = append(c.ExcludedPaths, pattern)
	return c.Save()
}

// RemoveExclusion removes an exclusion pattern
func (c *Config) RemoveExclusion(pattern string) error {
	kept := make([]string, 0, len(c.ExcludedPaths))
	for _, p := range c.ExcludedPaths {
		if p != pattern {
			kept = append(kept, p)
		}
	}
	c.ExcludedPaths = kept
	return c.Save()
}

// Save saves the current configuration to file
func (c *Config) Save() error {
	configPath := filepath.Join(configDir(), "config.yaml")

	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("pages.file", c.Pages.File)
	viper.Set("search.limit", c.Search.Limit)
	viper.Set("search.snippet_length", c.Search.SnippetLength)
	viper.Set("excluded_paths", c.ExcludedPaths)

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateExampleConfig creates an example configuration file
func CreateExampleConfig() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	exampleConfig := `# sitesearch configuration file
# Place this file at ~/.config/sitesearch/config.yaml

pages:
  # Page dump written by the site build (YAML or JSON list of pages, required)
  file: "~/site/.build/pages.yaml"

search:
  # Hits taken per field (title, headings, content) per index (optional, defaults to 7)
  limit: 7

  # Snippet window in characters (optional, defaults to 120)
  snippet_length: 120

# Page paths left out of every index (supports wildcards)
excluded_paths:
  # - "/drafts/*"
  # - "/changelog.html"

# Environment variables can also be used:
# SITESEARCH_PAGES_FILE=/path/to/pages.yaml
# SITESEARCH_SEARCH_LIMIT=10
`

	return os.WriteFile(ExampleConfigPath(), []byte(exampleConfig), 0644)
}

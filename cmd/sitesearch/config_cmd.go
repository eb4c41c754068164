package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/igusev/sitesearch/internal/config"
	"github.com/igusev/sitesearch/internal/corpus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure the page dump and search settings",
	Long: `Interactive configuration wizard to set the page dump location and
search settings. Creates or updates the configuration file at
~/.config/sitesearch/config.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigWizard(os.Stdin, cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		return writeYAML(cmd.OutOrStdout(), cfg)
	},
}

var configExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an annotated example configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.CreateExampleConfig(); err != nil {
			return fmt.Errorf("failed to write example config: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Example written to "+config.ExampleConfigPath())
		printMuted(cmd.OutOrStdout(), "Copy it to config.yaml and set pages.file")
		return nil
	},
}

var configExcludeCmd = &cobra.Command{
	Use:   "exclude <pattern>",
	Short: "Leave pages matching a path pattern out of every index",
	Long: `Adds a path pattern to excluded_paths. "prefix/*" excludes a whole
subtree, other patterns use shell glob syntax.

Examples:
  sitesearch config exclude "/drafts/*"
  sitesearch config exclude /changelog.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		if err := cfg.AddExclusion(args[0]); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Excluded "+args[0])
		return nil
	},
}

var configIncludeCmd = &cobra.Command{
	Use:   "include <pattern>",
	Short: "Remove a pattern from excluded_paths",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		if err := cfg.RemoveExclusion(args[0]); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Removed exclusion "+args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configExampleCmd, configExcludeCmd, configIncludeCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigWizard prompts for each setting, keeping the current value on
// empty input, checks that the page dump can be read and saves the result
func runConfigWizard(in io.Reader, w io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintln(w, "sitesearch Configuration Wizard")
	fmt.Fprintln(w, "===============================")

	// Load existing config if available
	existingCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	file, err := prompt(reader, w, "Page dump file", existingCfg.Pages.File)
	if err != nil {
		return err
	}
	if file == "" {
		return fmt.Errorf("page dump file is required")
	}

	limitStr, err := prompt(reader, w, "Hits per field", fmt.Sprintf("%d", existingCfg.Search.Limit))
	if err != nil {
		return err
	}
	lim := existingCfg.Search.Limit
	if _, err := fmt.Sscanf(limitStr, "%d", &lim); err != nil || lim <= 0 {
		fmt.Fprintf(w, "Warning: invalid limit '%s', using %d\n", limitStr, existingCfg.Search.Limit)
		lim = existingCfg.Search.Limit
	}

	snippetStr, err := prompt(reader, w, "Snippet length", fmt.Sprintf("%d", existingCfg.Search.SnippetLength))
	if err != nil {
		return err
	}
	snip := existingCfg.Search.SnippetLength
	if _, err := fmt.Sscanf(snippetStr, "%d", &snip); err != nil || snip <= 0 {
		fmt.Fprintf(w, "Warning: invalid snippet length '%s', using %d\n", snippetStr, existingCfg.Search.SnippetLength)
		snip = existingCfg.Search.SnippetLength
	}

	// Test the page dump
	fmt.Fprintf(w, "\nReading %s...\n", file)
	pages, err := corpus.New(file).Read()
	if err != nil {
		return fmt.Errorf("page dump check failed: %w", err)
	}
	fmt.Fprintf(w, "✓ Found %d pages\n", len(pages))

	cfg := &config.Config{
		Pages:         config.PagesConfig{File: file},
		Search:        config.SearchConfig{Limit: lim, SnippetLength: snip},
		ExcludedPaths: existingCfg.ExcludedPaths,
	}

	// Save configuration
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	configPath := filepath.Join(os.Getenv("HOME"), ".config", "sitesearch", "config.yaml")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "\n✓ Configuration saved to %s\n", configPath)
	fmt.Fprintln(w, "\nYou can now run 'sitesearch <query>'.")

	return nil
}

// prompt reads one line, returning current when the input is empty
func prompt(reader *bufio.Reader, w io.Writer, label, current string) (string, error) {
	fmt.Fprint(w, label)
	if current != "" {
		fmt.Fprintf(w, " [%s]", current)
	}
	fmt.Fprint(w, ": ")

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	return line, nil
}

// writeYAML writes v as YAML
func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return enc.Close()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/igusev/sitesearch/internal/config"
	"github.com/igusev/sitesearch/internal/corpus"
	"github.com/igusev/sitesearch/internal/logger"
	"github.com/igusev/sitesearch/internal/search"
	"github.com/spf13/cobra"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"     // Version from git tag or "dev"
	commit    = "unknown" // Git commit hash (used in version output)
	buildTime = "unknown" // Build timestamp (used in version output)
)

var (
	verbose       bool   // Flag to enable verbose logging
	pagesFile     string // Flag to override pages.file
	limit         int    // Flag to override search.limit
	snippetLength int    // Flag to override search.snippet_length
	jsonOutput    bool   // Flag to print results as JSON
)

var rootCmd = &cobra.Command{
	Use:   "sitesearch [flags] [query...]",
	Short: "Full-text search over a documentation site's pages",
	Long: `sitesearch indexes the page dump of a documentation site in memory and
answers queries with ranked, grouped results: the matching heading or a
snippet of the page body, with a deep link to the section.

Getting Started:
  1. Build your site so it writes a page dump (YAML or JSON)
  2. Run: sitesearch config (to point at the dump)
  3. Run: sitesearch <query>

Examples:
  sitesearch deploy              # Search for "deploy"
  sitesearch docker targets      # Every word must match
  sitesearch --json установка    # Machine-readable output
  sitesearch --pages ./pages.yaml setup

Configuration:
  Set the page dump in ~/.config/sitesearch/config.yaml or via environment:
    SITESEARCH_PAGES_FILE=/path/to/pages.yaml
    SITESEARCH_SEARCH_LIMIT=7`,
	RunE: runSearch,
	// Accept any number of arguments as search query
	Args: cobra.ArbitraryArgs,
	// Don't suggest commands when args don't match subcommands
	SuggestionsMinimumDistance: 2,
}

// runSearch handles the default search behavior
func runSearch(cmd *cobra.Command, args []string) error {
	// Join all args to support multi-word queries: "sitesearch docker targets"
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return cmd.Help()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	c, err := openCorpus(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Debug("Failed to close indexes: %v", err)
		}
	}()

	return runQuery(cmd.Context(), cmd.OutOrStdout(), c, query, cfg.Search.Limit, jsonOutput)
}

// loadConfig loads the configuration and applies command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("pages") {
		cfg.Pages.File = pagesFile
	}
	if flags.Changed("limit") && limit > 0 {
		cfg.Search.Limit = limit
	}
	if flags.Changed("snippet") && snippetLength > 0 {
		cfg.Search.SnippetLength = snippetLength
	}

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: set pages.file in ~/.config/sitesearch/config.yaml or pass --pages", err)
		}
		return nil, err
	}
	return cfg, nil
}

// openCorpus reads the page dump, drops excluded paths and builds the indexes
func openCorpus(cfg *config.Config) (*search.Corpus, error) {
	store := corpus.New(cfg.Pages.File)

	logger.Debug("Reading pages from %s", store.Path())
	pages, err := store.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}

	if len(cfg.ExcludedPaths) > 0 {
		before := len(pages)
		pages = corpus.Filter(pages, cfg.IsExcluded)
		logger.Debug("Excluded %d pages by path pattern", before-len(pages))
	}

	start := time.Now()
	c, err := search.BuildIndexWithOptions(pages, search.Options{SnippetLength: cfg.Search.SnippetLength})
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}
	logger.Debug("Indexed %d pages in %v", len(pages), time.Since(start))

	return c, nil
}

// runQuery matches a query and prints the results
func runQuery(ctx context.Context, w io.Writer, c *search.Corpus, query string, limit int, asJSON bool) error {
	results, err := c.Match(ctx, query, strings.Fields(query), limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	logger.Debug("Query %q matched %d pages", query, len(results))

	if asJSON {
		return outputJSON(w, toJSONResults(results))
	}
	printResults(w, query, results)
	return nil
}

func init() {
	// Set version info
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)

	// Add flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&pagesFile, "pages", "p", "", "page dump to search (overrides pages.file)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.Flags().IntVarP(&limit, "limit", "n", 0, "hits per field per index (overrides search.limit)")
	rootCmd.Flags().IntVar(&snippetLength, "snippet", 0, "snippet length in characters (overrides search.snippet_length)")

	// Set up verbose mode before command execution
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
		logger.Debug("Verbose mode enabled")
	}
}

func main() {
	// Enable interspersed flags (flags can appear anywhere in the command line)
	rootCmd.Flags().SetInterspersed(true)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/igusev/sitesearch/internal/logger"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many pages each index holds",
	Long: `Builds the indexes from the configured page dump and prints the document
count of the default index and of the Cyrillic and CJK indexes, which are
only built when some page contains those scripts.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	s, err := c.Stats()
	if err != nil {
		return fmt.Errorf("failed to read index stats: %w", err)
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), s)
	}
	printStats(cmd.OutOrStdout(), cfg.Pages.File, s)
	return nil
}

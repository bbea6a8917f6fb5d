package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session statistics",
	Long: `Show the statistics of the current session: documents, answered
questions, mean response time, helpful rate and failed questions.

Statistics are not persisted, so outside the interactive chat only the
document count carries information.`,
	RunE: runStats,
}

// statsJSON is a flag for the stats command.
var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errNoSessionService
	}

	if documentService != nil {
		if err := documentService.Hydrate(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load documents: %w", err)
		}
	}

	stats := sessionService.Stats()
	if statsJSON {
		return outputJSON(cmd, stats)
	}

	cmd.Printf("Documents:      %d\n", stats.TotalDocs)
	cmd.Printf("Queries:        %d\n", stats.TotalQueries)
	cmd.Printf("Avg response:   %dms\n", stats.AvgResponseTimeRounded())
	cmd.Printf("Helpful rate:   %d%%\n", stats.PositiveRatePercent)
	cmd.Printf("Failed queries: %d\n", stats.FailedQueries)
	return nil
}

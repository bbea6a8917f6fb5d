package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload new text files as they appear",
	Long: `Watch a directory tree and upload .txt files when they are created or
written. Events are debounced so a burst of saves becomes one batch. Each
file is uploaded at most once per run.

Stop with Ctrl+C.

Examples:
  docqa watch ~/notes
  docqa watch ./inbox --debounce 2s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

// watchDebounce is a flag for the watch command.
var watchDebounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a batch is uploaded")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if uploadOrchestrator == nil {
		return errNoUploadOrchestrator
	}

	if documentService != nil {
		if err := documentService.Hydrate(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load documents: %w", err)
		}
	}

	w := watch.New(args[0], uploadOrchestrator,
		watch.WithDebounce(watchDebounce),
		watch.WithBatchHandler(func(result *domain.BatchResult) {
			printBatch(cmd, result)
		}),
	)

	cmd.Printf("Watching %s for .txt files (Ctrl+C to stop)\n", args[0])
	if err := w.Run(cmd.Context()); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [paths...]",
	Short: "Upload text documents",
	Long: `Upload one or more .txt files to the server.

Directories are walked recursively; hidden entries and files that are not
.txt are skipped. Files named explicitly are always submitted, so an invalid
file is reported instead of silently ignored. Files larger than 10 MB are
rejected before any network call.

Every file is uploaded concurrently. One file failing never stops the others.

Examples:
  docqa upload report.txt
  docqa upload notes/ minutes.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadOrchestrator == nil {
		return errNoUploadOrchestrator
	}

	files, err := filesystem.Expand(args)
	if err != nil {
		return fmt.Errorf("collect files: %w", err)
	}

	result, err := uploadOrchestrator.Submit(cmd.Context(), files)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	printBatch(cmd, result)
	if len(result.Accepted) == 0 {
		return fmt.Errorf("no files were uploaded")
	}
	return nil
}

// printBatch writes the accepted documents and the rejection reasons.
func printBatch(cmd *cobra.Command, result *domain.BatchResult) {
	cmd.Printf("Uploaded %d of %d files\n", len(result.Accepted), result.Total())
	for i := range result.Accepted {
		doc := result.Accepted[i]
		cmd.Printf("  ✓ %s (%s, %d chunks)\n", doc.Name, doc.ID, doc.ChunkCount)
	}
	for _, rej := range result.Rejected {
		cmd.Printf("  ✗ %s\n", rej)
	}
}

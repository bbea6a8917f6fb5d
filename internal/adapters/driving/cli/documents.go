package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Manage uploaded documents",
	Long:    `List, delete, or clear the documents uploaded to the server.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

var documentsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every document",
	Long: `Delete every uploaded document. Deletions run concurrently; documents
deleted before a failure stay deleted.`,
	RunE: runDocumentsClear,
}

// Flags for the documents commands.
var (
	documentsJSON bool
	clearYes      bool
)

func init() {
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "Output as JSON")
	documentsClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	documentsCmd.AddCommand(documentsClearCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	if err := documentService.Hydrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	docs := documentService.List()

	if documentsJSON {
		return outputJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded.")
		return nil
	}

	cmd.Printf("Documents (%d):\n\n", len(docs))
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].Name)
		cmd.Printf("    ID:       %s\n", docs[i].ID)
		cmd.Printf("    Chunks:   %d\n", docs[i].ChunkCount)
		if !docs[i].UploadedAt.IsZero() {
			cmd.Printf("    Uploaded: %s\n", docs[i].UploadedAt.Format("2006-01-02 15:04:05"))
		}
		cmd.Println()
	}
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	ctx := cmd.Context()
	if err := documentService.Hydrate(ctx); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	if err := documentService.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document: %s\n", args[0])
	return nil
}

func runDocumentsClear(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	ctx := cmd.Context()
	if err := documentService.Hydrate(ctx); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	count := len(documentService.List())
	if count == 0 {
		cmd.Println("No documents to delete.")
		return nil
	}

	if !clearYes {
		cmd.Printf("Delete all %d documents? [y/N]: ", count)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := documentService.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	cmd.Printf("Deleted %d documents\n", count)
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Ask one question about the uploaded documents.

The server retrieves the most relevant chunks and generates an answer from
them. The answer is printed with its sources, response time and confidence.

Examples:
  docqa ask "Who signed the contract?"
  docqa ask "Summarise the minutes" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

// askJSON is a flag for the ask command.
var askJSON bool

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Output the exchange as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryPipeline == nil {
		return errNoQueryPipeline
	}
	if documentService == nil {
		return errNoDocumentService
	}

	ctx := cmd.Context()
	if err := documentService.Hydrate(ctx); err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}

	exchange, err := queryPipeline.Submit(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			return fmt.Errorf("%w: run 'docqa upload <path>' first", err)
		}
		return err
	}

	if askJSON {
		if err := outputJSON(cmd, exchange); err != nil {
			return err
		}
	} else {
		printAnswer(cmd, exchange.Answer)
	}

	if exchange.Failed() {
		if sessionService != nil && sessionService.Banner() != "" {
			return fmt.Errorf("query failed: %s", sessionService.Banner())
		}
		return errors.New("query failed")
	}
	return nil
}

// printAnswer writes an assistant message with its sources and footer.
func printAnswer(cmd *cobra.Command, msg domain.Message) {
	cmd.Println(msg.Content)
	if msg.IsError {
		return
	}
	if len(msg.Sources) > 0 {
		cmd.Printf("\nSources: %s\n", strings.Join(msg.Sources, ", "))
	}
	if footer := msg.Footer(); footer != "" {
		cmd.Println(footer)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

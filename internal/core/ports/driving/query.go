package driving

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// QueryPipeline drives one question at a time through the pipeline states.
type QueryPipeline interface {
	// Submit asks a question. The returned error is only a precondition
	// failure (empty question, no documents, busy session), in which case
	// nothing was appended. Backend failures yield an Exchange whose answer
	// is flagged as an error.
	Submit(ctx context.Context, question string) (*domain.Exchange, error)
}

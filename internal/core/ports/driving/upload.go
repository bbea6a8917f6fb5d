package driving

import (
	"context"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// UploadOrchestrator validates and submits batches of files.
type UploadOrchestrator interface {
	// Submit uploads every valid file concurrently and waits for all of them to
	// settle. The returned error is only a precondition failure (busy session,
	// empty batch); per-file failures are reported in BatchResult.Rejected.
	Submit(ctx context.Context, files []domain.CandidateFile) (*domain.BatchResult, error)
}

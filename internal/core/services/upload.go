package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure UploadOrchestrator implements the interface.
var _ driving.UploadOrchestrator = (*UploadOrchestrator)(nil)

// UploadOrchestrator validates a batch of files, submits the valid ones
// concurrently and commits the accepted subset to the session.
type UploadOrchestrator struct {
	session *Session
	backend driven.DocumentBackend
}

// NewUploadOrchestrator creates a new upload orchestrator.
func NewUploadOrchestrator(session *Session, backend driven.DocumentBackend) *UploadOrchestrator {
	return &UploadOrchestrator{
		session: session,
		backend: backend,
	}
}

// Submit uploads a batch and waits for every file to settle.
// A file's failure never cancels or skips its siblings.
func (o *UploadOrchestrator) Submit(ctx context.Context, files []domain.CandidateFile) (*domain.BatchResult, error) {
	if len(files) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	op, err := o.session.begin(nil)
	if err != nil {
		return nil, err
	}
	defer o.session.finish(op)

	logger.Section("Upload")
	logger.Info("Submitting batch of %d files", len(files))

	// Submitted uploads run to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	tasks := make([]domain.UploadTask, len(files))
	result := &domain.BatchResult{}
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for i := range files {
		tasks[i] = domain.UploadTask{
			Filename:  files[i].Name,
			SizeBytes: files[i].Size,
			Outcome:   domain.OutcomePending,
		}

		if reason := files[i].Validate(); reason != "" {
			logger.Debug("Rejected %s before upload: %s", files[i].Name, reason)
			tasks[i].Reject(reason)
			continue
		}

		wg.Add(1)
		go func(task *domain.UploadTask, file domain.CandidateFile) {
			defer wg.Done()

			doc, err := o.upload(ctx, file)
			if err != nil {
				logger.Warn("Upload of %s failed: %v", file.Name, err)
				task.Reject(err.Error())
				return
			}

			mu.Lock()
			defer mu.Unlock()
			task.Accept(*doc)
			o.session.commitDocuments(*doc)
			result.Accepted = append(result.Accepted, *doc)
			logger.Debug("Uploaded %s as %s (%d chunks)", file.Name, doc.ID, doc.ChunkCount)
		}(&tasks[i], files[i])
	}

	wg.Wait()

	for i := range tasks {
		if tasks[i].Outcome == domain.OutcomeRejected {
			result.Rejected = append(result.Rejected, domain.Rejection{
				Filename: tasks[i].Filename,
				Reason:   tasks[i].Reason,
			})
		}
	}

	if summary := result.Summary(); summary != "" {
		o.session.setBanner(summary)
	}

	logger.Info("Batch settled: %d accepted, %d rejected", len(result.Accepted), len(result.Rejected))
	return result, nil
}

// upload opens one file and submits it, reporting progress to the session.
func (o *UploadOrchestrator) upload(ctx context.Context, file domain.CandidateFile) (*domain.Document, error) {
	if file.Open == nil {
		return nil, fmt.Errorf("%w: no content for %s", domain.ErrInvalidInput, file.Name)
	}

	content, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer content.Close()

	o.session.setProgress(file.Name, 0)
	defer o.session.settle(file.Name)

	doc, err := o.backend.Upload(ctx, file.Name, file.Size, content, func(percent int) {
		o.session.setProgress(file.Name, percent)
	})
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = file.Name
	}
	return doc, nil
}

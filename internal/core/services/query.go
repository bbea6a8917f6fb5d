package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docqa-cli/internal/logger"
)

// Ensure QueryPipeline implements the interface.
var _ driving.QueryPipeline = (*QueryPipeline)(nil)

// QueryPipeline drives a question through
// ready -> processing -> retrieving -> generating -> ready.
type QueryPipeline struct {
	session *Session
	backend driven.QueryBackend
	topK    int
}

// NewQueryPipeline creates a new query pipeline.
// topK outside [domain.MinTopK, domain.MaxTopK] falls back to domain.DefaultTopK.
func NewQueryPipeline(session *Session, backend driven.QueryBackend, topK int) *QueryPipeline {
	if topK < domain.MinTopK || topK > domain.MaxTopK {
		topK = domain.DefaultTopK
	}
	return &QueryPipeline{
		session: session,
		backend: backend,
		topK:    topK,
	}
}

// Submit asks one question and appends the user and assistant messages.
func (p *QueryPipeline) Submit(ctx context.Context, question string) (*domain.Exchange, error) {
	start := p.session.now()

	op, err := p.session.begin(func() error {
		if strings.TrimSpace(question) == "" {
			return domain.ErrEmptyQuestion
		}
		if p.session.registry.Len() == 0 {
			return domain.ErrNoDocuments
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	defer p.session.finish(op)

	logger.Section("Query")
	logger.Debug("Question: %q (topK=%d)", question, p.topK)

	userMsg := domain.Message{
		Role:      domain.RoleUser,
		Content:   question,
		Timestamp: p.session.nextTimestamp(),
	}
	p.session.log.Append(userMsg)

	// Submitted queries run to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	if err := p.session.advance(op, domain.StatusRetrieving); err != nil {
		logger.Warn("Entering retrieving: %v", err)
	}
	answer, err := p.backend.Query(ctx, question, p.topK, func() {
		if err := p.session.advance(op, domain.StatusGenerating); err != nil {
			logger.Debug("Skipping generating phase: %v", err)
		}
	})
	latency := p.session.now().Sub(start)

	if err != nil {
		logger.Warn("Query failed after %s: %v", latency, err)
		failed := domain.Message{
			Role:      domain.RoleAssistant,
			Content:   domain.QueryFailedText,
			Timestamp: p.session.nextTimestamp(),
			IsError:   true,
		}
		p.session.log.Append(failed)
		p.session.setBanner(err.Error())
		p.session.metrics.RecordQueryFailure()
		return &domain.Exchange{Question: userMsg, Answer: failed}, nil
	}

	responseTime := answer.ResponseTimeMs
	confidence := answer.Confidence
	chunksUsed := answer.ChunksUsed
	reply := domain.Message{
		Role:           domain.RoleAssistant,
		Content:        answer.Answer,
		Timestamp:      p.session.nextTimestamp(),
		Sources:        domain.DedupeSources(answer.Sources),
		ResponseTimeMs: &responseTime,
		Confidence:     &confidence,
		ChunksUsed:     &chunksUsed,
	}
	p.session.log.Append(reply)
	p.session.metrics.RecordQuery(latency)

	logger.Info("Answered in %s with %d sources", latency, len(reply.Sources))
	return &domain.Exchange{Question: userMsg, Answer: reply}, nil
}

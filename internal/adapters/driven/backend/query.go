package backend

import (
	"context"
	"net/http"
	"net/http/httptrace"
	"sync"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// PathQuery is the question-answering endpoint.
const PathQuery = "/query-langchain"

type queryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"topK"`
}

type queryResponse struct {
	Answer       string   `json:"answer"`
	Sources      []string `json:"sources"`
	ResponseTime int64    `json:"responseTime"`
	Confidence   float64  `json:"confidence"`
	ChunksUsed   int      `json:"chunksUsed"`
}

// Query asks a question. dispatched is called once the request has been
// fully written to the connection, which is when the server starts working.
func (c *Client) Query(ctx context.Context, question string, topK int, dispatched func()) (*domain.QueryAnswer, error) {
	if dispatched != nil {
		var once sync.Once
		ctx = httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
			WroteRequest: func(info httptrace.WroteRequestInfo) {
				if info.Err == nil {
					once.Do(dispatched)
				}
			},
		})
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, PathQuery, queryRequest{Question: question, TopK: topK})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var payload queryResponse
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}

	return &domain.QueryAnswer{
		Answer:         payload.Answer,
		Sources:        payload.Sources,
		ResponseTimeMs: payload.ResponseTime,
		Confidence:     payload.Confidence,
		ChunksUsed:     payload.ChunksUsed,
	}, nil
}

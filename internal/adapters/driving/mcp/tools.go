package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docqa-cli/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the uploaded documents"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	MessageID      int64    `json:"message_id"`
	Answer         string   `json:"answer"`
	Sources        []string `json:"sources,omitempty"`
	ResponseTimeMs int64    `json:"response_time_ms,omitempty"`
	Confidence     float64  `json:"confidence,omitempty"`
	ChunksUsed     int      `json:"chunks_used,omitempty"`
	Failed         bool     `json:"failed,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// UploadInput is the input schema for the upload tool.
type UploadInput struct {
	Paths []string `json:"paths" jsonschema:"local .txt files or directories to upload"`
}

// UploadOutput is the output schema for the upload tool.
type UploadOutput struct {
	Accepted []DocumentOutput  `json:"accepted"`
	Rejected []RejectionOutput `json:"rejected"`
}

// RejectionOutput explains why a file was not uploaded.
type RejectionOutput struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// DocumentOutput represents a single uploaded document.
type DocumentOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ChunkCount int    `json:"chunk_count"`
	UploadedAt string `json:"uploaded_at,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"reload the list from the server first"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DeleteDocumentInput is the input schema for the delete_document tool.
type DeleteDocumentInput struct {
	ID string `json:"id" jsonschema:"the id of the document to delete"`
}

// DeleteDocumentOutput is the output schema for the delete_document tool.
type DeleteDocumentOutput struct {
	Deleted string `json:"deleted"`
}

// StatsInput is the input schema for the session_stats tool.
type StatsInput struct{}

// FeedbackInput is the input schema for the feedback tool.
type FeedbackInput struct {
	MessageID int64 `json:"message_id" jsonschema:"the message_id returned by ask"`
	Helpful   bool  `json:"helpful" jsonschema:"true if the answer was helpful"`
}

// FeedbackOutput is the output schema for the feedback tool.
type FeedbackOutput struct {
	PositiveRatePercent int `json:"positive_rate_percent"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question from the uploaded documents",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload",
		Description: "Upload local .txt files or directories (max 10 MB per file)",
	}, s.handleUpload)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the uploaded documents",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Delete an uploaded document by id",
	}, s.handleDeleteDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "session_stats",
		Description: "Show document count, query count, mean response time and helpful rate",
	}, s.handleSessionStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "feedback",
		Description: "Rate an answer returned by ask as helpful or not",
	}, s.handleFeedback)
}

// handleAsk handles the ask tool invocation.
// A backend failure is reported in the output, not as a tool error.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Query == nil {
		return nil, AskOutput{}, ErrUnavailable
	}

	exchange, err := s.ports.Query.Submit(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	answer := exchange.Answer
	output := AskOutput{
		MessageID: answer.Timestamp,
		Answer:    answer.Content,
		Sources:   answer.Sources,
		Failed:    answer.IsError,
	}
	if answer.ResponseTimeMs != nil {
		output.ResponseTimeMs = *answer.ResponseTimeMs
	}
	if answer.Confidence != nil {
		output.Confidence = *answer.Confidence
	}
	if answer.ChunksUsed != nil {
		output.ChunksUsed = *answer.ChunksUsed
	}
	if answer.IsError {
		output.Error = s.ports.Session.Banner()
	}
	return nil, output, nil
}

// handleUpload handles the upload tool invocation.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	if s.ports.Upload == nil {
		return nil, UploadOutput{}, ErrUnavailable
	}

	files, err := filesystem.Expand(input.Paths)
	if err != nil {
		return nil, UploadOutput{}, fmt.Errorf("collecting files: %w", err)
	}

	result, err := s.ports.Upload.Submit(ctx, files)
	if err != nil {
		return nil, UploadOutput{}, err
	}

	output := UploadOutput{
		Accepted: toDocumentOutputs(result.Accepted),
		Rejected: make([]RejectionOutput, len(result.Rejected)),
	}
	for i, rej := range result.Rejected {
		output.Rejected[i] = RejectionOutput{Filename: rej.Filename, Reason: rej.Reason}
	}
	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Document == nil {
		return nil, ListDocumentsOutput{}, ErrUnavailable
	}

	if input.Refresh {
		if err := s.ports.Document.Hydrate(ctx); err != nil {
			return nil, ListDocumentsOutput{}, err
		}
	}

	docs := s.ports.Document.List()
	return nil, ListDocumentsOutput{
		Documents: toDocumentOutputs(docs),
		Count:     len(docs),
	}, nil
}

// handleDeleteDocument handles the delete_document tool invocation.
func (s *Server) handleDeleteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteDocumentInput,
) (*mcp.CallToolResult, DeleteDocumentOutput, error) {
	if s.ports.Document == nil {
		return nil, DeleteDocumentOutput{}, ErrUnavailable
	}

	if err := s.ports.Document.Delete(ctx, input.ID); err != nil {
		return nil, DeleteDocumentOutput{}, err
	}
	return nil, DeleteDocumentOutput{Deleted: input.ID}, nil
}

// handleSessionStats handles the session_stats tool invocation.
func (s *Server) handleSessionStats(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, domain.SessionStats, error) {
	return nil, s.ports.Session.Stats(), nil
}

// handleFeedback handles the feedback tool invocation.
func (s *Server) handleFeedback(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FeedbackInput,
) (*mcp.CallToolResult, FeedbackOutput, error) {
	polarity := domain.Negative
	if input.Helpful {
		polarity = domain.Positive
	}
	if err := s.ports.Session.RecordFeedback(input.MessageID, polarity); err != nil {
		return nil, FeedbackOutput{}, err
	}
	return nil, FeedbackOutput{
		PositiveRatePercent: s.ports.Session.Stats().PositiveRatePercent,
	}, nil
}

func toDocumentOutputs(docs []domain.Document) []DocumentOutput {
	out := make([]DocumentOutput, len(docs))
	for i := range docs {
		out[i] = DocumentOutput{
			ID:         docs[i].ID,
			Name:       docs[i].Name,
			ChunkCount: docs[i].ChunkCount,
		}
		if !docs[i].UploadedAt.IsZero() {
			out[i].UploadedAt = docs[i].UploadedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	return out
}

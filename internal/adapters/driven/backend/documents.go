package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
	"github.com/custodia-labs/docqa-cli/internal/core/ports/driven"
)

// API paths for document operations.
const (
	PathUpload    = "/documents/upload-langchain"
	PathDocuments = "/documents"

	// UploadField is the multipart field holding the file content.
	UploadField = "file"
)

// documentPayload is the server's document shape.
type documentPayload struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunkCount"`
	UploadedAt int64  `json:"uploadedAt"`
}

func (p documentPayload) toDomain() domain.Document {
	doc := domain.Document{
		ID:         p.ID,
		Name:       p.Filename,
		ChunkCount: p.ChunkCount,
	}
	if p.UploadedAt > 0 {
		doc.UploadedAt = time.UnixMilli(p.UploadedAt)
	}
	return doc
}

// Upload sends one file as multipart form data and reports transfer progress.
func (c *Client) Upload(
	ctx context.Context,
	name string,
	size int64,
	content io.Reader,
	progress driven.ProgressFunc,
) (*domain.Document, error) {
	var buf bytes.Buffer
	buf.Grow(int(size) + 512)

	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(UploadField, name)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	body := newProgressReader(buf.Bytes(), progress)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathUpload, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.ContentLength = int64(buf.Len())
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var payload documentPayload
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}
	if payload.Filename == "" {
		payload.Filename = name
	}
	doc := payload.toDomain()
	return &doc, nil
}

// ListDocuments returns every document the server holds for the account.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, PathDocuments, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var payload []documentPayload
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(payload))
	for _, p := range payload {
		docs = append(docs, p.toDomain())
	}
	return docs, nil
}

// DeleteDocument removes one document on the server.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	req, err := c.newJSONRequest(ctx, http.MethodDelete, PathDocuments+"/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	return decode(resp, nil)
}

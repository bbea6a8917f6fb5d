package domain

import "time"

// Document represents a file the backend has chunked and indexed.
// Identity is the backend-assigned ID.
type Document struct {
	// ID is the backend-assigned identifier.
	ID string `json:"id"`

	// Name is the original filename.
	Name string `json:"name"`

	// ChunkCount is the number of chunks the backend produced.
	ChunkCount int `json:"chunkCount"`

	// UploadedAt is when the backend acknowledged the upload.
	UploadedAt time.Time `json:"uploadedAt"`
}

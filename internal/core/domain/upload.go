package domain

import (
	"io"
	"path/filepath"
	"strings"
)

// Upload validation limits.
const (
	// MaxUploadBytes is the largest file the backend accepts (10 MiB).
	MaxUploadBytes int64 = 10 * 1024 * 1024

	// AcceptedExtension is the only extension the backend can ingest.
	AcceptedExtension = ".txt"
)

// Rejection reasons produced by client-side validation.
const (
	ReasonTooLarge      = "file too large (max 10 MB)"
	ReasonWrongFileType = "only .txt files accepted"
)

// CandidateFile is a file offered for upload.
// Open is called at most once, and only if the file passes validation.
type CandidateFile struct {
	// Name is the filename sent to the backend.
	Name string

	// Size is the file size in bytes.
	Size int64

	// Open returns the file content.
	Open func() (io.ReadCloser, error)
}

// Validate returns the rejection reason for the file, or "" if it may be submitted.
// Size is checked before the extension.
func (f CandidateFile) Validate() string {
	if f.Size > MaxUploadBytes {
		return ReasonTooLarge
	}
	if !strings.EqualFold(filepath.Ext(f.Name), AcceptedExtension) {
		return ReasonWrongFileType
	}
	return ""
}

// UploadOutcome is the settlement state of an UploadTask.
type UploadOutcome string

const (
	// OutcomePending means the file has not settled yet.
	OutcomePending UploadOutcome = "pending"
	// OutcomeAccepted means the backend ingested the file.
	OutcomeAccepted UploadOutcome = "accepted"
	// OutcomeRejected means validation or submission failed.
	OutcomeRejected UploadOutcome = "rejected"
)

// UploadTask tracks one file for the lifetime of a single batch.
type UploadTask struct {
	Filename        string
	SizeBytes       int64
	ProgressPercent int
	Outcome         UploadOutcome

	// Document is set when Outcome is OutcomeAccepted.
	Document *Document

	// Reason is set when Outcome is OutcomeRejected.
	Reason string
}

// Accept settles the task as accepted.
func (t *UploadTask) Accept(doc Document) {
	t.Outcome = OutcomeAccepted
	t.Document = &doc
	t.ProgressPercent = 100
}

// Reject settles the task as rejected.
func (t *UploadTask) Reject(reason string) {
	t.Outcome = OutcomeRejected
	t.Reason = reason
}

// Rejection is a file that did not make it into the registry.
type Rejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// String formats the rejection as one summary line.
func (r Rejection) String() string {
	return r.Filename + ": " + r.Reason
}

// BatchResult partitions a settled upload batch.
// len(Accepted)+len(Rejected) always equals the number of submitted files.
type BatchResult struct {
	Accepted []Document  `json:"accepted"`
	Rejected []Rejection `json:"rejected"`
}

// Total returns the number of files in the batch.
func (r *BatchResult) Total() int {
	return len(r.Accepted) + len(r.Rejected)
}

// Summary returns the aggregated failure text, one reason per line,
// or "" when every file was accepted.
func (r *BatchResult) Summary() string {
	if len(r.Rejected) == 0 {
		return ""
	}
	lines := make([]string, 0, len(r.Rejected)+1)
	lines = append(lines, "upload errors:")
	for _, rej := range r.Rejected {
		lines = append(lines, rej.String())
	}
	return strings.Join(lines, "\n")
}

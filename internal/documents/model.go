package documents

import (
	"time"

	"docreview-backend/internal/llm"
)

// Status is a document's position in the upload pipeline.
type Status string

const (
	// StatusUploading is set when the record is first persisted, before any
	// bytes reach storage.
	StatusUploading Status = "UPLOADING"
	// StatusUploaded means the bytes are on storage. Terminal for non-PDFs.
	StatusUploaded Status = "UPLOADED"
	// StatusProcessing means text extraction is in flight (PDFs only).
	StatusProcessing Status = "PROCESSING"
	// StatusReview means structured extraction finished and a human must
	// approve the result.
	StatusReview Status = "REVIEW"
	// StatusCompleted is the approved terminal state.
	StatusCompleted Status = "COMPLETED"
	// StatusError means the pipeline failed before or during the storage
	// write; the record has no stored path.
	StatusError Status = "ERROR"
	// StatusParseError means the bytes were stored but extraction or the
	// model call failed.
	StatusParseError Status = "PARSE_ERROR"
)

// Document represents one uploaded file and its processing state.
type Document struct {
	ID            int64
	Filename      string
	FileSize      int64
	MimeType      string
	Status        Status
	StoredPath    string
	ExtractedData *llm.DocumentFields
	UploadedAt    time.Time
}

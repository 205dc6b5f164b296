package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"docreview-backend/internal/llm"
	"docreview-backend/internal/shared/metrics"
	"docreview-backend/internal/shared/storage/object"
	"docreview-backend/internal/shared/telemetry"
)

const mimePDF = "application/pdf"

// TextExtractor converts a PDF byte buffer into plain text.
type TextExtractor func(data []byte) (string, error)

// Service runs the upload pipeline and the review transition. The pipeline is
// synchronous: the caller's request is held open for storage, extraction, and
// the model call.
type Service struct {
	Store   object.Store
	Repo    Repo
	Extract TextExtractor
	LLM     llm.Client
}

// Upload runs the full pipeline for one file and returns the resulting
// record. On any failure after the record is created, its status is updated
// to a terminal failure state before the error is returned, so no document is
// left stuck in a non-terminal status.
func (s *Service) Upload(ctx context.Context, filename, mimeType string, size int64, r io.Reader) (Document, error) {
	if err := ValidateUpload(filename, size, mimeType); err != nil {
		return Document{}, err
	}

	started := time.Now()
	metrics.IncUploadStarted()

	doc := Document{
		Filename:   filename,
		FileSize:   size,
		MimeType:   mimeType,
		Status:     StatusUploading,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, &doc); err != nil {
		metrics.IncUploadFailed()
		return Document{}, fmt.Errorf("create document: %w", err)
	}

	// Extraction needs the bytes again, so buffer them. Uploads are capped
	// at MaxFileSize by validation.
	data, err := io.ReadAll(r)
	if err != nil {
		return doc, s.fail(ctx, &doc, StatusError, fmt.Errorf("read upload: %w", err))
	}

	storedPath, written, err := s.Store.Save(ctx, doc.ID, filename, bytes.NewReader(data))
	if err != nil {
		return doc, s.fail(ctx, &doc, StatusError, fmt.Errorf("store file: %w", err))
	}
	if err := s.Repo.MarkStored(ctx, doc.ID, storedPath, StatusUploaded); err != nil {
		return doc, s.fail(ctx, &doc, StatusError, fmt.Errorf("record stored path: %w", err))
	}
	doc.StoredPath = storedPath
	doc.Status = StatusUploaded
	telemetry.Info("document.stored", map[string]any{
		"document_id": doc.ID,
		"stored_path": storedPath,
		"bytes":       written,
	})

	if mimeType != mimePDF {
		metrics.IncUploadCompleted()
		metrics.ObservePipelineDurationMs(float64(time.Since(started).Milliseconds()))
		return doc, nil
	}

	if err := s.Repo.UpdateStatus(ctx, doc.ID, StatusProcessing); err != nil {
		return doc, s.fail(ctx, &doc, StatusParseError, fmt.Errorf("advance to processing: %w", err))
	}
	doc.Status = StatusProcessing

	text, err := s.Extract(data)
	if err != nil {
		metrics.IncExtractionFailed()
		return doc, s.fail(ctx, &doc, StatusParseError, fmt.Errorf("extract text: %w", err))
	}

	fields, err := s.LLM.ExtractDocumentFields(ctx, text)
	if err != nil {
		metrics.IncExtractionFailed()
		return doc, s.fail(ctx, &doc, StatusParseError, fmt.Errorf("structured extraction: %w", err))
	}

	if err := s.Repo.SetExtracted(ctx, doc.ID, fields, StatusReview); err != nil {
		return doc, s.fail(ctx, &doc, StatusParseError, fmt.Errorf("record extracted data: %w", err))
	}
	doc.ExtractedData = fields
	doc.Status = StatusReview

	metrics.IncUploadCompleted()
	metrics.ObservePipelineDurationMs(float64(time.Since(started).Milliseconds()))
	return doc, nil
}

// fail moves the record to a terminal failure status and returns the cause.
// The status write is best-effort; the original error wins.
func (s *Service) fail(ctx context.Context, doc *Document, status Status, cause error) error {
	metrics.IncUploadFailed()
	if err := s.Repo.UpdateStatus(ctx, doc.ID, status); err != nil {
		telemetry.Error("document.fail_status", map[string]any{
			"document_id": doc.ID,
			"status":      string(status),
			"error":       err.Error(),
		})
	} else {
		doc.Status = status
	}
	telemetry.Warn("document.pipeline_failed", map[string]any{
		"document_id": doc.ID,
		"status":      string(status),
		"error":       cause.Error(),
	})
	return cause
}

// Approve transitions a document from REVIEW to COMPLETED. Any other current
// status fails the precondition, including a repeat approval.
func (s *Service) Approve(ctx context.Context, id int64) (Document, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if doc.Status != StatusReview {
		return Document{}, ErrNotInReview
	}
	if err := s.Repo.UpdateStatus(ctx, id, StatusCompleted); err != nil {
		return Document{}, err
	}
	doc.Status = StatusCompleted
	return doc, nil
}

// Get returns a single document.
func (s *Service) Get(ctx context.Context, id int64) (Document, error) {
	return s.Repo.Get(ctx, id)
}

// List returns all documents newest-first.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.Repo.List(ctx)
}

// Delete removes the record. The stored bytes are intentionally left in
// place; the upload root is cleaned out of band.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

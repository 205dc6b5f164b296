package documents

import (
	"time"

	"docreview-backend/internal/llm"
)

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID            int64               `json:"id"`
	Filename      string              `json:"filename"`
	FileSize      int64               `json:"fileSize"`
	MimeType      string              `json:"mimeType"`
	Status        string              `json:"status"`
	StoredPath    string              `json:"storedPath,omitempty"`
	ExtractedData *llm.DocumentFields `json:"extractedData,omitempty"`
	UploadedAt    time.Time           `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:            doc.ID,
		Filename:      doc.Filename,
		FileSize:      doc.FileSize,
		MimeType:      doc.MimeType,
		Status:        string(doc.Status),
		StoredPath:    doc.StoredPath,
		ExtractedData: doc.ExtractedData,
		UploadedAt:    doc.UploadedAt,
	}
}

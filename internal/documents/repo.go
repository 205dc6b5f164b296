package documents

import (
	"context"

	"docreview-backend/internal/llm"
)

// Repo defines persistence operations for documents. Each mutation is its own
// flush; there is no transaction spanning the whole pipeline.
type Repo interface {
	// Create inserts the document and assigns its ID.
	Create(ctx context.Context, doc *Document) error
	Get(ctx context.Context, id int64) (Document, error)
	List(ctx context.Context) ([]Document, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	// MarkStored records the stored path and advances the status in one write.
	MarkStored(ctx context.Context, id int64, storedPath string, status Status) error
	// SetExtracted records the structured result and advances the status.
	SetExtracted(ctx context.Context, id int64, data *llm.DocumentFields, status Status) error
	Delete(ctx context.Context, id int64) error
}

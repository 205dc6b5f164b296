package documents

import (
	"context"
	"sort"
	"sync"

	"docreview-backend/internal/llm"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[int64]Document
}

// NewMemoryRepo constructs an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[int64]Document)}
}

func (r *MemoryRepo) Create(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	doc.ID = r.nextID
	r.docs[doc.ID] = *doc
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Document, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	return r.update(ctx, id, func(doc *Document) {
		doc.Status = status
	})
}

func (r *MemoryRepo) MarkStored(ctx context.Context, id int64, storedPath string, status Status) error {
	return r.update(ctx, id, func(doc *Document) {
		doc.StoredPath = storedPath
		doc.Status = status
	})
}

func (r *MemoryRepo) SetExtracted(ctx context.Context, id int64, data *llm.DocumentFields, status Status) error {
	return r.update(ctx, id, func(doc *Document) {
		doc.ExtractedData = data
		doc.Status = status
	})
}

func (r *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *MemoryRepo) update(ctx context.Context, id int64, apply func(*Document)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	apply(&doc)
	r.docs[id] = doc
	return nil
}

var _ Repo = (*MemoryRepo)(nil)

package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"docreview-backend/internal/llm"
)

// SQLRepo implements Repo on database/sql. Placeholders use the $N form,
// which both the pgx and sqlite drivers accept.
type SQLRepo struct {
	DB *sql.DB
}

// Create inserts a new document and assigns its generated ID.
func (r *SQLRepo) Create(ctx context.Context, doc *Document) error {
	const query = `
INSERT INTO documents (filename, file_size, mime_type, status, stored_path, extracted_data, uploaded_at)
VALUES ($1, $2, $3, $4, $5, NULL, $6)
RETURNING id`

	var storedPath sql.NullString
	if doc.StoredPath != "" {
		storedPath = sql.NullString{String: doc.StoredPath, Valid: true}
	}

	return r.DB.QueryRowContext(
		ctx,
		query,
		doc.Filename,
		doc.FileSize,
		doc.MimeType,
		string(doc.Status),
		storedPath,
		doc.UploadedAt,
	).Scan(&doc.ID)
}

// Get fetches a document by ID.
func (r *SQLRepo) Get(ctx context.Context, id int64) (Document, error) {
	const query = `
SELECT id, filename, file_size, mime_type, status, stored_path, extracted_data, uploaded_at
FROM documents
WHERE id = $1`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// List returns all documents newest-first.
func (r *SQLRepo) List(ctx context.Context) ([]Document, error) {
	const query = `
SELECT id, filename, file_size, mime_type, status, stored_path, extracted_data, uploaded_at
FROM documents
ORDER BY uploaded_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of an existing document.
func (r *SQLRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	const query = `UPDATE documents SET status = $1 WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// MarkStored records the stored path and status after a successful write.
func (r *SQLRepo) MarkStored(ctx context.Context, id int64, storedPath string, status Status) error {
	const query = `UPDATE documents SET stored_path = $1, status = $2 WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, storedPath, string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SetExtracted stores the structured extraction result and status.
func (r *SQLRepo) SetExtracted(ctx context.Context, id int64, data *llm.DocumentFields, status Status) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal extracted data: %w", err)
	}
	const query = `UPDATE documents SET extracted_data = $1, status = $2 WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, string(payload), string(status), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a document record. The stored bytes are left on storage.
func (r *SQLRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM documents WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var status string
	var storedPath sql.NullString
	var extracted sql.NullString
	if err := row.Scan(
		&doc.ID,
		&doc.Filename,
		&doc.FileSize,
		&doc.MimeType,
		&status,
		&storedPath,
		&extracted,
		&doc.UploadedAt,
	); err != nil {
		return Document{}, err
	}
	doc.Status = Status(status)
	if storedPath.Valid {
		doc.StoredPath = storedPath.String
	}
	if extracted.Valid && extracted.String != "" {
		var fields llm.DocumentFields
		if err := json.Unmarshal([]byte(extracted.String), &fields); err != nil {
			return Document{}, fmt.Errorf("unmarshal extracted data: %w", err)
		}
		doc.ExtractedData = &fields
	}
	return doc, nil
}

var _ Repo = (*SQLRepo)(nil)

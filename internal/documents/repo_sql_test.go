package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSQLRepoCreateAssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &SQLRepo{DB: db}
	doc := Document{
		Filename:   "Jan Invoice.pdf",
		FileSize:   4096,
		MimeType:   "application/pdf",
		Status:     StatusUploading,
		UploadedAt: time.Now().UTC(),
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.Filename, doc.FileSize, doc.MimeType, string(StatusUploading), nil, doc.UploadedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	if err := repo.Create(context.Background(), &doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.ID != 7 {
		t.Fatalf("expected assigned ID 7, got %d", doc.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLRepoGetScansExtractedData(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &SQLRepo{DB: db}
	uploadedAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "filename", "file_size", "mime_type", "status", "stored_path", "extracted_data", "uploaded_at"}).
		AddRow(int64(3), "invoice.pdf", int64(2048), "application/pdf", "REVIEW", "3/invoice.pdf",
			`{"documentType":"invoice","vendor":"Acme","amount":500,"date":"2024-01-15","description":"Jan invoice"}`, uploadedAt)
	mock.ExpectQuery("SELECT id, filename, file_size").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	doc, err := repo.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Status != StatusReview {
		t.Errorf("expected REVIEW, got %s", doc.Status)
	}
	if doc.StoredPath != "3/invoice.pdf" {
		t.Errorf("expected stored path, got %q", doc.StoredPath)
	}
	if doc.ExtractedData == nil || doc.ExtractedData.Amount == nil || *doc.ExtractedData.Amount != 500 {
		t.Errorf("expected extracted amount 500, got %+v", doc.ExtractedData)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLRepoGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &SQLRepo{DB: db}
	mock.ExpectQuery("SELECT id, filename, file_size").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename", "file_size", "mime_type", "status", "stored_path", "extracted_data", "uploaded_at"}))

	if _, err := repo.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLRepoUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &SQLRepo{DB: db}
	mock.ExpectExec("UPDATE documents SET status").
		WithArgs("COMPLETED", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(context.Background(), 99, StatusCompleted); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLRepoMarkStored(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &SQLRepo{DB: db}
	mock.ExpectExec("UPDATE documents SET stored_path").
		WithArgs("5/notes.txt", "UPLOADED", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkStored(context.Background(), 5, "5/notes.txt", StatusUploaded); err != nil {
		t.Fatalf("MarkStored: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLRepoDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &SQLRepo{DB: db}
	mock.ExpectExec("DELETE FROM documents").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM documents").
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(context.Background(), 6); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

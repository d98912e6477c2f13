package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := Document{
		ID:           "doc-1",
		UserID:       "user-1",
		Name:         "lease.pdf",
		Content:      "Terms of lease",
		PropertyID:   "prop-1",
		DocumentType: "lease",
		MimeType:     "application/pdf",
		SizeBytes:    1024,
		StorageKey:   "user-1/doc-1/lease.pdf",
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.UserID,
			doc.Name,
			doc.Content,
			nullable(""),
			nullable(doc.PropertyID),
			nullable(doc.DocumentType),
			doc.MimeType,
			doc.SizeBytes,
			nullable(doc.StorageKey),
			doc.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByUserJoinsProperty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	cols := []string{
		"id", "user_id", "name", "content", "analysis", "property_id",
		"document_type", "mime_type", "size_bytes", "storage_key", "created_at",
		"p_id", "p_name", "p_address",
	}
	rows := sqlmock.NewRows(cols).
		AddRow("doc-2", "user-1", "inspection.pdf", "", nil, nil, nil, "application/pdf", int64(10), nil, now, nil, nil, nil).
		AddRow("doc-1", "user-1", "lease.pdf", "Terms", "summary", "prop-1", "lease", "application/pdf", int64(20), "k1", now.Add(-time.Hour), "prop-1", "Maple House", "12 Maple St")

	mock.ExpectQuery("SELECT d.id, d.user_id, d.name").
		WithArgs("user-1").
		WillReturnRows(rows)

	docs, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "doc-2" {
		t.Fatalf("expected newest document first, got %s", docs[0].ID)
	}
	if docs[0].Property != nil {
		t.Fatalf("expected no property ref on unlinked document")
	}
	if docs[1].Property == nil || docs[1].Property.Name != "Maple House" {
		t.Fatalf("expected property ref resolved from join, got %+v", docs[1].Property)
	}
	if docs[1].Analysis != "summary" {
		t.Fatalf("expected analysis scanned, got %q", docs[1].Analysis)
	}
}

func TestPGRepoUpdateAnalysisNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE documents").
		WithArgs("summary", "user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateAnalysis(context.Background(), "user-1", "missing", "summary")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	cols := []string{
		"id", "user_id", "name", "content", "analysis", "property_id",
		"document_type", "mime_type", "size_bytes", "storage_key", "created_at",
	}
	mock.ExpectQuery("SELECT id, user_id, name").
		WithArgs("user-1", "missing").
		WillReturnRows(sqlmock.NewRows(cols))

	_, err = repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func pgTestColumns() []string {
	return []string{
		"id", "user_id", "title", "original_filename", "storage_key", "file_format", "size_bytes",
		"original_content", "cat_story", "status", "error_message", "processed_at", "version",
		"created_at", "updated_at",
	}
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := New("user-1", "report", "report.pdf", "key-1", FormatPDF, 2048)

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(
			doc.ID,
			doc.UserID,
			doc.Title,
			doc.OriginalFilename,
			doc.StorageKey,
			"pdf",
			doc.SizeBytes,
			sqlmock.AnyArg(), // original_content
			sqlmock.AnyArg(), // cat_story
			"uploaded",
			sqlmock.AnyArg(), // error_message
			sqlmock.AnyArg(), // processed_at
			int64(1),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(pgTestColumns()))

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPGRepoUpdateBumpsVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := New("user-1", "report", "report.pdf", "key-1", FormatPDF, 2048)
	doc.BeginProcessing()

	mock.ExpectExec("UPDATE documents SET").
		WithArgs(
			doc.ID,
			int64(1), // version condition
			doc.Title,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			"processing",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), doc); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if doc.Version != 2 {
		t.Fatalf("version = %d, want 2 after update", doc.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateVersionConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := New("user-1", "report", "report.pdf", "key-1", FormatPDF, 2048)

	mock.ExpectExec("UPDATE documents SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	// The zero-row update triggers a lookup to tell a stale version from a
	// deleted row.
	rows := sqlmock.NewRows(pgTestColumns()).AddRow(
		doc.ID, doc.UserID, doc.Title, doc.OriginalFilename, doc.StorageKey, "pdf", doc.SizeBytes,
		nil, nil, "processing", nil, nil, int64(2), time.Now(), time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM documents").WillReturnRows(rows)

	err = repo.Update(context.Background(), doc)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("got %v, want ErrVersionConflict", err)
	}
}

func TestPGRepoUpdateRowGone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	doc := New("user-1", "report", "report.pdf", "key-1", FormatPDF, 2048)

	mock.ExpectExec("UPDATE documents SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM documents").
		WillReturnRows(sqlmock.NewRows(pgTestColumns()))

	err = repo.Update(context.Background(), doc)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPGRepoDeleteScopedToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("DELETE FROM documents").
		WithArgs("doc-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "intruder", "doc-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

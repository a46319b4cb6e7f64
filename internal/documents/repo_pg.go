package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, title, original_filename, storage_key, file_format, size_bytes,
original_content, cat_story, status, error_message, processed_at, version, created_at, updated_at`

// Create inserts a new document row.
func (r *PGRepo) Create(ctx context.Context, doc *Document) error {
	const query = `
INSERT INTO documents (
    id,
    user_id,
    title,
    original_filename,
    storage_key,
    file_format,
    size_bytes,
    original_content,
    cat_story,
    status,
    error_message,
    processed_at,
    version,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.OriginalFilename,
		doc.StorageKey,
		string(doc.Format),
		doc.SizeBytes,
		nullString(doc.originalContent),
		nullString(doc.catStory),
		string(doc.status),
		nullString(doc.errorMessage),
		nullTime(doc.processedAt),
		doc.Version,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// GetByID returns a document regardless of owner; used by job handlers, which
// are keyed by document id alone.
func (r *PGRepo) GetByID(ctx context.Context, id string) (*Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetForUser returns a document scoped to its owner.
func (r *PGRepo) GetForUser(ctx context.Context, userID, id string) (*Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id, userID))
}

// ListByUser returns a user's documents newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Update persists the document as one whole-row write conditioned on the
// version stamp. A concurrent writer surfaces as ErrVersionConflict.
func (r *PGRepo) Update(ctx context.Context, doc *Document) error {
	const query = `
UPDATE documents SET
    title = $3,
    original_content = $4,
    cat_story = $5,
    status = $6,
    error_message = $7,
    processed_at = $8,
    version = version + 1,
    updated_at = $9
WHERE id = $1 AND version = $2`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Version,
		doc.Title,
		nullString(doc.originalContent),
		nullString(doc.catStory),
		string(doc.status),
		nullString(doc.errorMessage),
		nullTime(doc.processedAt),
		doc.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, lookupErr := r.GetByID(ctx, doc.ID); lookupErr != nil {
			return lookupErr
		}
		return ErrVersionConflict
	}
	doc.Version++
	return nil
}

// Delete removes a document row scoped to its owner.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
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

func (r *PGRepo) scanOne(row *sql.Row) (*Document, error) {
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func scanDocument(row rowScanner) (*Document, error) {
	var (
		doc             Document
		format          string
		status          string
		originalContent sql.NullString
		catStory        sql.NullString
		errorMessage    sql.NullString
		processedAt     sql.NullTime
	)
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Title,
		&doc.OriginalFilename,
		&doc.StorageKey,
		&format,
		&doc.SizeBytes,
		&originalContent,
		&catStory,
		&status,
		&errorMessage,
		&processedAt,
		&doc.Version,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.Format = Format(format)
	doc.status = Status(status)
	if originalContent.Valid {
		doc.originalContent = originalContent.String
	}
	if catStory.Valid {
		doc.catStory = catStory.String
	}
	if errorMessage.Valid {
		doc.errorMessage = errorMessage.String
	}
	if processedAt.Valid {
		t := processedAt.Time
		doc.processedAt = &t
	}
	return &doc, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ Repo = (*PGRepo)(nil)

package documents

import (
	"context"
	"errors"
	"fmt"
	"io"

	"catdocs-backend/internal/shared/storage/object"
	"catdocs-backend/internal/shared/telemetry"
	"catdocs-backend/internal/shared/util"
)

// Enqueuer schedules the two background jobs. The rewrite job must only be
// enqueued once extraction has produced content; Service and the extraction
// job are the only call sites, and both check that first.
type Enqueuer interface {
	EnqueueExtraction(ctx context.Context, documentID string) error
	EnqueueRewrite(ctx context.Context, documentID string, regenerate bool) error
}

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
	Jobs  Enqueuer
}

const maxUploadBytes = 10 << 20

// Upload stores the file, records the document, and enqueues text extraction.
func (s *Service) Upload(ctx context.Context, userID, fileName string, size int64, r io.Reader) (*Document, error) {
	if fileName == "" {
		return nil, ErrInvalidInput
	}
	if size > maxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidInput, int64(maxUploadBytes))
	}

	format, ok := ParseFormat(util.FileExtension(fileName))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, util.FileExtension(fileName))
	}

	storageKey, written, _, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}

	doc := New(userID, util.TitleFromFileName(fileName), fileName, storageKey, format, written)
	if err := s.Repo.Create(ctx, doc); err != nil {
		// The row never existed, so the stored object is orphaned; release it.
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Warn("document.orphan_cleanup_failed", map[string]any{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return nil, fmt.Errorf("create document: %w", err)
	}

	if err := s.Jobs.EnqueueExtraction(ctx, doc.ID); err != nil {
		telemetry.Error("document.enqueue_extraction_failed", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("enqueue extraction: %w", err)
	}

	telemetry.Info("document.uploaded", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"format":      string(format),
		"size_bytes":  written,
	})
	return doc, nil
}

// Get returns a document scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, id string) (*Document, error) {
	if userID == "" || id == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.GetForUser(ctx, userID, id)
}

// List returns the user's documents newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]*Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes the document and releases its stored file. The file belongs
// to the document, so it is removed first; a row delete failure after the
// file is gone still leaves a consistent record pointing at nothing, which
// the user can retry deleting.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	doc, err := s.Repo.GetForUser(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, doc.StorageKey); err != nil {
		return fmt.Errorf("delete stored file: %w", err)
	}
	return s.Repo.Delete(ctx, userID, id)
}

// DeleteAllForUser releases every document owned by userID, files included.
// Called when an owner account is removed; the database cascade removes any
// rows this loop missed.
func (s *Service) DeleteAllForUser(ctx context.Context, userID string) error {
	for {
		docs, err := s.Repo.ListByUser(ctx, userID, 100, 0)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		for _, doc := range docs {
			if err := s.Delete(ctx, userID, doc.ID); err != nil && !errors.Is(err, ErrNotFound) {
				return err
			}
		}
	}
}

// Retry re-enters the pipeline from scratch for a failed document: the error
// reason is cleared and extraction is re-enqueued. Partial state is not resumed.
func (s *Service) Retry(ctx context.Context, userID, id string) (*Document, error) {
	doc, err := s.Repo.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := doc.ResetForRetry(); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.Jobs.EnqueueExtraction(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("enqueue extraction: %w", err)
	}
	telemetry.Info("document.retry", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
	})
	return doc, nil
}

// RequestRewrite is the explicit "generate now" action. It requires extracted
// content and refuses to spend a second completion call on a document that
// already has a cat story unless regenerate is set.
func (s *Service) RequestRewrite(ctx context.Context, userID, id string, regenerate bool) (*Document, error) {
	doc, err := s.Repo.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !doc.HasOriginalContent() {
		return nil, ErrNotExtracted
	}
	if doc.HasCatStory() && !regenerate {
		return nil, ErrAlreadyRewritten
	}
	if err := s.Jobs.EnqueueRewrite(ctx, doc.ID, regenerate); err != nil {
		return nil, fmt.Errorf("enqueue rewrite: %w", err)
	}
	telemetry.Info("document.rewrite_requested", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"regenerate":  regenerate,
	})
	return doc, nil
}

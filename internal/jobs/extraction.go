package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"catdocs-backend/internal/documents"
	"catdocs-backend/internal/extract"
	"catdocs-backend/internal/shared/metrics"
	"catdocs-backend/internal/shared/storage/object"
	"catdocs-backend/internal/shared/telemetry"
	"catdocs-backend/internal/validate"
)

// ExtractionHandler runs the text extraction job: open the stored file, pull
// cleaned text out of it, validate the result, and hand the document to the
// rewrite stage.
type ExtractionHandler struct {
	Repo  documents.Repo
	Store object.ObjectStore
	Jobs  documents.Enqueuer
}

func (h *ExtractionHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload extractPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode extraction payload: %v: %w", err, asynq.SkipRetry)
	}

	doc, err := h.Repo.GetByID(ctx, payload.DocumentID)
	if err != nil {
		if err == documents.ErrNotFound {
			// Deleted between enqueue and execution; nothing to do.
			telemetry.Warn("job.extraction.document_gone", map[string]any{"document_id": payload.DocumentID})
			return nil
		}
		return fmt.Errorf("load document %s: %w", payload.DocumentID, err)
	}

	if err := doc.BeginProcessing(); err != nil {
		telemetry.Warn("job.extraction.skipped", map[string]any{
			"document_id": doc.ID,
			"status":      string(doc.Status()),
			"reason":      err.Error(),
		})
		return nil
	}
	if err := h.Repo.Update(ctx, doc); err != nil {
		return fmt.Errorf("mark processing %s: %w", doc.ID, err)
	}

	metrics.IncExtractionStarted()
	start := time.Now()
	text, err := extract.Text(ctx, h.Store, doc.StorageKey, string(doc.Format))
	if err != nil {
		metrics.IncExtractionFailed()
		if extract.IsKind(err, extract.KindUnsupportedFormat) ||
			extract.IsKind(err, extract.KindEmptyContent) ||
			extract.IsKind(err, extract.KindTooShort) {
			// The file itself cannot yield usable text; retrying reads the
			// same bytes again.
			h.failDocument(doc.ID, extractionFailureMessage(finalAttempt(ctx), err))
			return fmt.Errorf("extract %s: %v: %w", doc.ID, err, asynq.SkipRetry)
		}
		h.failDocument(doc.ID, extractionFailureMessage(finalAttempt(ctx), err))
		return fmt.Errorf("extract %s: %w", doc.ID, err)
	}

	if result := validate.Content(text); !result.Valid {
		metrics.IncExtractionFailed()
		h.failDocument(doc.ID, "Content validation failed: "+strings.Join(result.Issues, "; "))
		return fmt.Errorf("validate %s: %s: %w", doc.ID, strings.Join(result.Issues, "; "), asynq.SkipRetry)
	}

	if err := doc.MarkExtracted(text); err != nil {
		h.failDocument(doc.ID, extractionFailureMessage(finalAttempt(ctx), err))
		return fmt.Errorf("record extraction %s: %v: %w", doc.ID, err, asynq.SkipRetry)
	}
	if err := h.Repo.Update(ctx, doc); err != nil {
		return fmt.Errorf("save extraction %s: %w", doc.ID, err)
	}

	metrics.IncExtractionCompleted()
	metrics.ObserveExtractionDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("job.extraction.done", map[string]any{
		"document_id": doc.ID,
		"format":      string(doc.Format),
		"chars":       len(text),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if err := h.Jobs.EnqueueRewrite(ctx, doc.ID, false); err != nil {
		return fmt.Errorf("enqueue rewrite %s: %w", doc.ID, err)
	}
	return nil
}

// failDocument records the failure reason on the document. The job context may
// already be canceled or past its deadline, so persistence uses a fresh one.
func (h *ExtractionHandler) failDocument(documentID, reason string) {
	failDocument(h.Repo, documentID, reason)
}

func extractionFailureMessage(final bool, err error) string {
	if final {
		return "Text extraction failed after multiple attempts: " + sanitizeReason(err.Error())
	}
	return "Text extraction failed: " + sanitizeReason(err.Error())
}

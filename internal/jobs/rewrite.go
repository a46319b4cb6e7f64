package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"catdocs-backend/internal/documents"
	"catdocs-backend/internal/rewrite"
	"catdocs-backend/internal/shared/metrics"
	"catdocs-backend/internal/shared/telemetry"
	"catdocs-backend/internal/validate"
)

// RewriteHandler runs the cat-story generation job against the extracted text
// already stored on the document row.
type RewriteHandler struct {
	Repo   documents.Repo
	Client rewrite.Client
}

func (h *RewriteHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload rewritePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode rewrite payload: %v: %w", err, asynq.SkipRetry)
	}

	// Re-read rather than trusting enqueue-time state; the document may have
	// been retried, regenerated, or deleted while this task sat in the queue.
	doc, err := h.Repo.GetByID(ctx, payload.DocumentID)
	if err != nil {
		if err == documents.ErrNotFound {
			telemetry.Warn("job.rewrite.document_gone", map[string]any{"document_id": payload.DocumentID})
			return nil
		}
		return fmt.Errorf("load document %s: %w", payload.DocumentID, err)
	}

	if doc.HasCatStory() && !payload.Regenerate {
		telemetry.Info("job.rewrite.already_done", map[string]any{"document_id": doc.ID})
		return nil
	}
	if !doc.HasOriginalContent() {
		// Enqueue sites check for extracted content, so reaching here means a
		// logic error or a concurrent reset; surface it on the document.
		h.failDocument(doc.ID, "Story generation failed: no extracted text to rewrite")
		return fmt.Errorf("rewrite %s: no extracted content: %w", doc.ID, asynq.SkipRetry)
	}

	// Content is validated at extraction time, but the explicit generate
	// action can race a retry; re-check before spending a completion call.
	if result := validate.Content(doc.OriginalContent()); !result.Valid {
		h.failDocument(doc.ID, "Content validation failed: "+strings.Join(result.Issues, "; "))
		return fmt.Errorf("rewrite %s: invalid content: %w", doc.ID, asynq.SkipRetry)
	}

	if err := doc.BeginProcessing(); err != nil {
		telemetry.Warn("job.rewrite.skipped", map[string]any{
			"document_id": doc.ID,
			"status":      string(doc.Status()),
			"reason":      err.Error(),
		})
		return nil
	}
	if err := h.Repo.Update(ctx, doc); err != nil {
		return fmt.Errorf("mark processing %s: %w", doc.ID, err)
	}

	metrics.IncRewriteStarted()
	start := time.Now()
	story, err := h.Client.Generate(ctx, rewrite.Input{DocumentID: doc.ID, Text: doc.OriginalContent()})
	if err != nil {
		metrics.IncRewriteFailed()
		if rewrite.IsKind(err, rewrite.KindEmptyInput) {
			h.failDocument(doc.ID, rewriteFailureMessage(finalAttempt(ctx), err))
			return fmt.Errorf("generate %s: %v: %w", doc.ID, err, asynq.SkipRetry)
		}
		// Transport faults, empty and degenerate responses are all worth a
		// fresh completion call.
		h.failDocument(doc.ID, rewriteFailureMessage(finalAttempt(ctx), err))
		return fmt.Errorf("generate %s: %w", doc.ID, err)
	}

	if err := doc.Complete(story, time.Now()); err != nil {
		h.failDocument(doc.ID, rewriteFailureMessage(finalAttempt(ctx), err))
		return fmt.Errorf("record story %s: %v: %w", doc.ID, err, asynq.SkipRetry)
	}
	if err := h.Repo.Update(ctx, doc); err != nil {
		return fmt.Errorf("save story %s: %w", doc.ID, err)
	}

	metrics.IncRewriteCompleted()
	metrics.ObserveRewriteDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("job.rewrite.done", map[string]any{
		"document_id": doc.ID,
		"story_chars": len(story),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (h *RewriteHandler) failDocument(documentID, reason string) {
	failDocument(h.Repo, documentID, reason)
}

func rewriteFailureMessage(final bool, err error) string {
	if final {
		return "Story generation failed after multiple attempts: " + sanitizeReason(err.Error())
	}
	return "Story generation failed: " + sanitizeReason(err.Error())
}

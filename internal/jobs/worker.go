package jobs

import (
	"context"
	"strings"

	"github.com/hibiken/asynq"

	"catdocs-backend/internal/documents"
	"catdocs-backend/internal/rewrite"
	"catdocs-backend/internal/shared/storage/object"
	"catdocs-backend/internal/shared/telemetry"
)

const maxReasonChars = 500

// Worker owns the queue consumer and the task handlers.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewWorker builds a Worker consuming from the given redis URL.
func NewWorker(redisURL string, repo documents.Repo, store object.ObjectStore, enqueuer documents.Enqueuer, client rewrite.Client, concurrency int) (*Worker, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency:    concurrency,
		RetryDelayFunc: retryDelay,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			telemetry.Error("job.failed", map[string]any{
				"task":      task.Type(),
				"retried":   retried,
				"max_retry": maxRetry,
				"error":     err.Error(),
			})
		}),
	})

	mux := asynq.NewServeMux()
	mux.Handle(TaskExtractText, &ExtractionHandler{Repo: repo, Store: store, Jobs: enqueuer})
	mux.Handle(TaskGenerateCatStory, &RewriteHandler{Repo: repo, Client: client})

	return &Worker{server: server, mux: mux}, nil
}

// Run blocks consuming tasks until Shutdown is called or the process receives
// a termination signal.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown waits for in-flight tasks and stops the consumer.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// failDocument persists a failure reason on the document. The job context may
// be canceled or past deadline at this point, so a fresh context is used; a
// document we cannot mark failed is logged and left for the next attempt.
func failDocument(repo documents.Repo, documentID, reason string) {
	ctx := context.Background()
	doc, err := repo.GetByID(ctx, documentID)
	if err != nil {
		telemetry.Error("job.fail_document.load", map[string]any{"document_id": documentID, "error": err.Error()})
		return
	}
	if err := doc.Fail(reason); err != nil {
		telemetry.Error("job.fail_document.transition", map[string]any{"document_id": documentID, "error": err.Error()})
		return
	}
	if err := repo.Update(ctx, doc); err != nil {
		telemetry.Error("job.fail_document.save", map[string]any{"document_id": documentID, "error": err.Error()})
	}
}

// finalAttempt reports whether the current task execution has exhausted its
// retry budget.
func finalAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return false
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return false
	}
	return retried >= maxRetry
}

// sanitizeReason flattens an error message for storage in the user-visible
// error_message column.
func sanitizeReason(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxReasonChars {
		s = s[:maxReasonChars]
	}
	return s
}

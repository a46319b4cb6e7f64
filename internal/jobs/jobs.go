// Package jobs schedules and runs the two background units of work: text
// extraction and cat-story rewrite. Both are keyed by document id, retried on
// a bounded budget with their own backoff schedules, and isolated from each
// other: all job state lives on the document row.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskExtractText      = "document:extract"
	TaskGenerateCatStory = "document:rewrite"
)

const (
	// Extraction gets a generous ceiling to accommodate very large files.
	extractionTimeout  = time.Hour
	extractionAttempts = 3

	// Rewrite is a single network call; it also carries an absolute deadline
	// from first enqueue regardless of remaining attempt budget.
	rewriteTimeout  = 15 * time.Minute
	rewriteDeadline = 30 * time.Minute
	rewriteAttempts = 3

	taskRetention = 24 * time.Hour
)

var (
	extractionBackoff = []time.Duration{1 * time.Minute, 5 * time.Minute, 15 * time.Minute}
	rewriteBackoff    = []time.Duration{1 * time.Minute, 2 * time.Minute, 3 * time.Minute}
)

// extractPayload is the extraction task body.
type extractPayload struct {
	DocumentID string `json:"document_id"`
}

// rewritePayload is the rewrite task body.
type rewritePayload struct {
	DocumentID string `json:"document_id"`
	Regenerate bool   `json:"regenerate"`
}

// Enqueuer submits tasks to the job queue. It satisfies documents.Enqueuer.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer constructs an Enqueuer from a redis URL.
func NewEnqueuer(redisURL string) (*Enqueuer, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Enqueuer{client: asynq.NewClient(opt)}, nil
}

// Close releases the underlying queue connection.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}

// EnqueueExtraction schedules text extraction for a document.
func (e *Enqueuer) EnqueueExtraction(ctx context.Context, documentID string) error {
	payload, err := json.Marshal(extractPayload{DocumentID: documentID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(
		TaskExtractText,
		payload,
		asynq.MaxRetry(extractionAttempts-1),
		asynq.Timeout(extractionTimeout),
		asynq.Retention(taskRetention),
	)
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}

// EnqueueRewrite schedules cat-story generation for a document. It must only
// be called once extraction has produced content: from the extraction success
// path, or from the explicit generate action which checks content first.
func (e *Enqueuer) EnqueueRewrite(ctx context.Context, documentID string, regenerate bool) error {
	payload, err := json.Marshal(rewritePayload{DocumentID: documentID, Regenerate: regenerate})
	if err != nil {
		return err
	}
	task := asynq.NewTask(
		TaskGenerateCatStory,
		payload,
		asynq.MaxRetry(rewriteAttempts-1),
		asynq.Timeout(rewriteTimeout),
		asynq.Deadline(time.Now().Add(rewriteDeadline)),
		asynq.Retention(taskRetention),
	)
	_, err = e.client.EnqueueContext(ctx, task)
	return err
}

// retryDelay returns the per-task backoff schedule. n is the number of times
// the task has been retried so far.
func retryDelay(n int, _ error, task *asynq.Task) time.Duration {
	schedule := extractionBackoff
	if task.Type() == TaskGenerateCatStory {
		schedule = rewriteBackoff
	}
	if n < 0 {
		n = 0
	}
	if n >= len(schedule) {
		n = len(schedule) - 1
	}
	return schedule[n]
}

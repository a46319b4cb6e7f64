package documents

import (
	"fmt"
	"strings"
	"time"
)

// TransitionError reports an attempt to move a document between states the
// lifecycle does not permit.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// BeginProcessing moves the document into the processing state at the start
// of an extraction or rewrite attempt. Entering processing always clears the
// error reason; entering from completed is the regeneration path and discards
// the previous cat story so a stale rewrite is never observable alongside a
// non-completed status.
func (d *Document) BeginProcessing() error {
	switch d.status {
	case StatusUploaded, StatusFailed:
	case StatusCompleted:
		d.catStory = ""
	default:
		return &TransitionError{From: d.status, To: StatusProcessing}
	}
	d.status = StatusProcessing
	d.errorMessage = ""
	d.touch()
	return nil
}

// MarkExtracted records cleaned extracted text and returns the document to
// uploaded, meaning ready for the rewrite stage.
func (d *Document) MarkExtracted(text string) error {
	if d.status != StatusProcessing {
		return &TransitionError{From: d.status, To: StatusUploaded}
	}
	d.originalContent = text
	d.status = StatusUploaded
	d.errorMessage = ""
	d.touch()
	return nil
}

// Complete records the generated cat story and the processed timestamp in the
// same transition; there is no observable state where one is set without the
// other.
func (d *Document) Complete(story string, at time.Time) error {
	if d.status != StatusProcessing {
		return &TransitionError{From: d.status, To: StatusCompleted}
	}
	if strings.TrimSpace(story) == "" {
		return fmt.Errorf("complete requires a non-empty story")
	}
	at = at.UTC()
	d.catStory = story
	d.processedAt = &at
	d.status = StatusCompleted
	d.errorMessage = ""
	d.touch()
	return nil
}

// Fail records a failure reason and moves the document to failed.
func (d *Document) Fail(reason string) error {
	switch d.status {
	case StatusUploaded, StatusProcessing, StatusFailed:
	default:
		return &TransitionError{From: d.status, To: StatusFailed}
	}
	d.status = StatusFailed
	d.errorMessage = reason
	d.touch()
	return nil
}

// ResetForRetry is the explicit user retry action: failed documents return to
// uploaded with the error reason cleared, and processing restarts from
// extraction rather than resuming partial state.
func (d *Document) ResetForRetry() error {
	if d.status != StatusFailed {
		return &TransitionError{From: d.status, To: StatusUploaded}
	}
	d.status = StatusUploaded
	d.errorMessage = ""
	d.touch()
	return nil
}

func (d *Document) touch() {
	d.UpdatedAt = time.Now().UTC()
}

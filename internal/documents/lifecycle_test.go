package documents

import (
	"errors"
	"testing"
	"time"
)

func newTestDoc() *Document {
	return New("user-1", "report", "report.pdf", "key-1", FormatPDF, 1024)
}

func TestLifecycleHappyPath(t *testing.T) {
	doc := newTestDoc()
	if doc.Status() != StatusUploaded {
		t.Fatalf("new document status = %s, want %s", doc.Status(), StatusUploaded)
	}

	if err := doc.BeginProcessing(); err != nil {
		t.Fatalf("BeginProcessing: %v", err)
	}
	if doc.Status() != StatusProcessing {
		t.Fatalf("status = %s, want %s", doc.Status(), StatusProcessing)
	}

	if err := doc.MarkExtracted("the extracted text"); err != nil {
		t.Fatalf("MarkExtracted: %v", err)
	}
	if doc.Status() != StatusUploaded {
		t.Fatalf("status after extraction = %s, want %s", doc.Status(), StatusUploaded)
	}
	if !doc.HasOriginalContent() {
		t.Fatal("expected extracted content to be recorded")
	}

	if err := doc.BeginProcessing(); err != nil {
		t.Fatalf("BeginProcessing for rewrite: %v", err)
	}
	at := time.Now().UTC()
	if err := doc.Complete("A story told by a cat.", at); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if doc.Status() != StatusCompleted {
		t.Fatalf("status = %s, want %s", doc.Status(), StatusCompleted)
	}
	if !doc.HasCatStory() {
		t.Fatal("expected cat story to be recorded")
	}
	if doc.ProcessedAt() == nil {
		t.Fatal("expected processedAt to be set with the story")
	}
}

func TestLifecycleRejectsIllegalTransitions(t *testing.T) {
	var terr *TransitionError

	doc := newTestDoc()
	if err := doc.MarkExtracted("text"); !errors.As(err, &terr) {
		t.Fatalf("MarkExtracted from uploaded: got %v, want TransitionError", err)
	}
	if err := doc.Complete("story", time.Now()); !errors.As(err, &terr) {
		t.Fatalf("Complete from uploaded: got %v, want TransitionError", err)
	}
	if err := doc.ResetForRetry(); !errors.As(err, &terr) {
		t.Fatalf("ResetForRetry from uploaded: got %v, want TransitionError", err)
	}

	if err := doc.BeginProcessing(); err != nil {
		t.Fatalf("BeginProcessing: %v", err)
	}
	if err := doc.BeginProcessing(); !errors.As(err, &terr) {
		t.Fatalf("BeginProcessing while processing: got %v, want TransitionError", err)
	}
}

func TestCompleteRequiresStory(t *testing.T) {
	doc := newTestDoc()
	if err := doc.BeginProcessing(); err != nil {
		t.Fatalf("BeginProcessing: %v", err)
	}
	if err := doc.Complete("   ", time.Now()); err == nil {
		t.Fatal("expected error for blank story")
	}
}

func TestFailAndRetryClearsError(t *testing.T) {
	doc := newTestDoc()
	if err := doc.BeginProcessing(); err != nil {
		t.Fatalf("BeginProcessing: %v", err)
	}
	if err := doc.Fail("Text extraction failed: boom"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if doc.Status() != StatusFailed || doc.ErrorMessage() == "" {
		t.Fatalf("status=%s error=%q, want failed with reason", doc.Status(), doc.ErrorMessage())
	}

	if err := doc.ResetForRetry(); err != nil {
		t.Fatalf("ResetForRetry: %v", err)
	}
	if doc.Status() != StatusUploaded {
		t.Fatalf("status after retry = %s, want %s", doc.Status(), StatusUploaded)
	}
	if doc.ErrorMessage() != "" {
		t.Fatalf("error message after retry = %q, want empty", doc.ErrorMessage())
	}
}

func TestRegenerationDiscardsOldStory(t *testing.T) {
	doc := newTestDoc()
	doc.BeginProcessing()
	doc.MarkExtracted("the extracted text")
	doc.BeginProcessing()
	if err := doc.Complete("First story.", time.Now()); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	// Regenerate: completed documents may re-enter processing, and the stale
	// story must not be visible while the new one is pending.
	if err := doc.BeginProcessing(); err != nil {
		t.Fatalf("BeginProcessing from completed: %v", err)
	}
	if doc.HasCatStory() {
		t.Fatal("stale cat story still visible during regeneration")
	}
	if !doc.HasOriginalContent() {
		t.Fatal("extracted content must survive regeneration")
	}
}

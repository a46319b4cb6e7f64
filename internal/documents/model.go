package documents

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a document.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Format is the declared file format of an uploaded document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
	FormatPPT  Format = "ppt"
	FormatPPTX Format = "pptx"
)

// ParseFormat maps a lowercased file extension to a Format.
func ParseFormat(ext string) (Format, bool) {
	switch Format(ext) {
	case FormatPDF, FormatDOC, FormatDOCX, FormatPPT, FormatPPTX:
		return Format(ext), true
	default:
		return "", false
	}
}

// Document represents an uploaded office document moving through the
// extraction and rewrite pipeline. The lifecycle fields (status, cat story,
// error message, processed timestamp) are unexported: the transition methods
// in lifecycle.go are the only sanctioned way to mutate them.
type Document struct {
	ID               string
	UserID           string
	Title            string
	OriginalFilename string
	StorageKey       string
	Format           Format
	SizeBytes        int64
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time

	originalContent string
	catStory        string
	status          Status
	errorMessage    string
	processedAt     *time.Time
}

// New creates a freshly uploaded document.
func New(userID, title, originalFilename, storageKey string, format Format, sizeBytes int64) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:               uuid.NewString(),
		UserID:           userID,
		Title:            title,
		OriginalFilename: originalFilename,
		StorageKey:       storageKey,
		Format:           format,
		SizeBytes:        sizeBytes,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
		status:           StatusUploaded,
	}
}

// Status returns the current lifecycle status.
func (d *Document) Status() Status { return d.status }

// OriginalContent returns the extracted plain text, empty if not yet extracted.
func (d *Document) OriginalContent() string { return d.originalContent }

// HasOriginalContent reports whether extraction has produced text.
func (d *Document) HasOriginalContent() bool { return d.originalContent != "" }

// CatStory returns the generated rewrite, empty unless the document completed.
func (d *Document) CatStory() string { return d.catStory }

// HasCatStory reports whether a rewrite already exists.
func (d *Document) HasCatStory() bool { return d.catStory != "" }

// ErrorMessage returns the last failure reason, empty unless status is failed.
func (d *Document) ErrorMessage() string { return d.errorMessage }

// ProcessedAt returns the completion timestamp, nil unless a rewrite succeeded.
func (d *Document) ProcessedAt() *time.Time {
	if d.processedAt == nil {
		return nil
	}
	t := *d.processedAt
	return &t
}

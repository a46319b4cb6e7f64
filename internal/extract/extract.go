// Package extract converts uploaded office documents into cleaned plain text.
// Each supported format has a dedicated strategy; all of them return either
// text or a typed Error, never a raw parser fault.
package extract

import (
	"context"
	"fmt"
	"io"

	"catdocs-backend/internal/shared/storage/object"
)

// Text pulls and cleans text from a stored object given its declared format.
func Text(ctx context.Context, store object.ObjectStore, storageKey string, format string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("open stored file key=%s: %w", storageKey, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read stored file key=%s: %w", storageKey, err)
	}

	return FromBytes(ctx, raw, format)
}

// FromBytes extracts cleaned text from an in-memory payload. The declared
// format dispatches to one of three strategies: PDF, the Word family, or the
// PowerPoint family. The cleaning pass and output-length policy apply
// uniformly regardless of source format.
func FromBytes(ctx context.Context, data []byte, format string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		eerr *Error
	)
	switch format {
	case "pdf":
		text, eerr = extractPDF(data)
	case "doc", "docx":
		text, eerr = extractWord(data)
	case "ppt", "pptx":
		text, eerr = extractPowerPoint(data)
	default:
		return "", unsupportedFormat(format)
	}
	if eerr != nil {
		return "", eerr
	}

	return enforceLength(clean(text))
}

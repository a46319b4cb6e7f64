package documents

import "errors"

var (
	// ErrNotFound indicates the document does not exist or is not visible to the caller.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput indicates a malformed or unsupported upload request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedFormat indicates a file extension outside the supported set.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrVersionConflict indicates a concurrent update was detected by the
	// version stamp; the caller should re-read and retry.
	ErrVersionConflict = errors.New("document version conflict")
	// ErrNotExtracted indicates a rewrite was requested before extraction produced text.
	ErrNotExtracted = errors.New("document has no extracted content")
	// ErrAlreadyRewritten indicates a rewrite exists and regeneration was not requested.
	ErrAlreadyRewritten = errors.New("document already has a cat story")
)

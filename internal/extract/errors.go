package extract

import "fmt"

// ErrorKind tags the extraction failure taxonomy.
type ErrorKind string

const (
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindEmptyContent      ErrorKind = "empty_content"
	KindTooShort          ErrorKind = "too_short"
	KindParserFault       ErrorKind = "parser_fault"
)

// Error is a typed extraction failure. Parser faults from the underlying
// format libraries are always converted into this type; a raw parser error
// never escapes the package.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// IsKind reports whether err is an extraction Error with the given kind.
func IsKind(err error, kind ErrorKind) bool {
	ee, ok := err.(*Error)
	return ok && ee.Kind == kind
}

func unsupportedFormat(format string) *Error {
	return &Error{Kind: KindUnsupportedFormat, Detail: fmt.Sprintf("unsupported file format %q", format)}
}

func emptyContent(detail string) *Error {
	return &Error{Kind: KindEmptyContent, Detail: detail}
}

func tooShort(length int) *Error {
	return &Error{Kind: KindTooShort, Detail: fmt.Sprintf("extracted text is %d characters, minimum is %d", length, minChars)}
}

func parserFault(format string, err error) *Error {
	return &Error{Kind: KindParserFault, Detail: fmt.Sprintf("%s parser: %v", format, err)}
}

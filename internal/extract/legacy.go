package extract

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

// Legacy binary Office formats (.doc, .ppt) are OLE compound files. Rather
// than depend on a full compound-file reader, text is recovered by scanning
// for printable runs in both single-byte and UTF-16LE encodings and keeping
// whichever recovers more. Slides or documents made purely of graphics yield
// nothing, which surfaces as an empty-content error.
const minRunLength = 8

func extractLegacyBinary(data []byte, format string) (string, *Error) {
	ascii := printableASCIIRuns(data)
	wide := printableUTF16Runs(data)

	text := ascii
	if len(wide) > len(ascii) {
		text = wide
	}
	if strings.TrimSpace(text) == "" {
		return "", emptyContent(format + " file contains no recoverable text")
	}
	return text, nil
}

func printableASCIIRuns(data []byte) string {
	var sb strings.Builder
	var run []byte
	flush := func() {
		if len(run) >= minRunLength {
			sb.Write(run)
			sb.WriteByte('\n')
		}
		run = run[:0]
	}
	for _, b := range data {
		if b == '\t' || (b >= 0x20 && b < 0x7f) {
			run = append(run, b)
			continue
		}
		flush()
	}
	flush()
	return sb.String()
}

func printableUTF16Runs(data []byte) string {
	if len(data) < 2 {
		return ""
	}
	var sb strings.Builder
	var run []uint16
	flush := func() {
		if len(run) >= minRunLength {
			for _, r := range utf16.Decode(run) {
				sb.WriteRune(r)
			}
			sb.WriteByte('\n')
		}
		run = run[:0]
	}
	for i := 0; i+1 < len(data); i += 2 {
		u := uint16(data[i]) | uint16(data[i+1])<<8
		r := rune(u)
		if u >= 0x20 && u != 0x7f && (unicode.IsPrint(r) || r == '\t') && !utf16.IsSurrogate(r) {
			run = append(run, u)
			continue
		}
		flush()
	}
	flush()
	return sb.String()
}

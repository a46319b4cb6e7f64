package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minChars         = 50
	maxChars         = 100_000
	truncationMarker = "\n\n[Content truncated]"
)

// clean applies the uniform post-processing pass regardless of source format:
// line breaks are normalized to \n, control characters other than newline and
// tab are stripped, runs of spaces and tabs collapse to a single space, runs
// of three or more blank lines collapse to exactly one blank line, and the
// result is trimmed.
func clean(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var sb strings.Builder
	sb.Grow(len(raw))
	for _, r := range raw {
		if r == '\n' || r == '\t' {
			sb.WriteRune(r)
			continue
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			continue
		}
		sb.WriteRune(r)
	}

	lines := strings.Split(sb.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}

	var out []string
	blanks := 0
	for _, line := range lines {
		if line == "" {
			blanks++
			continue
		}
		if blanks > 0 && len(out) > 0 {
			// Shorter runs are kept; three or more blank lines collapse to one.
			if blanks >= 3 {
				blanks = 1
			}
			for i := 0; i < blanks; i++ {
				out = append(out, "")
			}
		}
		blanks = 0
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// enforceLength applies the output-length policy: text shorter than minChars
// is rejected, text longer than maxChars is truncated with a visible marker.
func enforceLength(text string) (string, error) {
	if text == "" {
		return "", emptyContent("no text content found")
	}
	if len(text) < minChars {
		return "", tooShort(len(text))
	}
	if len(text) > maxChars {
		// Back up to a rune boundary so the cut never produces invalid UTF-8.
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		return text[:cut] + truncationMarker, nil
	}
	return text, nil
}

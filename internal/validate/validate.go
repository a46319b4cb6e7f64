// Package validate checks extracted text against length and content policies
// before any expensive downstream call is made.
package validate

import (
	"regexp"
	"strings"
)

const (
	minContentChars = 50
	maxContentChars = 50_000
)

// Fixed issue messages. Ordering is part of the contract: given the same
// text, Content always returns the same issues in the same order.
const (
	IssueEmpty     = "Content is empty"
	IssueTooShort  = "Content is too short (minimum 50 characters)"
	IssueTooLong   = "Content is too long (maximum 50,000 characters)"
	IssueSensitive = "Content may contain sensitive information"
)

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(password|secret|confidential)\b`),
	// 16-digit grouped numbers resembling payment card numbers.
	regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
	// XXX-XX-XXXX patterns resembling national ID numbers.
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
}

// Result is the outcome of a validation pass.
type Result struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// Content validates extracted text. It is pure: no side effects, and the
// issues list is deterministic for stable testing.
func Content(text string) Result {
	var issues []string

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		issues = append(issues, IssueEmpty)
	} else {
		if len(text) < minContentChars {
			issues = append(issues, IssueTooShort)
		}
		if len(text) > maxContentChars {
			issues = append(issues, IssueTooLong)
		}
	}

	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(text) {
			issues = append(issues, IssueSensitive)
			break
		}
	}

	return Result{Valid: len(issues) == 0, Issues: issues}
}

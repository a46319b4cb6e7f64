package validate

import (
	"strings"
	"testing"
)

const prose = "The committee reviewed the annual budget and approved the proposal without objection."

func TestContentValid(t *testing.T) {
	result := Content(prose)
	if !result.Valid {
		t.Fatalf("expected valid, got issues %v", result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("issues = %v, want none", result.Issues)
	}
}

func TestContentEmpty(t *testing.T) {
	for _, s := range []string{"", "   ", "\n\t"} {
		result := Content(s)
		if result.Valid {
			t.Fatalf("%q should be invalid", s)
		}
		if len(result.Issues) != 1 || result.Issues[0] != IssueEmpty {
			t.Fatalf("issues = %v, want [%s]", result.Issues, IssueEmpty)
		}
	}
}

func TestContentLengthBounds(t *testing.T) {
	result := Content("short text")
	if result.Valid || result.Issues[0] != IssueTooShort {
		t.Fatalf("issues = %v, want too-short", result.Issues)
	}

	result = Content(strings.Repeat("a", 50_001))
	if result.Valid || result.Issues[0] != IssueTooLong {
		t.Fatalf("issues = %v, want too-long", result.Issues)
	}
}

func TestContentSensitivePatterns(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"password keyword", prose + " My password is hunter2."},
		{"confidential keyword", prose + " This document is CONFIDENTIAL."},
		{"card number", prose + " Card: 4111-1111-1111-1111."},
		{"card number spaced", prose + " Card: 4111 1111 1111 1111."},
		{"ssn", prose + " SSN: 123-45-6789."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Content(tc.text)
			if result.Valid {
				t.Fatal("expected sensitive-content issue")
			}
			found := false
			for _, issue := range result.Issues {
				if issue == IssueSensitive {
					found = true
				}
			}
			if !found {
				t.Fatalf("issues = %v, want %s", result.Issues, IssueSensitive)
			}
		})
	}
}

func TestContentSensitiveReportedOnce(t *testing.T) {
	text := prose + " password secret 123-45-6789"
	result := Content(text)
	count := 0
	for _, issue := range result.Issues {
		if issue == IssueSensitive {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("sensitive issue reported %d times, want once", count)
	}
}

func TestContentIssueOrdering(t *testing.T) {
	// Short and sensitive together: length issues come before the
	// sensitive-content issue.
	result := Content("password: x")
	if len(result.Issues) != 2 {
		t.Fatalf("issues = %v, want two", result.Issues)
	}
	if result.Issues[0] != IssueTooShort || result.Issues[1] != IssueSensitive {
		t.Fatalf("issues = %v, want [too-short, sensitive]", result.Issues)
	}
}

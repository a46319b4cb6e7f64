package rewrite

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMessagesShape(t *testing.T) {
	msgs := Messages("A short document about gardening.")
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[1].Role != "user" {
		t.Fatalf("roles = %s/%s, want system/user", msgs[0].Role, msgs[1].Role)
	}
	if !strings.Contains(msgs[0].Content, "Whiskers") {
		t.Fatal("system prompt must carry the narrator persona")
	}
	if !strings.Contains(msgs[1].Content, "A short document about gardening.") {
		t.Fatal("user prompt must embed the source text")
	}
}

func TestTruncateForPrompt(t *testing.T) {
	short := "fits easily"
	if got := TruncateForPrompt(short); got != short {
		t.Fatalf("short text altered: %q", got)
	}

	long := strings.Repeat("y", contentBudget+100)
	got := TruncateForPrompt(long)
	if len(got) != contentBudget {
		t.Fatalf("len = %d, want %d", len(got), contentBudget)
	}

	// Truncation is silent: no marker text is appended to the prompt.
	msgs := Messages(long)
	if strings.Contains(msgs[1].Content, "truncated") {
		t.Fatal("prompt truncation must not announce itself")
	}
}

func TestTruncateForPromptRuneBoundary(t *testing.T) {
	// Two ASCII bytes followed by 3-byte runes put the budget mid-rune.
	text := "ab" + strings.Repeat("世", contentBudget)
	got := TruncateForPrompt(text)
	if len(got) > contentBudget {
		t.Fatalf("len = %d, want <= %d", len(got), contentBudget)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncated prompt text is not valid UTF-8")
	}
}

func TestEstimateProcessingTime(t *testing.T) {
	cases := []struct {
		name  string
		words int
		want  int
	}{
		{"empty clamps to floor", 0, 10},
		{"small clamps to floor", 100, 10},
		{"mid range", 2500, 50},
		{"huge clamps to ceiling", 50_000, 300},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := strings.TrimSpace(strings.Repeat("word ", tc.words))
			if got := EstimateProcessingTime(text); got != tc.want {
				t.Fatalf("EstimateProcessingTime(%d words) = %d, want %d", tc.words, got, tc.want)
			}
		})
	}
}

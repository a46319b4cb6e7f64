package rewrite

import (
	"strings"
	"unicode/utf8"
)

// contentBudget caps how much source text is sent to the completion call.
// Truncation here is silent and applies only to the outbound request, never
// to the stored original.
const contentBudget = 3000

// personaPrompt is the fixed system instruction for the cat narrator.
const personaPrompt = `You are Whiskers, a cheerful house cat who retells documents in your own words.
Speak in the first person, but say "Whiskers" instead of "I".
Use short, plain sentences a child could follow.
Stay upbeat and curious, and never use technical jargon.`

const instructionTemplate = `Retell the following document as a short story from your point of view.

Document:
%s`

// Message is one chat message in the outbound completion request.
type Message struct {
	Role    string
	Content string
}

// Messages builds the two-part prompt for the given source text, applying the
// content budget first.
func Messages(text string) []Message {
	return []Message{
		{Role: "system", Content: personaPrompt},
		{Role: "user", Content: userPrompt(text)},
	}
}

func userPrompt(text string) string {
	return strings.Replace(instructionTemplate, "%s", TruncateForPrompt(text), 1)
}

// TruncateForPrompt applies the content budget to source text. The cut never
// splits a multi-byte rune, so the result stays valid UTF-8.
func TruncateForPrompt(text string) string {
	if len(text) <= contentBudget {
		return text
	}
	cut := contentBudget
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

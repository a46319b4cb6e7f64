package rewrite

import "strings"

const (
	wordsPerSecond    = 50
	minEstimateSecond = 10
	maxEstimateSecond = 300
)

// EstimateProcessingTime returns a rough rewrite duration in seconds for UI
// and ops estimates. It is not used for timeout enforcement.
func EstimateProcessingTime(text string) int {
	words := len(strings.Fields(text))
	seconds := words / wordsPerSecond
	if seconds < minEstimateSecond {
		return minEstimateSecond
	}
	if seconds > maxEstimateSecond {
		return maxEstimateSecond
	}
	return seconds
}

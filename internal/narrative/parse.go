// internal/narrative/parse.go
package narrative

import (
	"strconv"
	"strings"
)

// parseResponse extracts the SCORE and REASONING fields out of a model
// response. Unparseable responses fall back to the neutral 50 so a malformed
// reply never sinks a company.
func parseResponse(raw string) (float64, string) {
	scoreIdx := strings.Index(raw, "SCORE:")
	reasoningIdx := strings.Index(raw, "REASONING:")

	if scoreIdx == -1 || reasoningIdx == -1 || reasoningIdx < scoreIdx {
		return 50, "Could not parse narrative response"
	}

	scoreText := strings.TrimSpace(raw[scoreIdx+len("SCORE:") : reasoningIdx])
	reasoningText := strings.TrimSpace(raw[reasoningIdx+len("REASONING:"):])
	if nl := strings.IndexByte(reasoningText, '\n'); nl != -1 {
		reasoningText = strings.TrimSpace(reasoningText[:nl])
	}

	score, err := strconv.ParseFloat(scoreText, 64)
	if err != nil {
		score = 50
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if reasoningText == "" {
		reasoningText = "Narrative analysis completed"
	}
	return score, reasoningText
}

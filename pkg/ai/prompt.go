package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const placeholderSummary = "Summary generation in progress"

// summaryPrompt builds the instruction sent to chat-completion providers
func summaryPrompt(transcript string, maxLength int) string {
	return fmt.Sprintf(`Analyze this meeting transcript and provide:
1. A concise summary (max %d words)
2. Action items mentioned in the meeting
3. Key topics/keywords discussed

Respond only with JSON in this exact format:
{"summary": "...", "action_items": ["..."], "keywords": ["..."]}

Transcript:
%s`, maxLength, transcript)
}

// parseSummaryContent decodes the assistant content into a SummaryResult.
// Content that is not valid JSON yields a placeholder result rather than
// an error, so a reachable provider never causes a fallthrough.
func parseSummaryContent(content string) *SummaryResult {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result SummaryResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return &SummaryResult{
			Summary:     placeholderSummary,
			ActionItems: []string{},
			Keywords:    []string{},
		}
	}
	if result.ActionItems == nil {
		result.ActionItems = []string{}
	}
	if result.Keywords == nil {
		result.Keywords = []string{}
	}
	return &result
}

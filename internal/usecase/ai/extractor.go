package ai

import (
	"sort"
	"strings"

	pkgai "github.com/fahmidhamim/echobrief/pkg/ai"
)

// actionWords mark sentences likely to contain commitments
var actionWords = []string{"will", "should", "need to", "going to", "plan to", "decided to"}

// commonWords are excluded from keyword extraction
var commonWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "can": {}, "must": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
}

// ExtractiveSummary produces a summary without any external provider.
// It is deterministic: the same text and maxLength always yield the
// same result.
func ExtractiveSummary(text string, maxLength int) *pkgai.SummaryResult {
	words := strings.Fields(text)

	summary := text
	if len(words) > maxLength {
		summary = strings.Join(words[:maxLength], " ") + "..."
	}

	return &pkgai.SummaryResult{
		Summary:     summary,
		ActionItems: extractActionItems(text),
		Keywords:    extractKeywords(words),
	}
}

// extractActionItems returns up to five sentences containing action words
func extractActionItems(text string) []string {
	items := []string{}
	for _, sentence := range splitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 10 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, w := range actionWords {
			if strings.Contains(lower, w) {
				items = append(items, sentence)
				break
			}
		}
		if len(items) == 5 {
			break
		}
	}
	return items
}

// extractKeywords returns the ten most frequent non-trivial words
func extractKeywords(words []string) []string {
	counts := map[string]int{}
	order := []string{}
	for _, w := range words {
		lower := strings.ToLower(w)
		if _, skip := commonWords[lower]; skip || len(w) <= 3 {
			continue
		}
		key := strings.Trim(lower, ".,!?")
		if key == "" {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	// Frequency descending, first occurrence breaking ties.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 10 {
		order = order[:10]
	}
	return order
}

// splitSentences splits text on sentence terminators
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// WordCount counts whitespace-delimited words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

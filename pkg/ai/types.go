package ai

import "context"

// SummaryResult is the structured output of a summarization provider
type SummaryResult struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
	Keywords    []string `json:"keywords"`
}

// SummaryProvider generates a structured summary from transcript text
type SummaryProvider interface {
	Name() string
	Summarize(ctx context.Context, transcript string, maxLength int) (*SummaryResult, error)
}

// Segment is a single timed span of recognized speech
type Segment struct {
	Start      float64
	End        float64
	Text       string
	Speaker    string
	Confidence float64
}

// TranscriptionResult holds the output of a transcription backend
type TranscriptionResult struct {
	Text     string
	Segments []Segment
	Duration float64
}

package ai

import (
	"time"

	"github.com/google/uuid"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
)

// SummarizeRequest is the payload for on-demand summarization
type SummarizeRequest struct {
	MeetingID      uuid.UUID `json:"meeting_id" validate:"required"`
	TranscriptText string    `json:"transcript_text,omitempty"`
	MaxLength      int       `json:"max_length" validate:"omitempty,min=100,max=2000"`
}

// SummaryResponse is the public view of a stored summary
type SummaryResponse struct {
	ID              uuid.UUID `json:"id"`
	MeetingID       uuid.UUID `json:"meeting_id"`
	SummaryText     string    `json:"summary_text"`
	ActionItems     []string  `json:"action_items"`
	Keywords        []string  `json:"keywords"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	WordCount       *int      `json:"word_count,omitempty"`
	GeneratedAt     time.Time `json:"generated_at"`
	Provider        string    `json:"provider,omitempty"`
}

// UploadResponse reports the result of an audio upload
type UploadResponse struct {
	Status         string `json:"status"`
	FilePath       string `json:"file_path"`
	FileSize       int64  `json:"file_size"`
	Filename       string `json:"filename"`
	TranscriptText string `json:"transcript_text"`
	SegmentsSaved  int    `json:"segments_saved"`
}

// ToSummaryResponse converts a summary entity to its public view
func ToSummaryResponse(s *entities.Summary, provider string) *SummaryResponse {
	return &SummaryResponse{
		ID:              s.ID,
		MeetingID:       s.MeetingID,
		SummaryText:     s.SummaryText,
		ActionItems:     s.ActionItems,
		Keywords:        s.Keywords,
		DurationSeconds: s.DurationSeconds,
		WordCount:       s.WordCount,
		GeneratedAt:     s.GeneratedAt,
		Provider:        provider,
	}
}

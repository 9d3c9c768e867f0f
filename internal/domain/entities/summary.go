package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Summary is the single generated digest for a meeting. meeting_id carries
// a unique constraint; re-summarization updates the row in place.
type Summary struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID       uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex" json:"meeting_id"`
	Meeting         *Meeting                    `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	SummaryText     string                      `gorm:"type:text;not null" json:"summary_text"`
	ActionItems     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"action_items"`
	Keywords        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"keywords"`
	DurationSeconds *int                        `json:"duration_seconds,omitempty"`
	WordCount       *int                        `json:"word_count,omitempty"`
	GeneratedAt     time.Time                   `gorm:"not null" json:"generated_at"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for Summary
func (Summary) TableName() string {
	return "summaries"
}

// NewSummary creates a summary generated now
func NewSummary(meetingID uuid.UUID, text string, actionItems, keywords []string) *Summary {
	return &Summary{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		SummaryText: text,
		ActionItems: datatypes.NewJSONSlice(actionItems),
		Keywords:    datatypes.NewJSONSlice(keywords),
		GeneratedAt: time.Now(),
	}
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSpeakerName is used when the transcription provider gives no label
const DefaultSpeakerName = "Speaker"

// Transcript is one timed utterance of recorded speech in a meeting.
// Rows are append-only and retrieved in creation order.
type Transcript struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID        uuid.UUID    `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Meeting          *Meeting     `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	ParticipantID    *uuid.UUID   `gorm:"type:uuid;index" json:"participant_id,omitempty"`
	Participant      *Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:SET NULL" json:"participant,omitempty"`
	SpeakerName      string       `gorm:"type:varchar(255)" json:"speaker_name"`
	TranscriptText   string       `gorm:"type:text;not null" json:"transcript_text"`
	TimestampSeconds int          `json:"timestamp_seconds"`
	Confidence       float64      `gorm:"default:0" json:"confidence"`
	CreatedAt        time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for Transcript
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a transcript segment for a meeting
func NewTranscript(meetingID uuid.UUID, speakerName, text string, timestampSeconds int) *Transcript {
	if speakerName == "" {
		speakerName = DefaultSpeakerName
	}
	return &Transcript{
		ID:               uuid.New(),
		MeetingID:        meetingID,
		SpeakerName:      speakerName,
		TranscriptText:   text,
		TimestampSeconds: timestampSeconds,
	}
}

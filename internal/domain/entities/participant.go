package entities

import (
	"time"

	"github.com/google/uuid"
)

// Participant is one span of a user's presence in a meeting. A user who
// leaves and rejoins gets a new row; at most one row per (meeting, user)
// may be active (left_at IS NULL) at a time.
type Participant struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Meeting         *Meeting   `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinedAt        time.Time  `gorm:"not null" json:"joined_at"`
	LeftAt          *time.Time `json:"left_at,omitempty"`
	DurationSeconds int        `gorm:"default:0" json:"duration_seconds"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Participant
func (Participant) TableName() string {
	return "participants"
}

// NewParticipant creates an active participant joined now
func NewParticipant(meetingID, userID uuid.UUID) *Participant {
	return &Participant{
		ID:        uuid.New(),
		MeetingID: meetingID,
		UserID:    userID,
		JoinedAt:  time.Now(),
	}
}

// IsActive checks whether this presence span is still open
func (p *Participant) IsActive() bool {
	return p.LeftAt == nil
}

// LeaveAt closes the span at the given instant and derives the duration in
// whole seconds, truncated toward zero.
func (p *Participant) LeaveAt(t time.Time) {
	p.LeftAt = &t
	p.DurationSeconds = int(t.Sub(p.JoinedAt).Seconds())
	if p.DurationSeconds < 0 {
		p.DurationSeconds = 0
	}
}

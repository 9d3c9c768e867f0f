package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the current lifecycle status of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusInProgress MeetingStatus = "in_progress"
	MeetingStatusCompleted  MeetingStatus = "completed"
)

// DefaultMaxParticipants is applied when a create request omits the bound
const DefaultMaxParticipants = 20

// Meeting is the aggregate root: participants, transcripts, the summary and
// audio files are owned by it and removed with it.
type Meeting struct {
	ID              uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	HostID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"host_id"`
	Host            *User         `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Title           string        `gorm:"type:varchar(255);not null" json:"title"`
	Description     *string       `gorm:"type:text" json:"description,omitempty"`
	Status          MeetingStatus `gorm:"type:varchar(50);not null;default:'scheduled';index" json:"status"`
	MaxParticipants int           `gorm:"default:20;check:max_participants >= 2 AND max_participants <= 20" json:"max_participants"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	EndedAt         *time.Time    `json:"ended_at,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	Participants []Participant `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"participants,omitempty"`
	Transcripts  []Transcript  `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"transcripts,omitempty"`
	Summary      *Summary      `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"summary,omitempty"`
	AudioFiles   []AudioFile   `gorm:"foreignKey:MeetingID;constraint:OnDelete:CASCADE" json:"audio_files,omitempty"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a scheduled meeting for the host
func NewMeeting(hostID uuid.UUID, title string, description *string, maxParticipants int) *Meeting {
	if maxParticipants == 0 {
		maxParticipants = DefaultMaxParticipants
	}
	return &Meeting{
		ID:              uuid.New(),
		HostID:          hostID,
		Title:           title,
		Description:     description,
		Status:          MeetingStatusScheduled,
		MaxParticipants: maxParticipants,
	}
}

// IsCompleted checks if the meeting has ended
func (m *Meeting) IsCompleted() bool {
	return m.Status == MeetingStatusCompleted
}

// Start marks the meeting as in progress
func (m *Meeting) Start() {
	now := time.Now()
	m.Status = MeetingStatusInProgress
	m.StartedAt = &now
}

// End marks the meeting as completed. ended_at is set together with the
// status so the completed/ended_at invariant holds.
func (m *Meeting) End() {
	now := time.Now()
	m.Status = MeetingStatusCompleted
	m.EndedAt = &now
}

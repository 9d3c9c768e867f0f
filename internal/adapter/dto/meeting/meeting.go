package meeting

import (
	"time"

	"github.com/google/uuid"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
)

// CreateMeetingRequest is the payload for meeting creation
type CreateMeetingRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=255"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	MaxParticipants int     `json:"max_participants" validate:"omitempty,min=2,max=20"`
}

// AddTranscriptRequest is the payload for appending a transcript segment
type AddTranscriptRequest struct {
	SpeakerName      string `json:"speaker_name" validate:"omitempty,max=255"`
	Text             string `json:"text" validate:"required"`
	TimestampSeconds int    `json:"timestamp_seconds" validate:"omitempty,min=0"`
}

// MeetingResponse is the public view of a meeting
type MeetingResponse struct {
	ID              uuid.UUID  `json:"id"`
	HostID          uuid.UUID  `json:"host_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Status          string     `json:"status"`
	MaxParticipants int        `json:"max_participants"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ParticipantResponse is the public view of a participation span
type ParticipantResponse struct {
	ID              uuid.UUID  `json:"id"`
	MeetingID       uuid.UUID  `json:"meeting_id"`
	UserID          uuid.UUID  `json:"user_id"`
	UserName        string     `json:"user_name,omitempty"`
	JoinedAt        time.Time  `json:"joined_at"`
	LeftAt          *time.Time `json:"left_at,omitempty"`
	DurationSeconds int        `json:"duration_seconds"`
}

// TranscriptResponse is the public view of a transcript segment
type TranscriptResponse struct {
	ID               uuid.UUID `json:"id"`
	MeetingID        uuid.UUID `json:"meeting_id"`
	SpeakerName      string    `json:"speaker_name"`
	TranscriptText   string    `json:"transcript_text"`
	TimestampSeconds int       `json:"timestamp_seconds"`
	Confidence       float64   `json:"confidence"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToMeetingResponse converts a meeting entity to its public view
func ToMeetingResponse(m *entities.Meeting) *MeetingResponse {
	return &MeetingResponse{
		ID:              m.ID,
		HostID:          m.HostID,
		Title:           m.Title,
		Description:     m.Description,
		Status:          string(m.Status),
		MaxParticipants: m.MaxParticipants,
		StartedAt:       m.StartedAt,
		EndedAt:         m.EndedAt,
		CreatedAt:       m.CreatedAt,
	}
}

// ToMeetingResponses converts a list of meeting entities
func ToMeetingResponses(meetings []*entities.Meeting) []*MeetingResponse {
	out := make([]*MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}

// ToParticipantResponse converts a participant entity to its public view
func ToParticipantResponse(p *entities.Participant) *ParticipantResponse {
	resp := &ParticipantResponse{
		ID:              p.ID,
		MeetingID:       p.MeetingID,
		UserID:          p.UserID,
		JoinedAt:        p.JoinedAt,
		LeftAt:          p.LeftAt,
		DurationSeconds: p.DurationSeconds,
	}
	if p.User != nil {
		resp.UserName = p.User.Name
	}
	return resp
}

// ToParticipantResponses converts a list of participant entities
func ToParticipantResponses(participants []*entities.Participant) []*ParticipantResponse {
	out := make([]*ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		out = append(out, ToParticipantResponse(p))
	}
	return out
}

// ToTranscriptResponse converts a transcript entity to its public view
func ToTranscriptResponse(t *entities.Transcript) *TranscriptResponse {
	return &TranscriptResponse{
		ID:               t.ID,
		MeetingID:        t.MeetingID,
		SpeakerName:      t.SpeakerName,
		TranscriptText:   t.TranscriptText,
		TimestampSeconds: t.TimestampSeconds,
		Confidence:       t.Confidence,
		CreatedAt:        t.CreatedAt,
	}
}

// ToTranscriptResponses converts a list of transcript entities
func ToTranscriptResponses(transcripts []*entities.Transcript) []*TranscriptResponse {
	out := make([]*TranscriptResponse, 0, len(transcripts))
	for _, t := range transcripts {
		out = append(out, ToTranscriptResponse(t))
	}
	return out
}

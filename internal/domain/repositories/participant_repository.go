package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
)

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// Create creates a new participant record
	Create(ctx context.Context, participant *entities.Participant) error

	// Update persists changes to an existing participant
	Update(ctx context.Context, participant *entities.Participant) error

	// FindByMeetingID retrieves all participant rows for a meeting,
	// oldest join first
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error)

	// FindActiveByMeetingID retrieves the open presence spans of a meeting
	FindActiveByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error)

	// FindActiveByMeetingAndUser retrieves the open span for a
	// (meeting, user) pair, if any
	FindActiveByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Participant, error)

	// CountActiveByMeetingID counts open presence spans for a meeting
	CountActiveByMeetingID(ctx context.Context, meetingID uuid.UUID) (int64, error)

	// CloseAllActive stamps left_at on every open span of a meeting with the
	// single timestamp `at` and derives duration_seconds for each row.
	CloseAllActive(ctx context.Context, meetingID uuid.UUID, at time.Time) error

	// Count returns the total number of participant rows
	Count(ctx context.Context) (int64, error)
}

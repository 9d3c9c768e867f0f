package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
)

// SummaryRepository defines the interface for summary data access
type SummaryRepository interface {
	// Upsert writes the summary for its meeting: an existing row for the
	// same meeting_id is overwritten in place, otherwise a row is inserted.
	// The write is atomic against the unique meeting_id constraint.
	Upsert(ctx context.Context, summary *entities.Summary) error

	// FindByMeetingID retrieves the summary of a meeting, or nil when the
	// meeting has none
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Summary, error)

	// Count returns the total number of summaries
	Count(ctx context.Context) (int64, error)
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByIDForUpdate retrieves a meeting holding a row lock until the
	// surrounding transaction commits. Only meaningful inside Atomic.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByHostID retrieves meetings hosted by a user, newest first
	FindByHostID(ctx context.Context, hostID uuid.UUID, limit int) ([]*entities.Meeting, error)

	// List retrieves meetings with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error)

	// Update persists changes to an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete removes a meeting; owned rows cascade at the database level
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of meetings
	Count(ctx context.Context) (int64, error)

	// CountByStatus returns the number of meetings in the given status
	CountByStatus(ctx context.Context, status entities.MeetingStatus) (int64, error)
}

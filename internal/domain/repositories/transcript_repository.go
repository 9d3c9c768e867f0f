package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
)

// TranscriptRepository defines the interface for transcript data access
type TranscriptRepository interface {
	// Create appends one transcript segment
	Create(ctx context.Context, transcript *entities.Transcript) error

	// CreateBatch appends transcript segments preserving order
	CreateBatch(ctx context.Context, transcripts []*entities.Transcript) error

	// FindByMeetingID retrieves a meeting's transcript rows in creation
	// order, oldest first
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Transcript, error)
}

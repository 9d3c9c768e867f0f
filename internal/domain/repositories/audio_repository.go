package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
)

// AudioFileRepository defines the interface for audio file metadata access
type AudioFileRepository interface {
	// Create records an uploaded audio file
	Create(ctx context.Context, audioFile *entities.AudioFile) error

	// FindByMeetingID retrieves the audio files of a meeting, newest first
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.AudioFile, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
)

// audioRepository implements the AudioFileRepository interface
type audioRepository struct {
	db *gorm.DB
}

// NewAudioRepository creates a new audio file repository
func NewAudioRepository(db *gorm.DB) repositories.AudioFileRepository {
	return &audioRepository{db: db}
}

// Create records an uploaded audio file
func (r *audioRepository) Create(ctx context.Context, audio *entities.AudioFile) error {
	return r.db.WithContext(ctx).Create(audio).Error
}

// FindByMeetingID retrieves a meeting's audio files, newest first
func (r *audioRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.AudioFile, error) {
	var files []*entities.AudioFile
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

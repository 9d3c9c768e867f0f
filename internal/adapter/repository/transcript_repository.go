package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
)

// transcriptRepository implements the TranscriptRepository interface
type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) repositories.TranscriptRepository {
	return &transcriptRepository{db: db}
}

// Create creates a new transcript segment
func (r *transcriptRepository) Create(ctx context.Context, transcript *entities.Transcript) error {
	return r.db.WithContext(ctx).Create(transcript).Error
}

// CreateBatch creates multiple transcript segments in one statement
func (r *transcriptRepository) CreateBatch(ctx context.Context, transcripts []*entities.Transcript) error {
	if len(transcripts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&transcripts).Error
}

// FindByMeetingID retrieves a meeting's transcript segments in creation order
func (r *transcriptRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Transcript, error) {
	var transcripts []*entities.Transcript
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&transcripts).Error
	return transcripts, err
}

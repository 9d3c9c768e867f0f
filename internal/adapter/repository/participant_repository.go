package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
)

// participantRepository implements the ParticipantRepository interface
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) repositories.ParticipantRepository {
	return &participantRepository{db: db}
}

// Create creates a new participation record
func (r *participantRepository) Create(ctx context.Context, participant *entities.Participant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

// Update updates an existing participation record
func (r *participantRepository) Update(ctx context.Context, participant *entities.Participant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}

// FindByMeetingID retrieves all participation records for a meeting
func (r *participantRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error) {
	var participants []*entities.Participant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ?", meetingID).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}

// FindActiveByMeetingID retrieves participants currently in a meeting
func (r *participantRepository) FindActiveByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error) {
	var participants []*entities.Participant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ? AND left_at IS NULL", meetingID).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}

// FindActiveByMeetingAndUser retrieves a user's open participation span, if any
func (r *participantRepository) FindActiveByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Participant, error) {
	var participant entities.Participant
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND user_id = ? AND left_at IS NULL", meetingID, userID).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// CountActiveByMeetingID counts participants currently in a meeting
func (r *participantRepository) CountActiveByMeetingID(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Participant{}).
		Where("meeting_id = ? AND left_at IS NULL", meetingID).
		Count(&count).Error
	return count, err
}

// CloseAllActive closes every open participation span of a meeting at the
// same instant, deriving each duration from the span's own join time.
func (r *participantRepository) CloseAllActive(ctx context.Context, meetingID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Participant{}).
		Where("meeting_id = ? AND left_at IS NULL", meetingID).
		Updates(map[string]interface{}{
			"left_at":          at,
			"duration_seconds": gorm.Expr("GREATEST(FLOOR(EXTRACT(EPOCH FROM (?::timestamptz - joined_at))), 0)", at),
		}).
		Error
}

// Count returns the total number of participation records
func (r *participantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Participant{}).
		Count(&count).Error
	return count, err
}

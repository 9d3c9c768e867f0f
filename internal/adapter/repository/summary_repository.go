package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
)

// summaryRepository implements the SummaryRepository interface
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) repositories.SummaryRepository {
	return &summaryRepository{db: db}
}

// Upsert writes the summary, replacing any previous one for the same
// meeting. The unique index on meeting_id makes concurrent writers
// converge on a single row.
func (r *summaryRepository) Upsert(ctx context.Context, summary *entities.Summary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "meeting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"summary_text",
				"action_items",
				"keywords",
				"duration_seconds",
				"word_count",
				"generated_at",
			}),
		}).
		Create(summary).Error
}

// FindByMeetingID retrieves a meeting's summary, nil when none exists
func (r *summaryRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Summary, error) {
	var summary entities.Summary
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&summary).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// Count returns the total number of summaries
func (r *summaryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Summary{}).
		Count(&count).Error
	return count, err
}

package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
	usecaseErrors "github.com/fahmidhamim/echobrief/internal/usecase/errors"
)

// Metrics are system-wide aggregate counts
type Metrics struct {
	TotalUsers        int64 `json:"total_users"`
	TotalMeetings     int64 `json:"total_meetings"`
	CompletedMeetings int64 `json:"completed_meetings"`
	ActiveMeetings    int64 `json:"active_meetings"`
	TotalParticipants int64 `json:"total_participants"`
	TotalSummaries    int64 `json:"total_summaries"`
}

// Service exposes admin-only aggregate views
type Service struct {
	registry repositories.Registry
	logger   *zap.Logger
}

// NewService creates a new admin service
func NewService(registry repositories.Registry, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		logger:   logger,
	}
}

// requireAdmin verifies the caller holds the admin role
func (s *Service) requireAdmin(ctx context.Context, callerID uuid.UUID) error {
	user, err := s.registry.Users().FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrAdminRequired
		}
		return err
	}
	if !user.IsAdmin {
		return usecaseErrors.ErrAdminRequired
	}
	return nil
}

// GetMetrics returns system-wide counts
func (s *Service) GetMetrics(ctx context.Context, callerID uuid.UUID) (*Metrics, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	totalUsers, err := s.registry.Users().Count(ctx)
	if err != nil {
		return nil, err
	}
	totalMeetings, err := s.registry.Meetings().Count(ctx)
	if err != nil {
		return nil, err
	}
	completedMeetings, err := s.registry.Meetings().CountByStatus(ctx, entities.MeetingStatusCompleted)
	if err != nil {
		return nil, err
	}
	totalParticipants, err := s.registry.Participants().Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSummaries, err := s.registry.Summaries().Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		TotalUsers:        totalUsers,
		TotalMeetings:     totalMeetings,
		CompletedMeetings: completedMeetings,
		ActiveMeetings:    totalMeetings - completedMeetings,
		TotalParticipants: totalParticipants,
		TotalSummaries:    totalSummaries,
	}, nil
}

// ListUsers returns users with pagination
func (s *Service) ListUsers(ctx context.Context, callerID uuid.UUID, limit, offset int) ([]*entities.User, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.registry.Users().List(ctx, limit, offset)
}

// ListMeetings returns meetings with pagination
func (s *Service) ListMeetings(ctx context.Context, callerID uuid.UUID, limit, offset int) ([]*entities.Meeting, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.registry.Meetings().List(ctx, limit, offset)
}

package meeting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
	usecaseErrors "github.com/fahmidhamim/echobrief/internal/usecase/errors"
)

// Service manages the meeting lifecycle
type Service struct {
	registry repositories.Registry
	logger   *zap.Logger
}

// NewService creates a new meeting service
func NewService(registry repositories.Registry, logger *zap.Logger) *Service {
	return &Service{
		registry: registry,
		logger:   logger,
	}
}

// Create creates a new meeting in scheduled state
func (s *Service) Create(ctx context.Context, hostID uuid.UUID, title string, description *string, maxParticipants int) (*entities.Meeting, error) {
	if strings.TrimSpace(title) == "" {
		return nil, usecaseErrors.ErrInvalidTitle
	}
	if maxParticipants == 0 {
		maxParticipants = entities.DefaultMaxParticipants
	}
	if maxParticipants < 2 || maxParticipants > 20 {
		return nil, usecaseErrors.ErrInvalidMaxParticipants
	}

	meeting := entities.NewMeeting(hostID, title, description, maxParticipants)
	if err := s.registry.Meetings().Create(ctx, meeting); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Meeting created",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("host_id", hostID.String()),
		)
	}
	return meeting, nil
}

// Get retrieves a meeting by ID
func (s *Service) Get(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.registry.Meetings().FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, err
	}
	return meeting, nil
}

// ListByHost retrieves meetings hosted by a user, newest first
func (s *Service) ListByHost(ctx context.Context, hostID uuid.UUID, limit int) ([]*entities.Meeting, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.registry.Meetings().FindByHostID(ctx, hostID, limit)
}

// List retrieves meetings with pagination, newest first
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.registry.Meetings().List(ctx, limit, offset)
}

// Join adds the user to the meeting. Joining while already active returns
// the existing participation row. The first join of a scheduled meeting
// moves it to in_progress.
func (s *Service) Join(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Participant, error) {
	var participant *entities.Participant

	err := s.registry.Atomic(ctx, func(tx repositories.Registry) error {
		meeting, err := tx.Meetings().FindByIDForUpdate(ctx, meetingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecaseErrors.ErrMeetingNotFound
			}
			return err
		}
		if meeting.IsCompleted() {
			return usecaseErrors.ErrMeetingEnded
		}

		// Capacity and duplicate checks both run against active spans
		// only; a user who left and rejoined counts once.
		activeCount, err := tx.Participants().CountActiveByMeetingID(ctx, meetingID)
		if err != nil {
			return err
		}
		if activeCount >= int64(meeting.MaxParticipants) {
			return usecaseErrors.ErrMeetingFull
		}

		existing, err := tx.Participants().FindActiveByMeetingAndUser(ctx, meetingID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			participant = existing
			return nil
		}

		if meeting.Status == entities.MeetingStatusScheduled {
			meeting.Start()
			if err := tx.Meetings().Update(ctx, meeting); err != nil {
				return err
			}
		}

		participant = entities.NewParticipant(meetingID, userID)
		return tx.Participants().Create(ctx, participant)
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("User joined meeting",
			zap.String("meeting_id", meetingID.String()),
			zap.String("user_id", userID.String()),
		)
	}
	return participant, nil
}

// Leave closes the user's active participation span and records its
// duration in whole seconds, truncated.
func (s *Service) Leave(ctx context.Context, meetingID, userID uuid.UUID) (*entities.Participant, error) {
	var participant *entities.Participant

	err := s.registry.Atomic(ctx, func(tx repositories.Registry) error {
		existing, err := tx.Participants().FindActiveByMeetingAndUser(ctx, meetingID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecaseErrors.ErrParticipantNotFound
			}
			return err
		}

		existing.LeaveAt(time.Now())
		if err := tx.Participants().Update(ctx, existing); err != nil {
			return err
		}
		participant = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("User left meeting",
			zap.String("meeting_id", meetingID.String()),
			zap.String("user_id", userID.String()),
		)
	}
	return participant, nil
}

// End completes the meeting and force-closes every open participation
// span at the same instant. The status change and the batch close are
// one transaction.
func (s *Service) End(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error) {
	var meeting *entities.Meeting

	err := s.registry.Atomic(ctx, func(tx repositories.Registry) error {
		m, err := tx.Meetings().FindByIDForUpdate(ctx, meetingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecaseErrors.ErrMeetingNotFound
			}
			return err
		}
		if m.IsCompleted() {
			return usecaseErrors.ErrMeetingEnded
		}

		now := time.Now()
		if err := tx.Participants().CloseAllActive(ctx, meetingID, now); err != nil {
			return err
		}

		m.End()
		if err := tx.Meetings().Update(ctx, m); err != nil {
			return err
		}
		meeting = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("Meeting ended",
			zap.String("meeting_id", meetingID.String()),
		)
	}
	return meeting, nil
}

// Delete removes the meeting and everything owned by it
func (s *Service) Delete(ctx context.Context, meetingID uuid.UUID) error {
	if _, err := s.registry.Meetings().FindByID(ctx, meetingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrMeetingNotFound
		}
		return err
	}

	if err := s.registry.Meetings().Delete(ctx, meetingID); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("Meeting deleted",
			zap.String("meeting_id", meetingID.String()),
		)
	}
	return nil
}

// GetParticipants retrieves all participation records for a meeting
func (s *Service) GetParticipants(ctx context.Context, meetingID uuid.UUID) ([]*entities.Participant, error) {
	if _, err := s.Get(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.registry.Participants().FindByMeetingID(ctx, meetingID)
}

// AddTranscript appends a transcript segment to a meeting
func (s *Service) AddTranscript(ctx context.Context, meetingID uuid.UUID, speakerName, text string, timestampSeconds int) (*entities.Transcript, error) {
	if strings.TrimSpace(text) == "" {
		return nil, usecaseErrors.ErrEmptyTranscriptText
	}
	if _, err := s.Get(ctx, meetingID); err != nil {
		return nil, err
	}

	transcript := entities.NewTranscript(meetingID, speakerName, text, timestampSeconds)
	if err := s.registry.Transcripts().Create(ctx, transcript); err != nil {
		return nil, err
	}
	return transcript, nil
}

// GetTranscripts retrieves a meeting's transcript segments, oldest first
func (s *Service) GetTranscripts(ctx context.Context, meetingID uuid.UUID) ([]*entities.Transcript, error) {
	if _, err := s.Get(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.registry.Transcripts().FindByMeetingID(ctx, meetingID)
}

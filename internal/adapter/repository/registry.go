package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
)

// registry bundles all repositories over a single gorm handle so that
// Atomic can rebind every repository to one transaction.
type registry struct {
	db *gorm.DB

	users        repositories.UserRepository
	meetings     repositories.MeetingRepository
	participants repositories.ParticipantRepository
	transcripts  repositories.TranscriptRepository
	summaries    repositories.SummaryRepository
	audioFiles   repositories.AudioFileRepository
}

// NewRegistry creates a registry backed by the given database handle
func NewRegistry(db *gorm.DB) repositories.Registry {
	return &registry{
		db:           db,
		users:        NewUserRepository(db),
		meetings:     NewMeetingRepository(db),
		participants: NewParticipantRepository(db),
		transcripts:  NewTranscriptRepository(db),
		summaries:    NewSummaryRepository(db),
		audioFiles:   NewAudioRepository(db),
	}
}

func (r *registry) Users() repositories.UserRepository { return r.users }

func (r *registry) Meetings() repositories.MeetingRepository { return r.meetings }

func (r *registry) Participants() repositories.ParticipantRepository { return r.participants }

func (r *registry) Transcripts() repositories.TranscriptRepository { return r.transcripts }

func (r *registry) Summaries() repositories.SummaryRepository { return r.summaries }

func (r *registry) AudioFiles() repositories.AudioFileRepository { return r.audioFiles }

// Atomic runs fn inside a database transaction. The registry passed to fn
// is bound to that transaction; any error from fn rolls everything back.
func (r *registry) Atomic(ctx context.Context, fn func(tx repositories.Registry) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRegistry(tx))
	})
}

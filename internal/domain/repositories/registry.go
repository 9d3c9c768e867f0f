package repositories

import "context"

// Registry bundles the per-entity repositories of one persistence gateway.
//
// Atomic runs fn against a registry bound to a single database transaction.
// Meeting rows locked inside fn (FindByIDForUpdate) serialize concurrent
// join/end calls against the same meeting.
type Registry interface {
	Users() UserRepository
	Meetings() MeetingRepository
	Participants() ParticipantRepository
	Transcripts() TranscriptRepository
	Summaries() SummaryRepository
	AudioFiles() AudioFileRepository

	Atomic(ctx context.Context, fn func(tx Registry) error) error
}

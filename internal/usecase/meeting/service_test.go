package meeting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
	usecaseErrors "github.com/fahmidhamim/echobrief/internal/usecase/errors"
)

type fakeStore struct {
	mu           sync.Mutex
	meetings     map[uuid.UUID]*entities.Meeting
	participants []*entities.Participant
	transcripts  []*entities.Transcript
}

type fakeRegistry struct {
	store *fakeStore
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{store: &fakeStore{
		meetings: make(map[uuid.UUID]*entities.Meeting),
	}}
}

func (r *fakeRegistry) Users() repositories.UserRepository       { return nil }
func (r *fakeRegistry) Meetings() repositories.MeetingRepository { return &fakeMeetingRepo{r.store} }
func (r *fakeRegistry) Participants() repositories.ParticipantRepository {
	return &fakeParticipantRepo{r.store}
}
func (r *fakeRegistry) Transcripts() repositories.TranscriptRepository {
	return &fakeTranscriptRepo{r.store}
}
func (r *fakeRegistry) Summaries() repositories.SummaryRepository    { return nil }
func (r *fakeRegistry) AudioFiles() repositories.AudioFileRepository { return nil }

func (r *fakeRegistry) Atomic(_ context.Context, fn func(tx repositories.Registry) error) error {
	return fn(r)
}

type fakeMeetingRepo struct{ s *fakeStore }

func (f *fakeMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	m, ok := f.s.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMeetingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeMeetingRepo) FindByHostID(_ context.Context, hostID uuid.UUID, limit int) ([]*entities.Meeting, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entities.Meeting
	for _, m := range f.s.meetings {
		if m.HostID == hostID && len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) List(_ context.Context, limit, _ int) ([]*entities.Meeting, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entities.Meeting
	for _, m := range f.s.meetings {
		if len(out) < limit {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) Update(_ context.Context, m *entities.Meeting) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.meetings, id)
	return nil
}

func (f *fakeMeetingRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.s.meetings)), nil
}

func (f *fakeMeetingRepo) CountByStatus(_ context.Context, status entities.MeetingStatus) (int64, error) {
	var n int64
	for _, m := range f.s.meetings {
		if m.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeParticipantRepo struct{ s *fakeStore }

func (f *fakeParticipantRepo) Create(_ context.Context, p *entities.Participant) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.participants = append(f.s.participants, p)
	return nil
}

func (f *fakeParticipantRepo) Update(_ context.Context, p *entities.Participant) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i, existing := range f.s.participants {
		if existing.ID == p.ID {
			f.s.participants[i] = p
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeParticipantRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.Participant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entities.Participant
	for _, p := range f.s.participants {
		if p.MeetingID == meetingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) FindActiveByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.Participant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entities.Participant
	for _, p := range f.s.participants {
		if p.MeetingID == meetingID && p.IsActive() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) FindActiveByMeetingAndUser(_ context.Context, meetingID, userID uuid.UUID) (*entities.Participant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.participants {
		if p.MeetingID == meetingID && p.UserID == userID && p.IsActive() {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeParticipantRepo) CountActiveByMeetingID(_ context.Context, meetingID uuid.UUID) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, p := range f.s.participants {
		if p.MeetingID == meetingID && p.IsActive() {
			n++
		}
	}
	return n, nil
}

func (f *fakeParticipantRepo) CloseAllActive(_ context.Context, meetingID uuid.UUID, at time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.participants {
		if p.MeetingID == meetingID && p.IsActive() {
			p.LeaveAt(at)
		}
	}
	return nil
}

func (f *fakeParticipantRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.s.participants)), nil
}

type fakeTranscriptRepo struct{ s *fakeStore }

func (f *fakeTranscriptRepo) Create(_ context.Context, t *entities.Transcript) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.transcripts = append(f.s.transcripts, t)
	return nil
}

func (f *fakeTranscriptRepo) CreateBatch(_ context.Context, ts []*entities.Transcript) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.transcripts = append(f.s.transcripts, ts...)
	return nil
}

func (f *fakeTranscriptRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.Transcript, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entities.Transcript
	for _, t := range f.s.transcripts {
		if t.MeetingID == meetingID {
			out = append(out, t)
		}
	}
	return out, nil
}

func TestCreate(t *testing.T) {
	reg := newFakeRegistry()
	svc := NewService(reg, nil)
	hostID := uuid.New()

	meeting, err := svc.Create(context.Background(), hostID, "Weekly sync", nil, 0)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if meeting.Status != entities.MeetingStatusScheduled {
		t.Fatalf("expected scheduled status, got %s", meeting.Status)
	}
	if meeting.MaxParticipants != entities.DefaultMaxParticipants {
		t.Fatalf("expected default max participants, got %d", meeting.MaxParticipants)
	}
	if meeting.StartedAt != nil || meeting.EndedAt != nil {
		t.Fatalf("new meeting must have no start or end time")
	}
	if _, ok := reg.store.meetings[meeting.ID]; !ok {
		t.Fatalf("meeting was not persisted")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeRegistry(), nil)
	hostID := uuid.New()

	if _, err := svc.Create(context.Background(), hostID, "   ", nil, 10); !errors.Is(err, usecaseErrors.ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
	for _, bad := range []int{1, 21, -3} {
		if _, err := svc.Create(context.Background(), hostID, "Sync", nil, bad); !errors.Is(err, usecaseErrors.ErrInvalidMaxParticipants) {
			t.Fatalf("max %d: expected ErrInvalidMaxParticipants, got %v", bad, err)
		}
	}
}

func TestJoin_StartsScheduledMeeting(t *testing.T) {
	reg := newFakeRegistry()
	svc := NewService(reg, nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 5)
	userID := uuid.New()

	participant, err := svc.Join(context.Background(), meeting.ID, userID)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if !participant.IsActive() {
		t.Fatalf("expected active participant")
	}

	stored := reg.store.meetings[meeting.ID]
	if stored.Status != entities.MeetingStatusInProgress {
		t.Fatalf("expected in_progress after first join, got %s", stored.Status)
	}
	if stored.StartedAt == nil {
		t.Fatalf("started_at must be set when the meeting starts")
	}
}

func TestJoin_Idempotent(t *testing.T) {
	reg := newFakeRegistry()
	svc := NewService(reg, nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 5)
	userID := uuid.New()

	first, err := svc.Join(context.Background(), meeting.ID, userID)
	if err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	second, err := svc.Join(context.Background(), meeting.ID, userID)
	if err != nil {
		t.Fatalf("second join failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("joining twice must return the existing participation row")
	}
	if len(reg.store.participants) != 1 {
		t.Fatalf("expected 1 participant row, got %d", len(reg.store.participants))
	}
}

func TestJoin_MeetingFull(t *testing.T) {
	svc := NewService(newFakeRegistry(), nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 2)
	for i := 0; i < 2; i++ {
		if _, err := svc.Join(context.Background(), meeting.ID, uuid.New()); err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
	}

	if _, err := svc.Join(context.Background(), meeting.ID, uuid.New()); !errors.Is(err, usecaseErrors.ErrMeetingFull) {
		t.Fatalf("expected ErrMeetingFull, got %v", err)
	}
}

func TestJoin_RejoinAfterLeaveCountsOnce(t *testing.T) {
	reg := newFakeRegistry()
	svc := NewService(reg, nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 2)
	alice := uuid.New()
	bob := uuid.New()

	if _, err := svc.Join(context.Background(), meeting.ID, alice); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := svc.Leave(context.Background(), meeting.ID, alice); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	rejoined, err := svc.Join(context.Background(), meeting.ID, alice)
	if err != nil {
		t.Fatalf("rejoin failed: %v", err)
	}
	if !rejoined.IsActive() {
		t.Fatalf("rejoin must open a new active span")
	}

	// Alice holds one active span, so Bob still fits in a 2-seat meeting.
	if _, err := svc.Join(context.Background(), meeting.ID, bob); err != nil {
		t.Fatalf("expected room for second user, got %v", err)
	}

	// Two presence spans for Alice, one for Bob.
	if len(reg.store.participants) != 3 {
		t.Fatalf("expected 3 participant rows, got %d", len(reg.store.participants))
	}
}

func TestJoin_CompletedMeeting(t *testing.T) {
	svc := NewService(newFakeRegistry(), nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 5)
	if _, err := svc.Join(context.Background(), meeting.ID, uuid.New()); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := svc.End(context.Background(), meeting.ID); err != nil {
		t.Fatalf("end failed: %v", err)
	}

	if _, err := svc.Join(context.Background(), meeting.ID, uuid.New()); !errors.Is(err, usecaseErrors.ErrMeetingEnded) {
		t.Fatalf("expected ErrMeetingEnded, got %v", err)
	}
}

func TestJoin_MeetingNotFound(t *testing.T) {
	svc := NewService(newFakeRegistry(), nil)

	if _, err := svc.Join(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestLeave(t *testing.T) {
	svc := NewService(newFakeRegistry(), nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 5)
	userID := uuid.New()

	if _, err := svc.Join(context.Background(), meeting.ID, userID); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	left, err := svc.Leave(context.Background(), meeting.ID, userID)
	if err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if left.LeftAt == nil {
		t.Fatalf("left_at must be set")
	}
	if left.DurationSeconds < 0 {
		t.Fatalf("negative duration %d", left.DurationSeconds)
	}
}

func TestLeave_NotActive(t *testing.T) {
	svc := NewService(newFakeRegistry(), nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 5)
	if _, err := svc.Leave(context.Background(), meeting.ID, uuid.New()); !errors.Is(err, usecaseErrors.ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestLeaveAt_TruncatesDuration(t *testing.T) {
	joined := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &entities.Participant{ID: uuid.New(), JoinedAt: joined}

	p.LeaveAt(joined.Add(10*time.Second + 900*time.Millisecond))
	if p.DurationSeconds != 10 {
		t.Fatalf("expected truncation to 10 seconds, got %d", p.DurationSeconds)
	}

	p = &entities.Participant{ID: uuid.New(), JoinedAt: joined}
	p.LeaveAt(joined.Add(-time.Second))
	if p.DurationSeconds != 0 {
		t.Fatalf("expected clamped duration 0, got %d", p.DurationSeconds)
	}
}

func TestEnd(t *testing.T) {
	reg := newFakeRegistry()
	svc := NewService(reg, nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 5)
	for i := 0; i < 3; i++ {
		if _, err := svc.Join(context.Background(), meeting.ID, uuid.New()); err != nil {
			t.Fatalf("join %d failed: %v", i, err)
		}
	}

	ended, err := svc.End(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if ended.Status != entities.MeetingStatusCompleted {
		t.Fatalf("expected completed, got %s", ended.Status)
	}
	if ended.EndedAt == nil {
		t.Fatalf("ended_at must be set")
	}

	// Every span was force-closed at the same instant.
	var closedAt *time.Time
	for _, p := range reg.store.participants {
		if p.IsActive() {
			t.Fatalf("participant %s still active after end", p.ID)
		}
		if closedAt == nil {
			closedAt = p.LeftAt
		} else if !p.LeftAt.Equal(*closedAt) {
			t.Fatalf("spans closed at different instants")
		}
	}
}

func TestEnd_AlreadyCompleted(t *testing.T) {
	svc := NewService(newFakeRegistry(), nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 5)
	if _, err := svc.End(context.Background(), meeting.ID); err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if _, err := svc.End(context.Background(), meeting.ID); !errors.Is(err, usecaseErrors.ErrMeetingEnded) {
		t.Fatalf("expected ErrMeetingEnded, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(newFakeRegistry(), nil)

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestAddTranscript(t *testing.T) {
	reg := newFakeRegistry()
	svc := NewService(reg, nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 5)

	transcript, err := svc.AddTranscript(context.Background(), meeting.ID, "", "we shipped it", 30)
	if err != nil {
		t.Fatalf("add transcript failed: %v", err)
	}
	if transcript.SpeakerName != entities.DefaultSpeakerName {
		t.Fatalf("expected default speaker name, got %q", transcript.SpeakerName)
	}
	if transcript.TimestampSeconds != 30 {
		t.Fatalf("unexpected timestamp %d", transcript.TimestampSeconds)
	}
	if len(reg.store.transcripts) != 1 {
		t.Fatalf("transcript was not persisted")
	}
}

func TestAddTranscript_EmptyText(t *testing.T) {
	svc := NewService(newFakeRegistry(), nil)

	meeting, _ := svc.Create(context.Background(), uuid.New(), "Standup", nil, 5)
	if _, err := svc.AddTranscript(context.Background(), meeting.ID, "Alice", "   ", 0); !errors.Is(err, usecaseErrors.ErrEmptyTranscriptText) {
		t.Fatalf("expected ErrEmptyTranscriptText, got %v", err)
	}
}

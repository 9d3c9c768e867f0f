package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
	"github.com/fahmidhamim/echobrief/internal/infrastructure/cache"
	usecaseErrors "github.com/fahmidhamim/echobrief/internal/usecase/errors"
	pkgai "github.com/fahmidhamim/echobrief/pkg/ai"
)

type fakeStore struct {
	mu          sync.Mutex
	meetings    map[uuid.UUID]*entities.Meeting
	transcripts []*entities.Transcript
	summaries   map[uuid.UUID]*entities.Summary
	audioFiles  []*entities.AudioFile
	upserts     int
}

type fakeRegistry struct {
	store *fakeStore
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{store: &fakeStore{
		meetings:  make(map[uuid.UUID]*entities.Meeting),
		summaries: make(map[uuid.UUID]*entities.Summary),
	}}
}

func (r *fakeRegistry) Users() repositories.UserRepository               { return nil }
func (r *fakeRegistry) Meetings() repositories.MeetingRepository         { return &fakeMeetingRepo{r.store} }
func (r *fakeRegistry) Participants() repositories.ParticipantRepository { return nil }
func (r *fakeRegistry) Transcripts() repositories.TranscriptRepository {
	return &fakeTranscriptRepo{r.store}
}
func (r *fakeRegistry) Summaries() repositories.SummaryRepository { return &fakeSummaryRepo{r.store} }
func (r *fakeRegistry) AudioFiles() repositories.AudioFileRepository {
	return &fakeAudioFileRepo{r.store}
}

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

func (f *fakeMeetingRepo) FindByHostID(_ context.Context, _ uuid.UUID, _ int) ([]*entities.Meeting, error) {
	return nil, nil
}

func (f *fakeMeetingRepo) List(_ context.Context, _, _ int) ([]*entities.Meeting, error) {
	return nil, nil
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

type fakeSummaryRepo struct{ s *fakeStore }

func (f *fakeSummaryRepo) Upsert(_ context.Context, summary *entities.Summary) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.upserts++
	if existing, ok := f.s.summaries[summary.MeetingID]; ok {
		existing.SummaryText = summary.SummaryText
		existing.ActionItems = summary.ActionItems
		existing.Keywords = summary.Keywords
		existing.DurationSeconds = summary.DurationSeconds
		existing.WordCount = summary.WordCount
		existing.GeneratedAt = summary.GeneratedAt
		return nil
	}
	cp := *summary
	f.s.summaries[summary.MeetingID] = &cp
	return nil
}

func (f *fakeSummaryRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) (*entities.Summary, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.summaries[meetingID], nil
}

func (f *fakeSummaryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.s.summaries)), nil
}

type fakeAudioFileRepo struct{ s *fakeStore }

func (f *fakeAudioFileRepo) Create(_ context.Context, a *entities.AudioFile) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.audioFiles = append(f.s.audioFiles, a)
	return nil
}

func (f *fakeAudioFileRepo) FindByMeetingID(_ context.Context, meetingID uuid.UUID) ([]*entities.AudioFile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entities.AudioFile
	for _, a := range f.s.audioFiles {
		if a.MeetingID == meetingID {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubProvider struct {
	name   string
	result *pkgai.SummaryResult
	err    error
	calls  int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Summarize(_ context.Context, _ string, _ int) (*pkgai.SummaryResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func seedMeeting(reg *fakeRegistry) *entities.Meeting {
	m := entities.NewMeeting(uuid.New(), "Sprint planning", nil, 10)
	reg.store.meetings[m.ID] = m
	return m
}

func newTestService(reg *fakeRegistry, providers ...pkgai.SummaryProvider) *Service {
	return NewService(reg, nil, cache.NewMemoryLocker(), Options{
		Providers:         providers,
		GroqCompatVersion: "0.27.0",
	}, nil)
}

func TestSummarize_FirstProviderWins(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)

	first := &stubProvider{name: "openai", result: &pkgai.SummaryResult{
		Summary:     "Planned the next sprint.",
		ActionItems: []string{"Write the roadmap"},
		Keywords:    []string{"sprint"},
	}}
	second := &stubProvider{name: "groq", result: &pkgai.SummaryResult{Summary: "unused"}}

	svc := newTestService(reg, first, second)

	result, err := svc.Summarize(context.Background(), meeting.ID, "We planned the next sprint.", 0)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if result.Provider != "openai" {
		t.Fatalf("expected provider openai, got %s", result.Provider)
	}
	if result.Summary.SummaryText != "Planned the next sprint." {
		t.Fatalf("unexpected summary %q", result.Summary.SummaryText)
	}
	if second.calls != 0 {
		t.Fatalf("second provider should not be called, got %d calls", second.calls)
	}
	if reg.store.upserts != 1 {
		t.Fatalf("expected 1 upsert, got %d", reg.store.upserts)
	}
}

func TestSummarize_FallsThroughOnProviderError(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)

	first := &stubProvider{name: "openai", err: errors.New("rate limited")}
	second := &stubProvider{name: "groq", result: &pkgai.SummaryResult{
		Summary:     "Groq summary.",
		ActionItems: []string{},
		Keywords:    []string{},
	}}

	svc := newTestService(reg, first, second)

	result, err := svc.Summarize(context.Background(), meeting.ID, "Some transcript text here.", 0)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if result.Provider != "groq" {
		t.Fatalf("expected provider groq, got %s", result.Provider)
	}
	if first.calls != 1 {
		t.Fatalf("expected first provider to be tried once, got %d", first.calls)
	}
}

func TestSummarize_ExtractiveFallbackWhenAllFail(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)

	first := &stubProvider{name: "openai", err: errors.New("down")}
	second := &stubProvider{name: "groq", err: errors.New("also down")}

	svc := newTestService(reg, first, second)

	text := "We will review the budget tomorrow. The budget looks fine."
	result, err := svc.Summarize(context.Background(), meeting.ID, text, 0)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if result.Provider != "fallback" {
		t.Fatalf("expected fallback provider, got %s", result.Provider)
	}
	if result.Summary.SummaryText != text {
		t.Fatalf("expected extractive summary of the full text, got %q", result.Summary.SummaryText)
	}
	if len(result.Summary.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %v", result.Summary.ActionItems)
	}
	if reg.store.upserts != 1 {
		t.Fatalf("expected 1 upsert, got %d", reg.store.upserts)
	}
}

func TestSummarize_PlaceholderCountsAsSuccess(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)

	// A reachable provider whose content cannot be parsed yields the
	// placeholder result without error and must not fall through.
	first := &stubProvider{name: "openai", result: &pkgai.SummaryResult{
		Summary:     "Summary generation in progress",
		ActionItems: []string{},
		Keywords:    []string{},
	}}
	second := &stubProvider{name: "groq", result: &pkgai.SummaryResult{Summary: "unused"}}

	svc := newTestService(reg, first, second)

	result, err := svc.Summarize(context.Background(), meeting.ID, "Some transcript text here.", 0)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if result.Provider != "openai" {
		t.Fatalf("expected provider openai, got %s", result.Provider)
	}
	if result.Summary.SummaryText != "Summary generation in progress" {
		t.Fatalf("unexpected summary %q", result.Summary.SummaryText)
	}
	if second.calls != 0 {
		t.Fatalf("placeholder must not fall through, second provider got %d calls", second.calls)
	}
}

func TestSummarize_UsesStoredTranscripts(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)
	reg.store.transcripts = []*entities.Transcript{
		entities.NewTranscript(meeting.ID, "Alice", "We will ship the report", 0),
		entities.NewTranscript(meeting.ID, "Bob", "sounds good to me", 12),
	}

	svc := newTestService(reg)

	result, err := svc.Summarize(context.Background(), meeting.ID, "", 0)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	want := "We will ship the report sounds good to me"
	if result.Summary.SummaryText != want {
		t.Fatalf("expected joined transcript %q, got %q", want, result.Summary.SummaryText)
	}
	if result.Summary.WordCount == nil || *result.Summary.WordCount != 9 {
		t.Fatalf("unexpected word count %v", result.Summary.WordCount)
	}
}

func TestSummarize_NoTranscript(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)

	svc := newTestService(reg)

	if _, err := svc.Summarize(context.Background(), meeting.ID, "", 0); !errors.Is(err, usecaseErrors.ErrNoTranscript) {
		t.Fatalf("expected ErrNoTranscript, got %v", err)
	}
	if _, err := svc.Summarize(context.Background(), meeting.ID, "   ", 0); !errors.Is(err, usecaseErrors.ErrNoTranscript) {
		t.Fatalf("expected ErrNoTranscript for blank text, got %v", err)
	}
}

func TestSummarize_MeetingNotFound(t *testing.T) {
	svc := newTestService(newFakeRegistry())

	if _, err := svc.Summarize(context.Background(), uuid.New(), "text", 0); !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestSummarize_MaxLengthBounds(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)
	svc := newTestService(reg)

	for _, bad := range []int{50, 99, 2001, -1} {
		if _, err := svc.Summarize(context.Background(), meeting.ID, "text", bad); !errors.Is(err, usecaseErrors.ErrInvalidInput) {
			t.Fatalf("maxLength %d: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestSummarize_LockBusy(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)

	locker := cache.NewMemoryLocker()
	acquired, err := locker.TryLock(context.Background(), "summarize:"+meeting.ID.String(), time.Minute)
	if err != nil || !acquired {
		t.Fatalf("failed to pre-acquire lock: %v", err)
	}

	svc := NewService(reg, nil, locker, Options{}, nil)

	if _, err := svc.Summarize(context.Background(), meeting.ID, "text", 0); !errors.Is(err, usecaseErrors.ErrSummaryInProgress) {
		t.Fatalf("expected ErrSummaryInProgress, got %v", err)
	}
	if reg.store.upserts != 0 {
		t.Fatalf("no upsert expected while locked, got %d", reg.store.upserts)
	}
}

func TestSummarize_OverwritesExistingSummary(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)
	svc := newTestService(reg)

	if _, err := svc.Summarize(context.Background(), meeting.ID, "The first transcript version.", 0); err != nil {
		t.Fatalf("first summarize failed: %v", err)
	}
	firstID := reg.store.summaries[meeting.ID].ID

	if _, err := svc.Summarize(context.Background(), meeting.ID, "The second transcript version, now longer.", 0); err != nil {
		t.Fatalf("second summarize failed: %v", err)
	}

	if len(reg.store.summaries) != 1 {
		t.Fatalf("expected a single summary row, got %d", len(reg.store.summaries))
	}
	stored := reg.store.summaries[meeting.ID]
	if stored.ID != firstID {
		t.Fatalf("re-summarization must update in place, row was replaced")
	}
	if stored.SummaryText != "The second transcript version, now longer." {
		t.Fatalf("unexpected summary %q", stored.SummaryText)
	}
}

func TestSummarize_DurationFromMeetingTimes(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)
	started := time.Now().Add(-30 * time.Minute)
	ended := started.Add(45*time.Minute + 500*time.Millisecond)
	meeting.StartedAt = &started
	meeting.EndedAt = &ended
	meeting.Status = entities.MeetingStatusCompleted

	svc := newTestService(reg)

	result, err := svc.Summarize(context.Background(), meeting.ID, "Some transcript text.", 0)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if result.Summary.DurationSeconds == nil || *result.Summary.DurationSeconds != 45*60 {
		t.Fatalf("unexpected duration %v", result.Summary.DurationSeconds)
	}
}

func TestNewService_FiltersIncompatibleGroq(t *testing.T) {
	openai := &stubProvider{name: "openai"}
	groq := &stubProvider{name: "groq"}

	svc := NewService(newFakeRegistry(), nil, cache.NewMemoryLocker(), Options{
		Providers:         []pkgai.SummaryProvider{openai, groq},
		GroqCompatVersion: "0.28.0",
	}, nil)

	if len(svc.providers) != 1 {
		t.Fatalf("expected groq to be filtered, got %d providers", len(svc.providers))
	}
	if svc.providers[0].Name() != "openai" {
		t.Fatalf("unexpected provider %s", svc.providers[0].Name())
	}
}

func TestGetSummary_NotFound(t *testing.T) {
	svc := newTestService(newFakeRegistry())

	if _, err := svc.GetSummary(context.Background(), uuid.New()); !errors.Is(err, usecaseErrors.ErrSummaryNotFound) {
		t.Fatalf("expected ErrSummaryNotFound, got %v", err)
	}
}

type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	openErr error
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: make(map[string][]byte)}
}

func (s *memObjectStore) Save(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = b
	return "audio/" + objectName, nil
}

func (s *memObjectStore) Open(_ context.Context, objectName string) (io.ReadCloser, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.objects[objectName]
	if !ok {
		return nil, fmt.Errorf("object %s not found", objectName)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *memObjectStore) Delete(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}

type stubTranscriber struct {
	result *pkgai.TranscriptionResult
	err    error
	calls  int
}

func (tr *stubTranscriber) Name() string { return "stub" }

func (tr *stubTranscriber) Transcribe(_ context.Context, audio io.Reader, _ string) (*pkgai.TranscriptionResult, error) {
	tr.calls++
	io.Copy(io.Discard, audio)
	if tr.err != nil {
		return nil, tr.err
	}
	return tr.result, nil
}

func TestTranscribeAndStore(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)
	store := newMemObjectStore()

	transcriber := &stubTranscriber{result: &pkgai.TranscriptionResult{
		Text:     "hello there general remarks",
		Duration: 42.7,
		Segments: []pkgai.Segment{
			{Start: 0.2, End: 3.8, Text: "hello there", Speaker: "A", Confidence: 0.93},
			{Start: 4.0, End: 8.5, Text: "general remarks", Confidence: 0.88},
		},
	}}

	svc := NewService(reg, store, cache.NewMemoryLocker(), Options{Transcriber: transcriber}, nil)

	audio := strings.NewReader("fake-audio-bytes")
	result, err := svc.TranscribeAndStore(context.Background(), meeting.ID, "standup.mp3", "audio/mpeg", audio, 16)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if result.SegmentsSaved != 2 {
		t.Fatalf("expected 2 segments saved, got %d", result.SegmentsSaved)
	}
	if result.TranscriptText != "hello there general remarks" {
		t.Fatalf("unexpected transcript text %q", result.TranscriptText)
	}
	if result.AudioFile.DurationSeconds == nil || *result.AudioFile.DurationSeconds != 42 {
		t.Fatalf("unexpected audio duration %v", result.AudioFile.DurationSeconds)
	}

	objectName := fmt.Sprintf("%s_standup.mp3", meeting.ID)
	if _, ok := store.objects[objectName]; !ok {
		t.Fatalf("audio object was not stored")
	}

	if len(reg.store.audioFiles) != 1 {
		t.Fatalf("expected 1 audio file row, got %d", len(reg.store.audioFiles))
	}
	if len(reg.store.transcripts) != 2 {
		t.Fatalf("expected 2 transcript rows, got %d", len(reg.store.transcripts))
	}

	first := reg.store.transcripts[0]
	if first.SpeakerName != "A" || first.TimestampSeconds != 0 || first.Confidence != 0.93 {
		t.Fatalf("unexpected first transcript row: %+v", first)
	}
	second := reg.store.transcripts[1]
	if second.SpeakerName != entities.DefaultSpeakerName {
		t.Fatalf("expected default speaker name, got %q", second.SpeakerName)
	}
	if second.TimestampSeconds != 4 {
		t.Fatalf("expected timestamp 4, got %d", second.TimestampSeconds)
	}
}

func TestTranscribeAndStore_MeetingNotFound(t *testing.T) {
	svc := NewService(newFakeRegistry(), newMemObjectStore(), cache.NewMemoryLocker(), Options{
		Transcriber: &stubTranscriber{},
	}, nil)

	_, err := svc.TranscribeAndStore(context.Background(), uuid.New(), "a.mp3", "audio/mpeg", strings.NewReader("x"), 1)
	if !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestTranscribeAndStore_OpenFailureIsNotRetried(t *testing.T) {
	reg := newFakeRegistry()
	meeting := seedMeeting(reg)
	store := newMemObjectStore()
	store.openErr = errors.New("bucket unreachable")

	transcriber := &stubTranscriber{}
	svc := NewService(reg, store, cache.NewMemoryLocker(), Options{Transcriber: transcriber}, nil)

	_, err := svc.TranscribeAndStore(context.Background(), meeting.ID, "a.mp3", "audio/mpeg", strings.NewReader("x"), 1)
	if err == nil {
		t.Fatalf("expected error")
	}
	if transcriber.calls != 0 {
		t.Fatalf("transcriber must not run when the stored object cannot be opened")
	}
	if len(reg.store.transcripts) != 0 {
		t.Fatalf("no transcript rows expected on failure, got %d", len(reg.store.transcripts))
	}
}

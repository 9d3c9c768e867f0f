package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fahmidhamim/echobrief/internal/domain/entities"
	"github.com/fahmidhamim/echobrief/internal/domain/repositories"
	"github.com/fahmidhamim/echobrief/internal/infrastructure/cache"
	"github.com/fahmidhamim/echobrief/internal/infrastructure/storage"
	usecaseErrors "github.com/fahmidhamim/echobrief/internal/usecase/errors"
	pkgai "github.com/fahmidhamim/echobrief/pkg/ai"
)

const (
	// DefaultMaxLength is the summary word budget when the caller sends none
	DefaultMaxLength = 500

	// MinMaxLength and MaxMaxLength bound the caller-supplied word budget
	MinMaxLength = 100
	MaxMaxLength = 2000

	summarizeLockTTL = 2 * time.Minute
)

// Options configures the AI pipeline
type Options struct {
	Providers         []pkgai.SummaryProvider
	Transcriber       pkgai.Transcriber
	GroqCompatVersion string
	ProviderTimeout   time.Duration
	TranscribeTimeout time.Duration
	TranscribeRetries int
}

// Service orchestrates transcription and summarization
type Service struct {
	registry    repositories.Registry
	store       storage.Store
	locker      cache.Locker
	providers   []pkgai.SummaryProvider
	transcriber pkgai.Transcriber

	providerTimeout   time.Duration
	transcribeTimeout time.Duration
	transcribeRetries int

	logger *zap.Logger
}

// NewService creates the AI pipeline service. Providers are attempted in
// order; a Groq provider is dropped up front when the configured client
// version fails the compatibility gate.
func NewService(registry repositories.Registry, store storage.Store, locker cache.Locker, opts Options, logger *zap.Logger) *Service {
	providers := make([]pkgai.SummaryProvider, 0, len(opts.Providers))
	for _, p := range opts.Providers {
		if p.Name() == "groq" && !groqCompatSupported(opts.GroqCompatVersion) {
			if logger != nil {
				logger.Warn("Skipping Groq: incompatible client version",
					zap.String("version", opts.GroqCompatVersion),
				)
			}
			continue
		}
		providers = append(providers, p)
	}

	providerTimeout := opts.ProviderTimeout
	if providerTimeout == 0 {
		providerTimeout = 60 * time.Second
	}
	transcribeTimeout := opts.TranscribeTimeout
	if transcribeTimeout == 0 {
		transcribeTimeout = 5 * time.Minute
	}
	transcribeRetries := opts.TranscribeRetries
	if transcribeRetries == 0 {
		transcribeRetries = 3
	}

	return &Service{
		registry:          registry,
		store:             store,
		locker:            locker,
		providers:         providers,
		transcriber:       opts.Transcriber,
		providerTimeout:   providerTimeout,
		transcribeTimeout: transcribeTimeout,
		transcribeRetries: transcribeRetries,
		logger:            logger,
	}
}

// SummarizeResult reports the outcome of a summarization run
type SummarizeResult struct {
	Summary  *entities.Summary
	Provider string
}

// Summarize generates and persists a summary for the meeting. When
// transcriptText is empty the meeting's stored transcript rows are used.
// Provider failures never surface to the caller; the pipeline degrades
// to a local extractive summary.
func (s *Service) Summarize(ctx context.Context, meetingID uuid.UUID, transcriptText string, maxLength int) (*SummarizeResult, error) {
	if maxLength == 0 {
		maxLength = DefaultMaxLength
	}
	if maxLength < MinMaxLength || maxLength > MaxMaxLength {
		return nil, usecaseErrors.ErrInvalidInput
	}

	meeting, err := s.registry.Meetings().FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, err
	}

	if transcriptText == "" {
		transcripts, err := s.registry.Transcripts().FindByMeetingID(ctx, meetingID)
		if err != nil {
			return nil, err
		}
		parts := make([]string, 0, len(transcripts))
		for _, t := range transcripts {
			parts = append(parts, t.TranscriptText)
		}
		transcriptText = strings.Join(parts, " ")
	}
	if strings.TrimSpace(transcriptText) == "" {
		return nil, usecaseErrors.ErrNoTranscript
	}

	// One generation per meeting at a time. The unique index on
	// summaries.meeting_id is the backstop for anything that slips past.
	lockKey := "summarize:" + meetingID.String()
	acquired, err := s.locker.TryLock(ctx, lockKey, summarizeLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, usecaseErrors.ErrSummaryInProgress
	}
	defer s.locker.Unlock(ctx, lockKey)

	result, providerName := s.runChain(ctx, transcriptText, maxLength)

	wordCount := WordCount(transcriptText)
	summary := entities.NewSummary(meetingID, result.Summary, result.ActionItems, result.Keywords)
	summary.WordCount = &wordCount
	if meeting.StartedAt != nil && meeting.EndedAt != nil {
		duration := int(meeting.EndedAt.Sub(*meeting.StartedAt).Seconds())
		summary.DurationSeconds = &duration
	}

	if err := s.registry.Summaries().Upsert(ctx, summary); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("✅ Summary saved",
			zap.String("meeting_id", meetingID.String()),
			zap.String("provider", providerName),
			zap.Int("word_count", wordCount),
		)
	}

	return &SummarizeResult{Summary: summary, Provider: providerName}, nil
}

// runChain tries each provider in order and falls through to the local
// extractor, which cannot fail.
func (s *Service) runChain(ctx context.Context, transcriptText string, maxLength int) (*pkgai.SummaryResult, string) {
	for _, p := range s.providers {
		callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
		result, err := p.Summarize(callCtx, transcriptText, maxLength)
		cancel()

		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Summarization provider failed, trying next",
					zap.String("provider", p.Name()),
					zap.Error(err),
				)
			}
			continue
		}
		return result, p.Name()
	}

	if s.logger != nil {
		s.logger.Info("No provider succeeded, using extractive fallback")
	}
	return ExtractiveSummary(transcriptText, maxLength), "fallback"
}

// GetSummary retrieves a meeting's stored summary
func (s *Service) GetSummary(ctx context.Context, meetingID uuid.UUID) (*entities.Summary, error) {
	summary, err := s.registry.Summaries().FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, usecaseErrors.ErrSummaryNotFound
	}
	return summary, nil
}

// UploadResult reports the outcome of an audio upload
type UploadResult struct {
	AudioFile      *entities.AudioFile
	TranscriptText string
	SegmentsSaved  int
}

// TranscribeAndStore saves the uploaded audio, transcribes it, and
// persists one transcript row per recognized segment. Transcription has
// no fallback: when the backend fails, the upload fails.
func (s *Service) TranscribeAndStore(ctx context.Context, meetingID uuid.UUID, filename, contentType string, audio io.Reader, size int64) (*UploadResult, error) {
	if _, err := s.registry.Meetings().FindByID(ctx, meetingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, err
	}

	objectName := fmt.Sprintf("%s_%s", meetingID, filename)
	path, err := s.store.Save(ctx, objectName, audio, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store audio: %w", err)
	}

	var transcription *pkgai.TranscriptionResult
	transcribeFn := func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.transcribeTimeout)
		defer cancel()

		f, err := s.store.Open(callCtx, objectName)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer f.Close()

		transcription, err = s.transcriber.Transcribe(callCtx, f, filename)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	if err := backoff.Retry(transcribeFn, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(s.transcribeRetries)), ctx)); err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Transcription failed",
				zap.String("meeting_id", meetingID.String()),
				zap.String("backend", s.transcriber.Name()),
				zap.Error(err),
			)
		}
		return nil, err
	}

	audioFile := &entities.AudioFile{
		ID:        uuid.New(),
		MeetingID: meetingID,
		FilePath:  path,
		FileSize:  size,
		Format:    contentType,
	}
	if transcription.Duration > 0 {
		duration := int(transcription.Duration)
		audioFile.DurationSeconds = &duration
	}

	rows := make([]*entities.Transcript, 0, len(transcription.Segments))
	for _, seg := range transcription.Segments {
		t := entities.NewTranscript(meetingID, seg.Speaker, seg.Text, int(seg.Start))
		t.Confidence = seg.Confidence
		rows = append(rows, t)
	}

	err = s.registry.Atomic(ctx, func(tx repositories.Registry) error {
		if err := tx.AudioFiles().Create(ctx, audioFile); err != nil {
			return err
		}
		return tx.Transcripts().CreateBatch(ctx, rows)
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("✅ Audio transcribed",
			zap.String("meeting_id", meetingID.String()),
			zap.String("backend", s.transcriber.Name()),
			zap.Int("segments", len(rows)),
		)
	}

	return &UploadResult{
		AudioFile:      audioFile,
		TranscriptText: transcription.Text,
		SegmentsSaved:  len(rows),
	}, nil
}

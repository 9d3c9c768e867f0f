package ai

import (
	"context"
	"fmt"
	"io"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// AssemblyAIClient transcribes audio through the AssemblyAI SDK
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI transcription client
func NewAssemblyAIClient(apiKey string) *AssemblyAIClient {
	return &AssemblyAIClient{
		client: aai.NewClient(apiKey),
	}
}

// Name identifies the backend in logs
func (c *AssemblyAIClient) Name() string { return "assemblyai" }

// Transcribe uploads the audio and blocks until the transcript completes
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (*TranscriptionResult, error) {
	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if transcript.Status == aai.TranscriptStatusError {
		errorMsg := "transcription failed"
		if transcript.Error != nil {
			errorMsg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai: %s", errorMsg)
	}

	result := &TranscriptionResult{}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	if transcript.AudioDuration != nil {
		result.Duration = *transcript.AudioDuration
	}

	for _, u := range transcript.Utterances {
		seg := Segment{}
		if u.Start != nil {
			seg.Start = float64(*u.Start) / 1000
		}
		if u.End != nil {
			seg.End = float64(*u.End) / 1000
		}
		if u.Text != nil {
			seg.Text = *u.Text
		}
		if u.Speaker != nil {
			seg.Speaker = *u.Speaker
		}
		if u.Confidence != nil {
			seg.Confidence = *u.Confidence
		}
		result.Segments = append(result.Segments, seg)
	}
	return result, nil
}

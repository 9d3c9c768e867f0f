package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Transcriber converts an audio stream into timed transcript segments
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*TranscriptionResult, error)
}

// WhisperClient talks to a Whisper-compatible transcription server
// exposing the OpenAI audio transcription endpoint.
type WhisperClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewWhisperClient creates a Whisper transcription client
func NewWhisperClient(baseURL, model string, timeout time.Duration) *WhisperClient {
	if model == "" {
		model = "base"
	}
	return &WhisperClient{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name identifies the backend in logs
func (c *WhisperClient) Name() string { return "whisper" }

type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type whisperResponse struct {
	Text     string           `json:"text"`
	Duration float64          `json:"duration"`
	Segments []whisperSegment `json:"segments"`
}

// Transcribe uploads the audio as multipart form data and parses the
// verbose_json response into timed segments.
func (c *WhisperClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (*TranscriptionResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, err
	}
	if err := mw.WriteField("model", c.model); err != nil {
		return nil, err
	}
	if err := mw.WriteField("response_format", "verbose_json"); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("whisper returned status %d", resp.StatusCode)
	}

	var wr whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, err
	}

	result := &TranscriptionResult{
		Text:     wr.Text,
		Duration: wr.Duration,
	}
	for _, s := range wr.Segments {
		result.Segments = append(result.Segments, Segment{
			Start:      s.Start,
			End:        s.End,
			Text:       s.Text,
			Confidence: 1.0,
		})
	}
	return result, nil
}

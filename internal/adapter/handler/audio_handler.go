package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fahmidhamim/echobrief/errors"
	aidto "github.com/fahmidhamim/echobrief/internal/adapter/dto/ai"
	"github.com/fahmidhamim/echobrief/internal/usecase/ai"
)

// Audio handles audio upload and transcription endpoints
type Audio struct {
	service     *ai.Service
	maxFileSize int64
	logger      *zap.Logger
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(service *ai.Service, maxFileSize int64, logger *zap.Logger) *Audio {
	return &Audio{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// Upload godoc
// @Summary      Upload and transcribe a meeting recording
// @Description  Stores the audio, transcribes it, and persists one transcript row per segment. Transcription failure fails the whole upload.
// @Tags         audio
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id query string true "Meeting ID"
// @Param        file formData file true "Audio file"
// @Success      200 {object} aidto.UploadResponse
// @Router       /audio/upload [post]
func (h *Audio) Upload(c echo.Context) error {
	if _, ok := CallerID(c); !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	meetingID, err := uuid.Parse(c.QueryParam("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing audio file"))
	}
	if fileHeader.Size > h.maxFileSize {
		return HandleError(h.logger, c, errors.ErrFileTooLarge(h.maxFileSize))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("open upload", err))
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio"
	}

	result, err := h.service.TranscribeAndStore(c.Request().Context(), meetingID, fileHeader.Filename, contentType, src, fileHeader.Size)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &aidto.UploadResponse{
		Status:         "uploaded",
		FilePath:       result.AudioFile.FilePath,
		FileSize:       result.AudioFile.FileSize,
		Filename:       fileHeader.Filename,
		TranscriptText: result.TranscriptText,
		SegmentsSaved:  result.SegmentsSaved,
	})
}

package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fahmidhamim/echobrief/errors"
	aidto "github.com/fahmidhamim/echobrief/internal/adapter/dto/ai"
	"github.com/fahmidhamim/echobrief/internal/usecase/ai"
)

// AI handles summarization endpoints
type AI struct {
	service *ai.Service
	logger  *zap.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(service *ai.Service, logger *zap.Logger) *AI {
	return &AI{
		service: service,
		logger:  logger,
	}
}

// Summarize godoc
// @Summary      Generate and persist a meeting summary
// @Description  Uses the configured provider chain; degrades to a local extractive summary when no provider succeeds.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body aidto.SummarizeRequest true "Summarize payload"
// @Success      200 {object} aidto.SummaryResponse
// @Router       /ai/summarize [post]
func (h *AI) Summarize(c echo.Context) error {
	if _, ok := CallerID(c); !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req aidto.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.service.Summarize(c.Request().Context(), req.MeetingID, req.TranscriptText, req.MaxLength)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, aidto.ToSummaryResponse(result.Summary, result.Provider))
}

// GetSummary godoc
// @Summary      Get a meeting's stored summary
// @Tags         ai
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id path string true "Meeting ID"
// @Success      200 {object} aidto.SummaryResponse
// @Router       /ai/summary/{meeting_id} [get]
func (h *AI) GetSummary(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	summary, err := h.service.GetSummary(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, aidto.ToSummaryResponse(summary, ""))
}

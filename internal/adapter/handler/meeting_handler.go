package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fahmidhamim/echobrief/errors"
	meetingdto "github.com/fahmidhamim/echobrief/internal/adapter/dto/meeting"
	"github.com/fahmidhamim/echobrief/internal/usecase/meeting"
)

// Meeting handles meeting lifecycle endpoints
type Meeting struct {
	service *meeting.Service
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service *meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		logger:  logger,
	}
}

// parseMeetingID reads and parses the :id path parameter
func parseMeetingID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("invalid meeting id")
	}
	return id, nil
}

// Create godoc
// @Summary      Create a meeting
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body meetingdto.CreateMeetingRequest true "Meeting payload"
// @Success      200 {object} meetingdto.MeetingResponse
// @Router       /meetings [post]
func (h *Meeting) Create(c echo.Context) error {
	callerID, ok := CallerID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req meetingdto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	m, err := h.service.Create(c.Request().Context(), callerID, req.Title, req.Description, req.MaxParticipants)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToMeetingResponse(m))
}

// Get godoc
// @Summary      Get a meeting by ID
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meeting ID"
// @Success      200 {object} meetingdto.MeetingResponse
// @Router       /meetings/{id} [get]
func (h *Meeting) Get(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToMeetingResponse(m))
}

// List godoc
// @Summary      List the caller's meetings, newest first
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max results"
// @Success      200 {array} meetingdto.MeetingResponse
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	callerID, ok := CallerID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	meetings, err := h.service.ListByHost(c.Request().Context(), callerID, limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToMeetingResponses(meetings))
}

// Join godoc
// @Summary      Join a meeting
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meeting ID"
// @Success      200 {object} meetingdto.ParticipantResponse
// @Router       /meetings/{id}/join [post]
func (h *Meeting) Join(c echo.Context) error {
	callerID, ok := CallerID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	participant, err := h.service.Join(c.Request().Context(), id, callerID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToParticipantResponse(participant))
}

// Leave godoc
// @Summary      Leave a meeting
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meeting ID"
// @Success      200 {object} meetingdto.ParticipantResponse
// @Router       /meetings/{id}/leave [post]
func (h *Meeting) Leave(c echo.Context) error {
	callerID, ok := CallerID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	participant, err := h.service.Leave(c.Request().Context(), id, callerID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToParticipantResponse(participant))
}

// End godoc
// @Summary      End a meeting and close all open participation spans
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meeting ID"
// @Success      200 {object} meetingdto.MeetingResponse
// @Router       /meetings/{id}/end [post]
func (h *Meeting) End(c echo.Context) error {
	if _, ok := CallerID(c); !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.End(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToMeetingResponse(m))
}

// Delete godoc
// @Summary      Delete a meeting and everything it owns
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meeting ID"
// @Success      200 {object} map[string]bool
// @Router       /meetings/{id} [delete]
func (h *Meeting) Delete(c echo.Context) error {
	if _, ok := CallerID(c); !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]bool{"deleted": true})
}

// Participants godoc
// @Summary      List a meeting's participation records
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meeting ID"
// @Success      200 {array} meetingdto.ParticipantResponse
// @Router       /meetings/{id}/participants [get]
func (h *Meeting) Participants(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	participants, err := h.service.GetParticipants(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToParticipantResponses(participants))
}

// AddTranscript godoc
// @Summary      Append a transcript segment to a meeting
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meeting ID"
// @Param        request body meetingdto.AddTranscriptRequest true "Transcript payload"
// @Success      200 {object} meetingdto.TranscriptResponse
// @Router       /meetings/{id}/transcripts [post]
func (h *Meeting) AddTranscript(c echo.Context) error {
	if _, ok := CallerID(c); !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingdto.AddTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	transcript, err := h.service.AddTranscript(c.Request().Context(), id, req.SpeakerName, req.Text, req.TimestampSeconds)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToTranscriptResponse(transcript))
}

// Transcripts godoc
// @Summary      List a meeting's transcript segments, oldest first
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Meeting ID"
// @Success      200 {array} meetingdto.TranscriptResponse
// @Router       /meetings/{id}/transcripts [get]
func (h *Meeting) Transcripts(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	transcripts, err := h.service.GetTranscripts(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToTranscriptResponses(transcripts))
}

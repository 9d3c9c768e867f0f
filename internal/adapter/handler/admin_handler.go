package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fahmidhamim/echobrief/errors"
	authdto "github.com/fahmidhamim/echobrief/internal/adapter/dto/auth"
	meetingdto "github.com/fahmidhamim/echobrief/internal/adapter/dto/meeting"
	"github.com/fahmidhamim/echobrief/internal/usecase/admin"
)

// Admin handles admin-only endpoints
type Admin struct {
	service *admin.Service
	logger  *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *admin.Service, logger *zap.Logger) *Admin {
	return &Admin{
		service: service,
		logger:  logger,
	}
}

func pagination(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}

// Metrics godoc
// @Summary      System-wide aggregate counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} admin.Metrics
// @Router       /admin/metrics [get]
func (h *Admin) Metrics(c echo.Context) error {
	callerID, ok := CallerID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	metrics, err := h.service.GetMetrics(c.Request().Context(), callerID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, metrics)
}

// Users godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max results"
// @Param        offset query int false "Skip results"
// @Success      200 {array} authdto.UserResponse
// @Router       /admin/users [get]
func (h *Admin) Users(c echo.Context) error {
	callerID, ok := CallerID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	limit, offset := pagination(c)
	users, err := h.service.ListUsers(c.Request().Context(), callerID, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out := make([]*authdto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, authdto.ToUserResponse(u))
	}
	return HandleSuccess(h.logger, c, out)
}

// Meetings godoc
// @Summary      List all meetings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max results"
// @Param        offset query int false "Skip results"
// @Success      200 {array} meetingdto.MeetingResponse
// @Router       /admin/meetings [get]
func (h *Admin) Meetings(c echo.Context) error {
	callerID, ok := CallerID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	limit, offset := pagination(c)
	meetings, err := h.service.ListMeetings(c.Request().Context(), callerID, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.ToMeetingResponses(meetings))
}

package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/fahmidhamim/echobrief/errors"
	httpmw "github.com/fahmidhamim/echobrief/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/fahmidhamim/echobrief/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// CallerID reads the authenticated user's ID set by the auth middleware
func CallerID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(httpmw.UserIDContextKey).(uuid.UUID)
	return id, ok
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging. Usecase sentinel
// errors are translated to API errors before rendering; anything
// unrecognized surfaces as an opaque internal failure.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	err = translateError(c, err)

	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	// Non-AppError => internal server error without leaking detail
	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// translateError maps usecase sentinel errors onto API errors
func translateError(c echo.Context, err error) error {
	meetingID := c.Param("meeting_id")
	if meetingID == "" {
		meetingID = c.Param("id")
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingFull):
		return errors.AppError{
			Raw:      err,
			HTTPCode: http.StatusConflict,
			Code:     errors.ErrorCode_MEETING_FULL,
			Message:  "Meeting is full",
		}
	case stdErrors.Is(err, usecaseErrors.ErrMeetingEnded):
		return errors.ErrMeetingEnded(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrParticipantNotFound):
		return errors.ErrParticipantNotFound(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrInvalidTitle),
		stdErrors.Is(err, usecaseErrors.ErrInvalidMaxParticipants),
		stdErrors.Is(err, usecaseErrors.ErrEmptyTranscriptText),
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrNoTranscript):
		return errors.ErrNoTranscript(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrSummaryNotFound):
		return errors.ErrSummaryNotFound(meetingID)
	case stdErrors.Is(err, usecaseErrors.ErrSummaryInProgress):
		return errors.AppError{
			Raw:      err,
			HTTPCode: http.StatusConflict,
			Code:     errors.ErrorCode_ALREADY_EXISTS,
			Message:  "Summary generation already in progress",
		}
	case stdErrors.Is(err, usecaseErrors.ErrInvalidCredentials):
		return errors.ErrInvalidCredentials()
	case stdErrors.Is(err, usecaseErrors.ErrEmailAlreadyUsed):
		return errors.ErrUserAlreadyExists("")
	case stdErrors.Is(err, usecaseErrors.ErrUserNotFound):
		return errors.ErrUserNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrAdminRequired):
		return errors.ErrAdminRequired()
	case stdErrors.Is(err, usecaseErrors.ErrTokenInvalid),
		stdErrors.Is(err, usecaseErrors.ErrTokenExpired):
		return errors.ErrInvalidToken()
	}
	return err
}

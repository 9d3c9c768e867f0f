package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrEmailAlreadyUsed   = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminRequired      = errors.New("admin access required")
)

// Meeting errors
var (
	ErrMeetingNotFound        = errors.New("meeting not found")
	ErrMeetingFull            = errors.New("meeting is full")
	ErrMeetingEnded           = errors.New("meeting has ended")
	ErrInvalidTitle           = errors.New("meeting title must not be empty")
	ErrInvalidMaxParticipants = errors.New("max participants must be between 2 and 20")
)

// Participant errors
var (
	ErrParticipantNotFound = errors.New("participant not found")
)

// Transcript errors
var (
	ErrEmptyTranscriptText = errors.New("transcript text must not be empty")
)

// AI pipeline errors
var (
	ErrNoTranscript      = errors.New("no transcript available for summarization")
	ErrSummaryNotFound   = errors.New("summary not found")
	ErrNoProvider        = errors.New("no AI provider configured")
	ErrSummaryInProgress = errors.New("summary generation already in progress")
)

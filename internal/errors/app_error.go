package errors

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeTransport       = "TRANSPORT_ERROR"
	ErrCodeServerRejected  = "SERVER_REJECTED"
	ErrCodeLocalValidation = "LOCAL_VALIDATION"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
)

// TransportError covers failures where no well-formed response was received:
// DNS, connection refused, timeouts, malformed bodies.
func TransportError(message string) *AppError {
	return NewAppError(ErrCodeTransport, message, 0)
}

// ServerError covers responses the server produced on purpose: success=false
// envelopes and non-2xx statuses. Message carries the server text verbatim
// when one was present.
func ServerError(message string, statusCode int) *AppError {
	return NewAppError(ErrCodeServerRejected, message, statusCode)
}

// LocalError short-circuits before any network call is made.
func LocalError(message string) *AppError {
	return NewAppError(ErrCodeLocalValidation, message, 0)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// UserMessage returns the text an operator should see for err: the message
// carried by an AppError when one exists, a generic line otherwise.
func UserMessage(err error) string {
	if appErr, ok := IsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}

	return "An unexpected error occurred"
}

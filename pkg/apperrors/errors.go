package apperrors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AppError - the application error type
type AppError struct {
	Code     ErrorCode `json:"code"`
	Domain   string    `json:"domain"`
	Message  string    `json:"message"`
	Err      error     `json:"-"`
	HTTPCode int       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New - base constructor
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap - wraps an existing error into an AppError
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// MarshalJSON hides Err and HTTPCode
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode `json:"code"`
		Domain  string    `json:"domain"`
		Message string    `json:"message"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
	})
}

// HasStatus reports whether err is an AppError with the given HTTP status.
func HasStatus(err error, status int) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.HTTPCode == status
}

// --- Generic helpers ---

// InternalError wraps an unknown system error
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "auth", message, http.StatusForbidden)
}

// NewUpstreamError builds the error returned for a non-successful API response.
func NewUpstreamError(status int, message string) *AppError {
	return New(CodeForStatus(status), "api", message, status)
}

// NewTransportError wraps a failure to reach the API at all.
func NewTransportError(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "api", "Unable to reach the CareConnect service", http.StatusBadGateway)
}

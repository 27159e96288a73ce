package apperrors

import (
	"errors"

	"github.com/gin-gonic/gin"

	"careconnect_web/internal/logger"
)

// ErrorResponse - standard JSON error body
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError renders err as JSON for machine clients. Errors that are not
// an AppError are reported as a 500 with a generic message.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// AsAppError tries to convert err into *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// UserMessage returns the text shown to the user for err.
// AppError messages are surfaced verbatim, anything else gets fallback.
func UserMessage(err error, fallback string) string {
	if appErr, ok := AsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

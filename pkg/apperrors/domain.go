package apperrors

import (
	"net/http"
)

/*
Factories and predefined errors raised locally by the web front end,
before or instead of a call to the remote API.
*/

// ErrNotFound - factory for "not found" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrStorage - session store failure (500)
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeStorageError, "session", "Session storage is unavailable", http.StatusInternalServerError)
}

// ErrInvalidOperation - factory for invalid operations (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Care requests ---

// ErrCareRequestNotOpen - accept or apply on a request that left the OPEN status.
var ErrCareRequestNotOpen = New(
	CodeInvalidStatus,
	"care_request",
	"This care request is no longer open",
	http.StatusConflict,
)

// --- Auth ---

// ErrSessionExpired - the API rejected the stored token.
var ErrSessionExpired = NewUnauthorizedError("Your session has expired. Please sign in again.")

// ErrAccessDenied - the route guard refused the current role.
var ErrAccessDenied = NewForbiddenError("You do not have access to that page")

// --- Forms ---

// ErrDuplicateSubmit - the same form is already being processed for this client.
var ErrDuplicateSubmit = New(
	CodeTooManyRequests,
	"form",
	"Your previous submission is still being processed",
	http.StatusTooManyRequests,
)

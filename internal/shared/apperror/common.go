package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrLoginFailed = New(
		CodeAuth,
		"Login failed. Try again.",
		http.StatusUnauthorized,
	)

	ErrUserCancelled = New(
		CodeCancelled,
		"Cancelled by user",
		0,
	)
)

// Network wraps a transport-level failure (request never got a usable response).
func Network(err error) *AppError {
	return Wrap(err, CodeNetwork, "Request failed", 0)
}

// Validation carries the server-supplied rejection message.
func Validation(message string, httpStatus int) *AppError {
	return New(CodeValidation, message, httpStatus)
}

// Shape reports a response body that matched no known list shape for a resource.
func Shape(resource string) *AppError {
	return New(CodeShape, "Unexpected response shape for "+resource, 0)
}

// Auth surfaces a rejected login, keeping the server message when there is one.
func Auth(message string) *AppError {
	if message == "" {
		return ErrLoginFailed
	}
	return New(CodeAuth, message, http.StatusUnauthorized)
}

// HasCode reports whether err is (or wraps) an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

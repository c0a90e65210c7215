package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is an error with the HTTP status it should be reported as.
// Only Message reaches the client; Cause is kept for logs.
type AppError struct {
	Status  int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Body is the JSON payload shared by every error response.
type Body struct {
	Error string `json:"error"`
}

func (e *AppError) Body() Body { return Body{Error: e.Message} }

func BadRequest(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Validation reports a semantic conflict such as a duplicate unique key.
func Validation(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message}
}

func Internal(message string, cause error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: message, Cause: cause}
}

// From converts any error into an AppError. Unknown errors become 500s.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("Internal server error", err)
}

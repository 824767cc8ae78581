package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies an error condition independent of its HTTP mapping.
type ErrorCode string

func (c ErrorCode) String() string { return string(c) }

const (
	ErrorCode_INTERNAL           ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT   ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND          ErrorCode = "NOT_FOUND"
	ErrorCode_BACKEND_FAILURE    ErrorCode = "BACKEND_FAILURE"
	ErrorCode_RESULTS_NOT_READY  ErrorCode = "RESULTS_NOT_READY"
	ErrorCode_RECORDING_ACTIVE   ErrorCode = "RECORDING_ACTIVE"
	ErrorCode_RECORDING_INACTIVE ErrorCode = "RECORDING_INACTIVE"
	ErrorCode_CHAT_DISCONNECTED  ErrorCode = "CHAT_DISCONNECTED"
	ErrorCode_VALIDATION_FAILED  ErrorCode = "VALIDATION_FAILED"
)

// AppError is the application error type carried between use cases and the
// gateway surface.
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e AppError) Unwrap() error { return e.Raw }

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrValidation(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_VALIDATION_FAILED,
		Message:  "Request validation failed",
	}
}

// Backend transport errors

// ErrBackendFailure wraps a failed call to the notes backend. The operation is
// aborted and never retried automatically; the user triggers any retry.
func ErrBackendFailure(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_BACKEND_FAILURE,
		Message:  fmt.Sprintf("Backend request failed: %s", operation),
	}
}

// ErrResultsNotReady is the distinct "try again later" condition for a 404
// from the transcription results endpoint, as opposed to a hard failure.
func ErrResultsNotReady() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_RESULTS_NOT_READY,
		Message:  "Transcription results not available. Please try recording again.",
	}
}

// Recording session errors

func ErrRecordingInProgress() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_RECORDING_ACTIVE,
		Message:  "Recording already in progress",
	}
}

func ErrNoActiveRecording() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_RECORDING_INACTIVE,
		Message:  "No active recording",
	}
}

// Chat errors

func ErrChatDisconnected() AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_CHAT_DISCONNECTED,
		Message:  "Chat is disconnected",
	}
}

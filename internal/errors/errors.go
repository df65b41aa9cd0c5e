// Package errors provides structured error handling for the capture daemon.
// Every failure carries a Code so callers can distinguish the fatal startup
// case (display connection) from per-iteration failures that the scheduler
// absorbs and skips.
package errors

import "fmt"

// Code classifies a failure.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// CodeDisplayConnection is fatal and only possible at startup.
	CodeDisplayConnection Code = "DISPLAY_CONNECTION"

	// CodeCapture means the root window could not be read; the iteration is
	// abandoned before any file is created.
	CodeCapture Code = "CAPTURE"

	// CodeEncode covers every step of writing the PNG.
	CodeEncode Code = "ENCODE"

	// CodeStorage covers directory creation and temp-file allocation.
	CodeStorage Code = "STORAGE"
)

// AppError is the base error type with a structured code and metadata.
type AppError struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if len(e.Metadata) > 0 {
		s += fmt.Sprintf(" %v", e.Metadata)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(" caused by: %v", e.Cause)
	}
	return s
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Cause }

// New creates a new AppError with the given code and message.
func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// Newf creates a new AppError with formatted message.
func Newf(code Code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError.
func Wrap(err error, code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Cause: err}
}

// Wrapf wraps an existing error with formatted message.
func Wrapf(err error, code Code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// WithMetadata adds metadata to an AppError.
func (e *AppError) WithMetadata(key, value string) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code Code) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

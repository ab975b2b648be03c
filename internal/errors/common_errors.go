package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError. When an AppError reaches the ErrorHandler
// without being mapped to an APIError, its kind picks the response status.
type Kind string

const (
	KindParsing    Kind = "PARSING"
	KindStorage    Kind = "STORAGE"
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
)

// AppError is an error raised below the HTTP layer, such as a workbook that
// cannot be opened or parsed.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
	Fields  map[string]any
}

// Error returns the message followed by the cause, if any. The kind is left
// out because the text may be shown to clients.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// With attaches a diagnostic field for logs.
func (e *AppError) With(key string, value any) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// KindOf returns the kind of the first AppError in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func newAppError(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// NewParsingError reports content that could not be decoded.
func NewParsingError(message string, cause error) *AppError {
	return newAppError(KindParsing, message, cause)
}

// NewStorageError reports a file that could not be opened or read.
func NewStorageError(message string, cause error) *AppError {
	return newAppError(KindStorage, message, cause)
}

// NewInvalidInputError reports input rejected before processing.
func NewInvalidInputError(message string) *AppError {
	return newAppError(KindValidation, message, nil)
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource string) *AppError {
	return newAppError(KindNotFound, fmt.Sprintf("%s not found", resource), nil)
}

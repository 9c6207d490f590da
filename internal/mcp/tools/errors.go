package tools

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/usestring/schemex/pkg/schema"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeExtractError      = "EXTRACT_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapExtractError converts extraction and IO failures to coded errors.
func WrapExtractError(path string, err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError

	switch {
	case errors.Is(err, fs.ErrNotExist):
		coded = &CodedError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("file not found: %s", path),
			Cause:   err,
		}
	case errors.Is(err, schema.ErrUnsupportedFormat):
		coded = &CodedError{
			Code:    ErrCodeUnsupportedFormat,
			Message: fmt.Sprintf("unsupported document format: %s", path),
			Cause:   err,
		}
	default:
		coded = &CodedError{
			Code:    ErrCodeExtractError,
			Message: err.Error(),
			Cause:   err,
		}
	}

	slog.Warn("extraction error",
		slog.String("code", coded.Code),
		slog.String("path", path),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

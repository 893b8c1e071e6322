package tools

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/typegen-mcp/pkg/codegen"
	"github.com/usestring/typegen-mcp/pkg/jsontree"
	"github.com/usestring/typegen-mcp/pkg/typegen"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeMalformedJSON = "MALFORMED_JSON"
	ErrCodeTooLarge      = "TOO_LARGE"
	ErrCodeInternal      = "INTERNAL"
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

// WrapGenerateError converts an inference or rendering error to a coded error.
// Caller mistakes become INVALID_INPUT or MALFORMED_JSON; anything else is
// logged and reported as INTERNAL.
func WrapGenerateError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return err
	}

	var malformed *jsontree.MalformedInputError
	switch {
	case errors.As(err, &malformed):
		return &CodedError{
			Code:    ErrCodeMalformedJSON,
			Message: fmt.Sprintf("input is not valid JSON (offset %d)", malformed.Offset),
			Cause:   err,
		}
	case errors.Is(err, typegen.ErrInvalidRootName),
		errors.Is(err, typegen.ErrInvalidPackageName),
		errors.Is(err, typegen.ErrNoSamples),
		errors.Is(err, codegen.ErrUnknownTarget):
		return &CodedError{
			Code:    ErrCodeInvalidInput,
			Message: err.Error(),
		}
	}

	slog.Warn("type generation failed", slog.String("error", err.Error()))
	return &CodedError{
		Code:    ErrCodeInternal,
		Message: "type generation failed",
		Cause:   err,
	}
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

// ErrTooLarge creates an error for input exceeding a configured cap.
func ErrTooLarge(what string, got, limit int) error {
	return &CodedError{
		Code:    ErrCodeTooLarge,
		Message: fmt.Sprintf("%s: %d exceeds the limit of %d", what, got, limit),
	}
}

package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Quiz specific errors
	CodeQuizNotFound        ErrorCode = "QUIZ_NOT_FOUND"
	CodeInvalidURL          ErrorCode = "INVALID_URL"
	CodeScrapeFailed        ErrorCode = "SCRAPE_FAILED"
	CodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	CodeInsufficientContent ErrorCode = "INSUFFICIENT_CONTENT"
	CodeLLMServiceError     ErrorCode = "LLM_SERVICE_ERROR"
	CodePersistenceFailed   ErrorCode = "PERSISTENCE_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewQuizNotFoundError() *DomainError {
	return NewError(CodeQuizNotFound, "Quiz not found", nil)
}

func NewInvalidURLError(message string) *DomainError {
	return NewError(CodeInvalidURL, message, nil)
}

func NewScrapeError(message string, err error) *DomainError {
	return NewError(CodeScrapeFailed, message, err)
}

func NewUpstreamUnavailableError(message string, err error) *DomainError {
	return NewError(CodeUpstreamUnavailable, message, err)
}

func NewInsufficientContentError() *DomainError {
	return NewError(CodeInsufficientContent, "Wikipedia page contains insufficient content", nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMServiceError, "AI failed to process content", err)
}

func NewPersistenceError(message string, err error) *DomainError {
	return NewError(CodePersistenceFailed, message, err)
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

func NewMissingFieldError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

func NewInvalidFormatError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// ValidationErrors collects field errors from a single request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// First returns the message of the first error, or "" when empty.
func (v ValidationErrors) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Message
}

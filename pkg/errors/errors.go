package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeSession represents failures to obtain or drive the browser session
	ErrorTypeSession ErrorType = "session"
	// ErrorTypeNavigation represents page-load and navigation failures
	ErrorTypeNavigation ErrorType = "navigation"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeStorage represents storage-related errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Stage   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Stage, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNavigation:
		return true
	case ErrorTypeSession:
		return false
	case ErrorTypeParsing:
		return false
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, stage, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Stage:   stage,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewSession creates a new session error
func NewSession(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeSession, stage, message, err)
}

// NewNavigation creates a new navigation error
func NewNavigation(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeNavigation, stage, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, stage, message, err)
}

// NewCache creates a new cache error
func NewCache(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, stage, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(stage, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, stage, message, err)
}

// NewStorage creates a new storage error
func NewStorage(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeStorage, stage, message, err)
}

// NewValidation creates a new validation error
func NewValidation(stage, message string) *ScrapeError {
	return New(ErrorTypeValidation, stage, message, nil)
}

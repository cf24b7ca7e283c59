package models

import (
	"context"
	"errors"
	"fmt"
)

// Error codes used across the pipeline.
const (
	// ErrCodeConfig marks an invalid or missing selector chain for a
	// known (type, field) pair. Fatal: aborts the run before any
	// section starts.
	ErrCodeConfig = "CONFIG_INVALID"

	// Section-fatal codes. These are caught at the orchestrator
	// boundary, recorded in the report, and never halt other sections.
	ErrCodeTimeout         = "RENDER_TIMEOUT"
	ErrCodeNavigation      = "NAVIGATION_FAILED"
	ErrCodeBrowserCrash    = "BROWSER_CRASH"
	ErrCodeSectionNotFound = "SECTION_NOT_FOUND"
)

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// CategorizeRenderError wraps raw navigation/render errors into typed
// ScrapeErrors. A context deadline is a timeout; everything else from
// the browser path is a navigation failure.
func CategorizeRenderError(err error, msg string) *ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewScrapeError(ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return NewScrapeError(ErrCodeTimeout, "render canceled", err)
	default:
		return NewScrapeError(ErrCodeNavigation, msg, err)
	}
}

// ErrorCode extracts the ScrapeError code from an error chain, or ""
// if the error carries no code.
func ErrorCode(err error) string {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsSectionFatal reports whether an error should fail a single section
// while leaving the rest of the run untouched. Config errors are not
// section-fatal: they abort the whole run before it starts.
func IsSectionFatal(err error) bool {
	switch ErrorCode(err) {
	case ErrCodeTimeout, ErrCodeNavigation, ErrCodeBrowserCrash, ErrCodeSectionNotFound:
		return true
	}
	return false
}

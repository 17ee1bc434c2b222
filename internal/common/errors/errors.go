// Package errors provides standardized error handling for claim submission and the control surface.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Submission outcomes
	ErrCodeSubmissionUnavailable ErrorCode = "SUBMISSION_UNAVAILABLE"
	ErrCodeResponseUnrecognized  ErrorCode = "RESPONSE_UNRECOGNIZED"
	ErrCodeDuplicateClaim        ErrorCode = "DUPLICATE_CLAIM"
	ErrCodeSubmissionInProgress  ErrorCode = "SUBMISSION_IN_PROGRESS"
	ErrCodeInvalidFormPayload    ErrorCode = "INVALID_FORM_PAYLOAD"

	// Best-effort side effects, logged and never surfaced to callers
	ErrCodeArchiveFailed      ErrorCode = "ARCHIVE_FAILED"
	ErrCodeRecordFailed       ErrorCode = "RECORD_FAILED"
	ErrCodeNotificationFailed ErrorCode = "NOTIFICATION_FAILED"

	// Control surface
	ErrCodeScheduleStateConflict ErrorCode = "SCHEDULE_STATE_CONFLICT"
	ErrCodeScheduleUpdateFailed  ErrorCode = "SCHEDULE_UPDATE_FAILED"
	ErrCodeScheduleARNInvalid    ErrorCode = "SCHEDULE_ARN_INVALID"
	ErrCodeClaimListFailed       ErrorCode = "CLAIM_LIST_FAILED"
	ErrCodeUnauthorized          ErrorCode = "UNAUTHORIZED"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewSubmissionUnavailableError reports that the form endpoint could not be reached.
func NewSubmissionUnavailableError(err error) *StandardError {
	return newError(ErrCodeSubmissionUnavailable, "Unable to retrieve data from the claim form", err, true)
}

// NewResponseUnrecognizedError reports a response that carries neither a claim number nor a known failure.
func NewResponseUnrecognizedError(err error) *StandardError {
	return newError(ErrCodeResponseUnrecognized, "Claim form response not recognized", err, false)
}

// NewDuplicateClaimError carries the cleaned message scraped from the page.
func NewDuplicateClaimError(message string) *StandardError {
	return newError(ErrCodeDuplicateClaim, message, nil, false)
}

func NewSubmissionInProgressError() *StandardError {
	return newError(ErrCodeSubmissionInProgress, "Another claim submission is already in progress", nil, true)
}

func NewInvalidFormPayloadError(details string) *StandardError {
	e := newError(ErrCodeInvalidFormPayload, "Claim form payload failed validation", nil, false)
	e.Details = details
	return e
}

func NewArchiveFailedError(target string, err error) *StandardError {
	e := newError(ErrCodeArchiveFailed, "Response archive failed", err, true)
	e.Metadata = map[string]interface{}{"target": target}
	return e
}

func NewRecordFailedError(claimID string, err error) *StandardError {
	e := newError(ErrCodeRecordFailed, "Claim record write failed", err, true)
	e.Metadata = map[string]interface{}{"claimId": claimID}
	return e
}

func NewNotificationFailedError(channel string, err error) *StandardError {
	e := newError(ErrCodeNotificationFailed, "Operator notification failed", err, true)
	e.Metadata = map[string]interface{}{"channel": channel}
	return e
}

// NewScheduleStateConflictError is returned when the schedule already is in the requested state.
func NewScheduleStateConflictError(message string) *StandardError {
	return newError(ErrCodeScheduleStateConflict, message, nil, false)
}

func NewScheduleUpdateFailedError(err error) *StandardError {
	return newError(ErrCodeScheduleUpdateFailed, "Error updating the schedule", err, true)
}

func NewScheduleARNInvalidError(err error) *StandardError {
	return newError(ErrCodeScheduleARNInvalid, "Schedule ARN is not valid", err, false)
}

func NewClaimListFailedError(err error) *StandardError {
	return newError(ErrCodeClaimListFailed, "Error listing claims", err, true)
}

func NewUnauthorizedError() *StandardError {
	return newError(ErrCodeUnauthorized, "Unauthorized", nil, false)
}

func NewConfigInvalidError(err error) *StandardError {
	return newError(ErrCodeConfigInvalid, "Invalid configuration", err, false)
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError extracts a StandardError from an error chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// HTTPStatus maps an error code to the status the control surface answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeDuplicateClaim, ErrCodeScheduleStateConflict, ErrCodeSubmissionInProgress:
		return http.StatusConflict
	case ErrCodeSubmissionUnavailable, ErrCodeResponseUnrecognized:
		return http.StatusServiceUnavailable
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SUBMISSION") || strings.Contains(codeStr, "RESPONSE") ||
		strings.Contains(codeStr, "CLAIM") || strings.Contains(codeStr, "FORM"):
		return "CLAIM"
	case strings.Contains(codeStr, "SCHEDULE"):
		return "SCHEDULE"
	case strings.Contains(codeStr, "ARCHIVE") || strings.Contains(codeStr, "RECORD"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "UNAUTHORIZED"):
		return "AUTH"
	default:
		return "OTHER"
	}
}

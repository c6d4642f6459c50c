// Package errors provides standardized error handling for the alignment scoring pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidPersona       ErrorCode = "INVALID_PERSONA"
	ErrCodePersonaConfigInvalid ErrorCode = "PERSONA_CONFIG_INVALID"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeSourceFetchFailed        ErrorCode = "SOURCE_FETCH_FAILED"
	ErrCodeSourceQueryTimeout       ErrorCode = "SOURCE_QUERY_TIMEOUT"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeNewsSearchFailed              ErrorCode = "NEWS_SEARCH_FAILED"
	ErrCodeNewsSearchTimeout             ErrorCode = "NEWS_SEARCH_TIMEOUT"

	ErrCodeNarrativeTimeout ErrorCode = "NARRATIVE_TIMEOUT"
	ErrCodeNarrativeFailed  ErrorCode = "NARRATIVE_FAILED"

	ErrCodeCacheReadFailed  ErrorCode = "CACHE_READ_FAILED"
	ErrCodeCacheWriteFailed ErrorCode = "CACHE_WRITE_FAILED"

	ErrCodeInsufficientCandidates ErrorCode = "INSUFFICIENT_CANDIDATES"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidPersonaError creates a non-retryable error for an unknown persona key.
func NewInvalidPersonaError(persona string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPersona,
		Message:   "Unknown persona archetype",
		Details:   fmt.Sprintf("persona: %s", persona),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersonaConfigInvalidError creates a non-retryable startup error for out-of-bounds
// persona preferences.
func NewPersonaConfigInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePersonaConfigInvalid,
		Message:   "Persona configuration failed bounds validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceFetchFailedError creates a retryable error for a failed source document read.
func NewSourceFetchFailedError(source, symbol string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceFetchFailed,
		Message:   "Source document read failed",
		Details:   fmt.Sprintf("source: %s, symbol: %s, error: %s", source, symbol, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSourceQueryTimeoutError creates a retryable source read timeout error.
func NewSourceQueryTimeoutError(source, symbol string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceQueryTimeout,
		Message:   "Source document read timeout",
		Details:   fmt.Sprintf("source: %s, symbol: %s", source, symbol),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Elasticsearch connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNewsSearchFailedError creates a retryable news index query error.
func NewNewsSearchFailedError(symbol string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNewsSearchFailed,
		Message:   "News article search failed",
		Details:   fmt.Sprintf("symbol: %s, error: %s", symbol, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNarrativeTimeoutError creates a retryable narrative analysis timeout error.
func NewNarrativeTimeoutError(symbol string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNarrativeTimeout,
		Message:   "Narrative analysis timeout",
		Details:   fmt.Sprintf("symbol: %s", symbol),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNarrativeFailedError creates a retryable narrative analysis error. The scoring
// path substitutes a neutral score rather than propagating this to the batch.
func NewNarrativeFailedError(symbol string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNarrativeFailed,
		Message:   "Narrative analysis failed",
		Details:   fmt.Sprintf("symbol: %s, error: %s", symbol, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheReadFailedError creates a retryable cache read error.
func NewCacheReadFailedError(persona string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheReadFailed,
		Message:   "Ranking cache read failed",
		Details:   fmt.Sprintf("persona: %s, error: %s", persona, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheWriteFailedError creates a retryable cache write error.
func NewCacheWriteFailedError(persona string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheWriteFailed,
		Message:   "Ranking cache write failed",
		Details:   fmt.Sprintf("persona: %s, error: %s", persona, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInsufficientCandidatesError marks a ranking pass that produced fewer scorable
// companies than the list size. The orchestrator reacts with a narrative-only pass,
// never by surfacing this to the caller.
func NewInsufficientCandidatesError(persona string, scorable int) *StandardError {
	return &StandardError{
		Code:      ErrCodeInsufficientCandidates,
		Message:   "Too few scorable companies for ranking lists",
		Details:   fmt.Sprintf("persona: %s, scorable: %d", persona, scorable),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Retry Semantics
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeSourceFetchFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeNewsSearchFailed,
		ErrCodeNarrativeFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeSourceQueryTimeout,
		ErrCodeNewsSearchTimeout,
		ErrCodeCacheReadFailed,
		ErrCodeCacheWriteFailed:
		return 2

	case ErrCodeNarrativeTimeout:
		return 1

	default:
		return 0 // Business conditions: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PERSONA"):
		return "PERSONA"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "SOURCE"):
		return "SOURCE_STORE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "NEWS"):
		return "NEWS_SEARCH"
	case strings.Contains(codeStr, "NARRATIVE"):
		return "NARRATIVE"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}

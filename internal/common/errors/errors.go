// Package errors provides standardized error values for the dashboard.
package errors

import (
	stderrors "errors"
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
	ErrCodeArticleNotFound         ErrorCode = "ARTICLE_NOT_FOUND"
	ErrCodeArticleLookupFailed     ErrorCode = "ARTICLE_LOOKUP_FAILED"
	ErrCodeArticleCountFailed      ErrorCode = "ARTICLE_COUNT_FAILED"
	ErrCodeArticleValidationFailed ErrorCode = "ARTICLE_VALIDATION_FAILED"
	ErrCodeArticleStoreFailed      ErrorCode = "ARTICLE_STORE_FAILED"

	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeAnalysisFailed  ErrorCode = "ANALYSIS_FAILED"
	ErrCodeAnalysisTimeout ErrorCode = "ANALYSIS_TIMEOUT"

	ErrCodeFeedFetchFailed ErrorCode = "FEED_FETCH_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
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

// NewArticleNotFoundError creates a non-retryable lookup miss.
func NewArticleNotFoundError(number int) *StandardError {
	return &StandardError{
		Code:      ErrCodeArticleNotFound,
		Message:   "Article not found",
		Details:   fmt.Sprintf("number: %d", number),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArticleLookupFailedError creates a retryable store error for a single article read.
func NewArticleLookupFailedError(number int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArticleLookupFailed,
		Message:   "Article lookup failed",
		Details:   fmt.Sprintf("number: %d, error: %s", number, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewArticleCountFailedError creates a retryable store error for the count query.
func NewArticleCountFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArticleCountFailed,
		Message:   "Article count failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewArticleValidationFailedError creates a non-retryable validation error.
func NewArticleValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeArticleValidationFailed,
		Message:   "Article failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArticleStoreFailedError creates a retryable write error.
func NewArticleStoreFailedError(number int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArticleStoreFailed,
		Message:   "Article could not be stored",
		Details:   fmt.Sprintf("number: %d, error: %s", number, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
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
		cause:     err,
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
		cause:     err,
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Search index not found",
		Details:   fmt.Sprintf("index: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Response cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewAnalysisFailedError creates a retryable vendor error for one analysis operation.
func NewAnalysisFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisFailed,
		Message:   fmt.Sprintf("Text analysis '%s' failed", operation),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewAnalysisTimeoutError creates a retryable vendor timeout error.
func NewAnalysisTimeoutError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisTimeout,
		Message:   fmt.Sprintf("Text analysis '%s' timed out", operation),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewFeedFetchFailedError creates a retryable feed download or parse error.
func NewFeedFetchFailedError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFeedFetchFailed,
		Message:   "Feed could not be fetched",
		Details:   fmt.Sprintf("url: %s, error: %s", url, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// HasCode reports whether err, or anything it wraps, is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.HasPrefix(codeStr, "ARTICLE") || strings.Contains(codeStr, "DATABASE"):
		return "STORE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "ANALYSIS"):
		return "NLP"
	case strings.Contains(codeStr, "FEED"):
		return "INGEST"
	default:
		return "OTHER"
	}
}

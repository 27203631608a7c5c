// Package errors provides standardized error handling for the assistant's
// collaborator boundaries. Intent classification itself never produces
// errors; these types cover ledger, search, notification and embedding
// failures surfaced to the shell.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeLedgerConnectionFailed ErrorCode = "LEDGER_CONNECTION_FAILED"
	ErrCodeLedgerQueryFailed      ErrorCode = "LEDGER_QUERY_FAILED"
	ErrCodeLedgerInsertFailed     ErrorCode = "LEDGER_INSERT_FAILED"
	ErrCodeDuplicateLead          ErrorCode = "DUPLICATE_LEAD"

	ErrCodeKnowledgeSearchFailed ErrorCode = "KNOWLEDGE_SEARCH_FAILED"
	ErrCodeKnowledgeTimeout      ErrorCode = "KNOWLEDGE_TIMEOUT"
	ErrCodeIndexNotFound         ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeCRMSubmitFailed        ErrorCode = "CRM_SUBMIT_FAILED"

	ErrCodeEmbeddingFailed     ErrorCode = "EMBEDDING_FAILED"
	ErrCodeEmbeddingAPITimeout ErrorCode = "EMBEDDING_API_TIMEOUT"

	ErrCodeIntentRegistryInvalid ErrorCode = "INTENT_REGISTRY_INVALID"
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

// NewLedgerQueryFailedError creates a retryable ledger read error.
func NewLedgerQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLedgerQueryFailed,
		Message:   "Lead ledger query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLedgerInsertFailedError creates a retryable ledger write error.
func NewLedgerInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLedgerInsertFailed,
		Message:   "Lead ledger insert failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDuplicateLeadError creates a non-retryable duplicate lead error.
func NewDuplicateLeadError(email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDuplicateLead,
		Message:   "Lead already exists",
		Details:   fmt.Sprintf("email: %s", email),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewKnowledgeSearchFailedError creates a retryable knowledge-base search error.
func NewKnowledgeSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeSearchFailed,
		Message:   "Knowledge base search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewKnowledgeTimeoutError creates a retryable knowledge-base timeout error.
func NewKnowledgeTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeTimeout,
		Message:   "Knowledge base query timeout",
		Details:   "search exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable index not found error.
func NewIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Knowledge base index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Lead notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCRMSubmitFailedError creates a retryable CRM submission error.
func NewCRMSubmitFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCRMSubmitFailed,
		Message:   "CRM lead submission failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingFailedError creates a retryable embedding service error.
func NewEmbeddingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingFailed,
		Message:   "Embedding service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingAPITimeoutError creates a retryable embedding timeout error.
func NewEmbeddingAPITimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingAPITimeout,
		Message:   "Embedding service timeout",
		Details:   "API call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentRegistryInvalidError creates a non-retryable registry validation error.
func NewIntentRegistryInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentRegistryInvalid,
		Message:   "Intent registry failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExternalServiceError wraps an arbitrary collaborator failure.
func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeLedgerConnectionFailed,
		ErrCodeLedgerQueryFailed,
		ErrCodeLedgerInsertFailed,
		ErrCodeKnowledgeSearchFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeCRMSubmitFailed,
		ErrCodeEmbeddingFailed:
		return 3

	case ErrCodeKnowledgeTimeout,
		ErrCodeEmbeddingAPITimeout:
		return 2

	default:
		return 0
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
	case strings.Contains(codeStr, "LEDGER") || strings.Contains(codeStr, "LEAD"):
		return "LEDGER"
	case strings.Contains(codeStr, "KNOWLEDGE") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "CRM"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "EMBEDDING"):
		return "AI"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

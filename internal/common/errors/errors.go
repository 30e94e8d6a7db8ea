// Package errors provides the structured error type shared by the HTTP API and the job workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode is a stable, client-visible error identifier.
type ErrorCode string

const (
	// Request validation
	ErrCodeQueryRequired      ErrorCode = "QUERY_REQUIRED"
	ErrCodeInvalidBusinessID  ErrorCode = "INVALID_BUSINESS_ID"
	ErrCodeInvalidFilterValue ErrorCode = "INVALID_FILTER_VALUE"
	ErrCodeInvalidRequestBody ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodeInvalidIntent      ErrorCode = "INVALID_INTENT"
	ErrCodeInvalidRecordSet   ErrorCode = "INVALID_RECORD_SET"

	// Lookup
	ErrCodeBusinessNotFound ErrorCode = "BUSINESS_NOT_FOUND"

	// Infrastructure
	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeCacheUnavailable   ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
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

// WithMetadata returns the error with an extra metadata entry.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError is an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns the variables set on a failed or thrown job.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryRequiredError is returned when a search query or chat question is blank.
func NewQueryRequiredError(field string) *StandardError {
	return newError(ErrCodeQueryRequired,
		fmt.Sprintf("%s is required", field),
		fmt.Sprintf("field: %s", field),
		false)
}

// NewInvalidBusinessIDError is returned when a path id is not a positive integer.
func NewInvalidBusinessIDError(raw string) *StandardError {
	return newError(ErrCodeInvalidBusinessID, "Invalid business ID", fmt.Sprintf("id: %q", raw), false)
}

// NewInvalidFilterValueError is returned for a malformed listing filter parameter.
func NewInvalidFilterValueError(param, raw string) *StandardError {
	return newError(ErrCodeInvalidFilterValue,
		fmt.Sprintf("Invalid value for %s", param),
		fmt.Sprintf("%s: %q", param, raw),
		false)
}

// NewInvalidRequestBodyError wraps a request decoding or validation failure.
func NewInvalidRequestBodyError(details string) *StandardError {
	return newError(ErrCodeInvalidRequestBody, "Invalid request body", details, false)
}

// NewInvalidIntentError is returned when a job carries an unknown intent name.
func NewInvalidIntentError(intent string) *StandardError {
	return newError(ErrCodeInvalidIntent, "Unsupported intent", fmt.Sprintf("intent: %s", intent), false)
}

// NewInvalidRecordSetError is returned when a job carries fewer records than the match
// total it reports.
func NewInvalidRecordSetError(received, total int) *StandardError {
	return newError(ErrCodeInvalidRecordSet,
		"Record set is incomplete",
		fmt.Sprintf("received %d of %d matched records", received, total),
		false,
	).WithMetadata("received", received).WithMetadata("total", total)
}

// NewBusinessNotFoundError is returned when no record has the requested id.
func NewBusinessNotFoundError(id int) *StandardError {
	return newError(ErrCodeBusinessNotFound, "Business not found", fmt.Sprintf("id: %d", id), false)
}

// NewCatalogUnavailableError wraps a catalog provider failure.
func NewCatalogUnavailableError(source string, err error) *StandardError {
	return newError(ErrCodeCatalogUnavailable,
		"Business catalog unavailable",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		true)
}

// NewCacheUnavailableError wraps a response cache failure.
func NewCacheUnavailableError(err error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "Response cache unavailable", err.Error(), true)
}

// NewInternalError wraps an unexpected failure. The details are never sent to HTTP clients.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Internal server error", err.Error(), false)
}

// ==========================
// 4. Error Conversion
// ==========================

// BPMNErrorMapping maps internal codes to the error codes modelled in the BPMN processes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeQueryRequired:      "QUERY_REQUIRED",
	ErrCodeInvalidBusinessID:  "INVALID_BUSINESS_ID",
	ErrCodeInvalidFilterValue: "INVALID_FILTER_VALUE",
	ErrCodeInvalidRequestBody: "INVALID_INPUT",
	ErrCodeInvalidIntent:      "INVALID_INPUT",
	ErrCodeInvalidRecordSet:   "INVALID_INPUT",
	ErrCodeBusinessNotFound:   "BUSINESS_NOT_FOUND",
	ErrCodeCatalogUnavailable: "CATALOG_UNAVAILABLE",
	ErrCodeCacheUnavailable:   "CACHE_UNAVAILABLE",
	ErrCodeInternal:           "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended job retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCatalogUnavailable:
		return 3
	case ErrCodeCacheUnavailable:
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// HTTPStatus maps a code to the response status of the REST API.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeQueryRequired, ErrCodeInvalidBusinessID, ErrCodeInvalidFilterValue,
		ErrCodeInvalidRequestBody, ErrCodeInvalidIntent, ErrCodeInvalidRecordSet:
		return http.StatusBadRequest
	case ErrCodeBusinessNotFound:
		return http.StatusNotFound
	case ErrCodeCatalogUnavailable, ErrCodeCacheUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err to a StandardError, wrapping anything else as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HasCode reports whether err is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// IsRetryableErrorCode reports whether a code is retried by the job workers.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory groups codes for logging.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "INVALID") || strings.HasSuffix(codeStr, "REQUIRED"):
		return "VALIDATION"
	case strings.HasSuffix(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	case strings.HasSuffix(codeStr, "UNAVAILABLE"):
		return "INFRASTRUCTURE"
	default:
		return "OTHER"
	}
}

// internal/common/http/response.go
package http

import (
	"encoding/json"
	"net/http"

	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/logger"
)

// ErrorBody is the error object inside a failed response.
type ErrorBody struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Details string           `json:"details,omitempty"`
}

// ErrorEnvelope is written for every failed request.
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   ErrorBody `json:"error"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil && log != nil {
		log.Error("failed to encode response", map[string]interface{}{"error": err})
	}
}

// Error maps err to its HTTP status and writes the error envelope. Errors without a
// code become INTERNAL_ERROR with a generic message and are logged.
func Error(w http.ResponseWriter, err error, log logger.Logger) {
	stdErr := errors.AsStandardError(err)

	body := ErrorBody{
		Code:    stdErr.Code,
		Message: stdErr.Message,
		Details: stdErr.Details,
	}
	if stdErr.Code == errors.ErrCodeInternal {
		if log != nil {
			log.Error("request failed", map[string]interface{}{"error": err})
		}
		body.Details = ""
	}

	JSON(w, errors.HTTPStatus(stdErr.Code), ErrorEnvelope{
		Success: false,
		Message: body.Message,
		Error:   body,
	}, log)
}

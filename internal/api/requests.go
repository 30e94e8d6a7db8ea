package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"gymlink-api/internal/common/errors"
	"gymlink-api/internal/common/validation"
)

const maxBodyBytes = 64 << 10

type naturalSearchRequest struct {
	Query string `json:"query" validate:"required"`
}

type chatbotRequest struct {
	Question string `json:"question" validate:"required"`
}

// decodeBody decodes and validates a JSON body. A missing required field maps to
// QUERY_REQUIRED so blank and absent queries fail the same way.
func (h *handlers) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.NewInvalidRequestBodyError(err.Error())
	}

	err := h.validator.Validate(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validation.FieldErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewInvalidRequestBodyError(err.Error())
	}
	for field, msg := range fieldErrs {
		if msg == "is required" {
			return errors.NewQueryRequiredError(field)
		}
	}
	return errors.NewInvalidRequestBodyError(fieldErrs.Error())
}

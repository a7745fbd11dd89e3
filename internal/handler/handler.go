// Package handler contains the HTTP handlers for the REST API. Handlers
// decode and validate requests, dispatch to use cases, and translate the use
// case errors into status codes. All bodies are written through pkg/httpx.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vorapat/event-registry-api/pkg/httpx"
	"github.com/vorapat/event-registry-api/pkg/validate"
)

// decodeJSON parses the request body into v. A malformed or empty body is a
// client error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// writeValidationError maps a validation failure onto the response: a missing
// required field is a 400, any other rule failure is a 422.
func writeValidationError(w http.ResponseWriter, err error) {
	var fieldErrs *validate.FieldErrors
	if errors.As(err, &fieldErrs) {
		status := http.StatusUnprocessableEntity
		if fieldErrs.Required {
			status = http.StatusBadRequest
		}
		httpx.FieldErrors(w, status, "validation failed", fieldErrs.Fields)
		return
	}

	httpx.Internal(w)
}

type messageResponse struct {
	Message string `json:"message"`
}

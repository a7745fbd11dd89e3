// Package httpx shapes every JSON body this service writes, success and
// failure alike, so no handler formats a response on its own.
package httpx

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body with the given status code. The message is
// the only detail exposed to the client.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Error: message})
}

// FieldErrors writes a validation failure with per-field messages.
func FieldErrors(w http.ResponseWriter, status int, message string, fields map[string]string) {
	JSON(w, status, errorBody{Error: message, Fields: fields})
}

// Internal writes the generic persistence/internal failure body. Internals
// are never exposed to the client.
func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "something went wrong, please try again later")
}

// NoContent writes an empty 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

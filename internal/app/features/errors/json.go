// internal/app/features/errors/json.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/npoconnect/internal/app/system/limits"
)

type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg} with the given status.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// DecodeJSON reads a JSON request body into v, rejecting unknown fields and
// bodies over limits.MaxJSONBody.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return DecodeJSONLimit(w, r, v, limits.MaxJSONBody)
}

// DecodeJSONLimit is DecodeJSON with an explicit body cap.
func DecodeJSONLimit(w http.ResponseWriter, r *http.Request, v any, max int64) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, max))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

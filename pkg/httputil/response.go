package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope for every failed request.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteErrorMessage writes a JSON error envelope with a message
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// WriteFieldErrors writes a JSON error envelope with a field→reason map
func WriteFieldErrors(w http.ResponseWriter, status int, message string, fields map[string]string) {
	WriteJSON(w, status, ErrorResponse{Success: false, Message: message, Errors: fields})
}

// WriteInternalError writes a generic 500 without leaking internals
func WriteInternalError(w http.ResponseWriter) {
	WriteErrorMessage(w, http.StatusInternalServerError, "internal server error")
}

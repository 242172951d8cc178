package httputil

import (
	"encoding/json"
	"net/http"
)

// ParseJSON decodes JSON from the request body into the destination
func ParseJSON(r *http.Request, dest interface{}) error {
	return json.NewDecoder(r.Body).Decode(dest)
}

// ParseJSONOrError decodes JSON and writes a 400 envelope on failure
func ParseJSONOrError(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := ParseJSON(r, dest); err != nil {
		WriteErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// Package api holds the JSON response helpers shared by every handler
// package: a plain writer and the {message, error?} error envelope.
package api

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes the standard error envelope. The underlying error text
// is echoed when present, for debuggability.
func Error(w http.ResponseWriter, status int, message string, err error) {
	body := errorBody{Message: message}
	if err != nil {
		body.Err = err.Error()
	}
	JSON(w, status, body)
}

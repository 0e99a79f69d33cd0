package common

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse carries the error kind plus the offending identifier so
// the transport layer can render a helpful message.
type ErrorResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

func RespondWithError(w http.ResponseWriter, err error, identifier string) {
	RespondWithJSON(w, HTTPStatusFromError(err), ErrorResponse{
		Error:      err.Error(),
		Kind:       Kind(err),
		Identifier: identifier,
	})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

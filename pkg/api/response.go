package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ezbase/ezbase/pkg/domain"
)

// Envelope is the response shape for every JSON endpoint. Exactly one of
// Error and Data is non-null.
type Envelope struct {
	Error interface{} `json:"error"`
	Data  interface{} `json:"data"`
}

// WriteData writes a success envelope
func WriteData(w http.ResponseWriter, statusCode int, data interface{}) {
	writeEnvelope(w, statusCode, Envelope{Error: nil, Data: data})
}

// WriteErrorMessage writes a failure envelope with an explicit message
func WriteErrorMessage(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, statusCode, Envelope{Error: message, Data: nil})
}

// WriteError maps an error to a status code and writes a failure envelope.
// The error field is always populated; internal causes are logged rather
// than echoed to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %v", err)
		message = "internal server error"
	}
	writeEnvelope(w, status, Envelope{Error: message, Data: nil})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope)
}

// statusForError maps the error taxonomy to HTTP status codes
func statusForError(err error) int {
	switch {
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case domain.IsAuth(err):
		return http.StatusUnauthorized
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsConflict(err):
		return http.StatusConflict
	case domain.IsExternal(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

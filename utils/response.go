package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"solstice/apperr"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithAppError maps an application error onto the wire, logging the
// full detail when the error is internal.
func RespondWithAppError(w http.ResponseWriter, err error) {
	code := apperr.Status(err)
	if code >= http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	RespondWithError(w, code, apperr.Message(err))
}

package api

import (
	"encoding/json"
	"net/http"

	apperrors "personalsite/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := apperrors.StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	http.Error(w, msg, status)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

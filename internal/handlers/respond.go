package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dias221467/SkillSharing_Backend/internal/services"
	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Failed to encode response")
	}
}

// writeServiceError maps the declared service error kinds to 400/404; anything else is a 500.
func writeServiceError(w http.ResponseWriter, log *logrus.Entry, err error, action string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		log.WithError(err).Warn(action + ": invalid input")
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		log.WithError(err).Warn(action + ": not found")
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.WithError(err).Error(action + " failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

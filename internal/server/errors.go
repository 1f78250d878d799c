package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"todolist/internal/db/models"
	"todolist/internal/logging"
	"todolist/internal/services"
)

// ErrorResponse is the structured payload for every error status.
// Details carries the request path.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Details   string    `json:"details"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Message:   message,
		Details:   r.URL.Path,
	})
}

// writeError translates a domain error to its HTTP status. Anything
// outside the taxonomy is a 500 and gets logged with its cause; the
// client only sees a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *services.NotFoundError
	var alreadyExists *services.AlreadyExistsError
	var enumNotFound *models.EnumNotFoundError

	switch {
	case errors.As(err, &notFound):
		writeErrorStatus(w, r, http.StatusNotFound, notFound.Error())
	case errors.As(err, &alreadyExists):
		writeErrorStatus(w, r, http.StatusConflict, alreadyExists.Error())
	case errors.As(err, &enumNotFound):
		writeErrorStatus(w, r, http.StatusUnprocessableEntity, enumNotFound.Error())
	default:
		logging.Logger.Errorf("Unhandled error on %s %s: %v", r.Method, r.URL.Path, err)
		writeErrorStatus(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

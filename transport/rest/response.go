package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// StatusOf - maps domain errors to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, tictactoe.ErrOutOfRange),
		errors.Is(err, tictactoe.ErrInvalidMove),
		errors.Is(err, tictactoe.ErrGameAlreadyComplete):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrInvalidEmail),
		errors.Is(err, apperror.ErrWeakPassword):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotInGame):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrConcurrencyConflict),
		errors.Is(err, apperror.ErrGameFull),
		errors.Is(err, apperror.ErrMarkerTaken),
		errors.Is(err, apperror.ErrAlreadyAssigned),
		errors.Is(err, apperror.ErrEmailTaken),
		errors.Is(err, apperror.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidSession),
		errors.Is(err, apperror.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

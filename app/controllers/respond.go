package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"userbase/app/repo"
	"userbase/app/services"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}

// statusFor maps service errors onto HTTP statuses and client-safe
// messages. Anything unrecognized is an internal error; the original
// never reaches the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, repo.ErrDuplicateEmail):
		return http.StatusConflict, "email already exists"
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, services.ErrEmptyUpdate):
		return http.StatusBadRequest, "at least one field must be provided"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func logInternal(logger zerolog.Logger, r *http.Request, err error, status int) {
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	}
}

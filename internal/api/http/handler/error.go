package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/driveassist/auth-server/internal/model"
	"github.com/driveassist/auth-server/internal/provider"
)

// writeError maps domain errors to HTTP statuses. Every provider-facing
// failure is user-correctable (re-authenticate), never retried here.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, model.ErrAuthExchangeFailed):
		status = http.StatusUnauthorized
		message = "authentication failed, restart login"
	case errors.Is(err, model.ErrInvalidSession):
		status = http.StatusUnauthorized
		message = "invalid session token"
	case errors.Is(err, model.ErrNoRefreshCredential),
		errors.Is(err, model.ErrRefreshRevoked):
		status = http.StatusUnauthorized
		message = "session cannot be renewed, login again"
	case errors.Is(err, model.ErrExpiredToken),
		errors.Is(err, model.ErrMalformedToken):
		status = http.StatusUnauthorized
		message = "invalid session token"
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, model.ErrMissingRefreshToken):
		// First consent came back without a refresh token; a session
		// the server can never renew is a server-side failure.
		status = http.StatusInternalServerError
		message = "authentication incomplete, retry login"
	default:
		var provErr *provider.Error
		if errors.As(err, &provErr) && provErr.StatusCode == http.StatusUnauthorized {
			status = http.StatusUnauthorized
			message = "provider access expired, refresh the session"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

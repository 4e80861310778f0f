package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/driveassist/auth-server/internal/logger"
	"github.com/driveassist/auth-server/internal/model"
)

// SessionVerifier resolves user IDs from live session tokens.
type SessionVerifier interface {
	VerifySession(ctx context.Context, sessionToken string) (uuid.UUID, error)
}

// Authenticate validates bearer session tokens and injects the user ID
// into the request context.
type Authenticate struct {
	verifier       SessionVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier SessionVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handle parses the Authorization header, validates the session token
// and passes the request on with the user ID in context. An expired
// token is rejected here; clients are expected to hit the refresh
// endpoint and retry.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" || tokenString == r.Header.Get("Authorization") {
			http.Error(w, "missing authorization token", http.StatusUnauthorized)
			return
		}

		userID, err := m.verifier.VerifySession(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: rejected session token",
				"error", err.Error())
			http.Error(w, "invalid authorization token", http.StatusUnauthorized)
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionTokenManager creates and verifies the server's own signed
// session credentials.
type SessionTokenManager interface {
	Issue(userID uuid.UUID, provider string, ttl time.Duration) (string, error)
	// Decode verifies the token signature unconditionally. When
	// ignoreExpiry is true an expired but otherwise valid token is
	// accepted; a malformed or mis-signed token is always rejected.
	Decode(token string, ignoreExpiry bool) (SessionClaims, error)
}

// SessionClaims is the decoded claim set of a session token.
type SessionClaims struct {
	UserID    uuid.UUID
	Provider  string
	ExpiresAt time.Time
}

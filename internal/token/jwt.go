package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/driveassist/auth-server/internal/model"
)

// Claims represents session token claims with the user ID and the
// provider tag the session was established through.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Provider string    `json:"provider"`
}

// JWT implements SessionTokenManager backed by symmetric HMAC. The
// secret is loaded once at startup and never rotated at runtime.
type JWT struct {
	secretKey string
}

// NewJWT creates a new session token manager with the provided secret key.
func NewJWT(secretKey string) model.SessionTokenManager {
	return &JWT{secretKey: secretKey}
}

// Issue creates a signed session token for the user with the given TTL.
func (j *JWT) Issue(userID uuid.UUID, provider string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Provider: provider,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Decode verifies the token signature and extracts the session claims.
// The signature check is unconditional; only the expiry check is
// skipped when ignoreExpiry is set, so an expired session token can
// still be trusted as the trigger for a refresh.
func (j *JWT) Decode(tokenString string, ignoreExpiry bool) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return model.SessionClaims{}, fmt.Errorf("%w: %w", model.ErrMalformedToken, err)
	}
	if !token.Valid {
		return model.SessionClaims{}, model.ErrMalformedToken
	}
	if claims.UserID == uuid.Nil || claims.ExpiresAt == nil {
		return model.SessionClaims{}, model.ErrMalformedToken
	}

	expiresAt := claims.ExpiresAt.Time
	if !ignoreExpiry && time.Now().After(expiresAt) {
		return model.SessionClaims{}, model.ErrExpiredToken
	}

	return model.SessionClaims{
		UserID:    claims.UserID,
		Provider:  claims.Provider,
		ExpiresAt: expiresAt,
	}, nil
}

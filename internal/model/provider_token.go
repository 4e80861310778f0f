package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProviderTokenStore persists the latest provider credential pair per user.
type ProviderTokenStore interface {
	Get(ctx context.Context, userID uuid.UUID, provider string) (ProviderToken, error)
	// Upsert overwrites the access token unconditionally and the refresh
	// token only when a non-empty new value is supplied. Returns
	// ErrMissingRefreshToken when asked to create a brand-new record
	// without a refresh token.
	Upsert(ctx context.Context, userID uuid.UUID, provider, accessToken, refreshToken string) error
}

// ProviderToken is the most recent access/refresh pair obtained from a
// provider for a user. RefreshToken is empty when the provider never
// granted one.
type ProviderToken struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Provider     string
	AccessToken  string
	RefreshToken string
	IssuedAt     time.Time
	UpdatedAt    time.Time
}

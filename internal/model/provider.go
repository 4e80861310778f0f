package model

import "context"

// ProviderClient speaks the OAuth2 token-exchange and refresh protocol
// for one identity provider. Implementations perform no retries; retry
// policy belongs to the caller.
type ProviderClient interface {
	// LoginURL builds the consent screen URL carrying the given state.
	LoginURL(state string) string
	ExchangeCode(ctx context.Context, code string) (ProviderTokens, error)
	FetchIdentity(ctx context.Context, accessToken string) (Identity, error)
	RefreshToken(ctx context.Context, refreshToken string) (ProviderTokens, error)
}

// ProviderTokens is a credential pair returned by a provider. Refresh
// may be empty: providers commonly return a refresh token only on the
// first consent.
type ProviderTokens struct {
	Access  string
	Refresh string
}

// Identity is the user identity resolved from a provider's userinfo
// endpoint.
type Identity struct {
	ExternalID  string
	Email       string
	DisplayName string
}

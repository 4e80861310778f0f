package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/driveassist/auth-server/internal/logger"
	"github.com/driveassist/auth-server/internal/metrics"
	"github.com/driveassist/auth-server/internal/model"
	"github.com/driveassist/auth-server/internal/provider"
)

// SessionResult is returned to the caller after a successful sign-in
// or refresh. It never carries provider tokens.
type SessionResult struct {
	SessionToken string        `json:"session_token"`
	User         model.Summary `json:"user"`
}

// Auth orchestrates the provider client, user store, token vault and
// session codec for sign-in and session refresh. It holds no mutable
// state; the stores are the concurrency arbiters.
type Auth struct {
	users      model.UserStore
	vault      model.ProviderTokenStore
	providers  *provider.Registry
	sessions   model.SessionTokenManager
	sessionTTL time.Duration
	metrics    metrics.Recorder
	logger     *logger.Logger
}

func NewAuth(
	users model.UserStore,
	vault model.ProviderTokenStore,
	providers *provider.Registry,
	sessions model.SessionTokenManager,
	sessionTTL time.Duration,
	metrics metrics.Recorder,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:      users,
		vault:      vault,
		providers:  providers,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		metrics:    metrics,
		logger:     logger,
	}
}

// LoginURL builds the provider consent URL for the given state blob.
func (a *Auth) LoginURL(providerTag, state string) (string, error) {
	client, err := a.providers.Get(providerTag)
	if err != nil {
		return "", err
	}
	return client.LoginURL(state), nil
}

// SignIn exchanges an authorization code for a session. It resolves or
// creates the user, stores the provider credential pair and issues a
// session token.
func (a *Auth) SignIn(ctx context.Context, providerTag, code string) (SessionResult, error) {
	a.logger.Debug("Auth service: starting sign-in", "provider", providerTag)

	client, err := a.providers.Get(providerTag)
	if err != nil {
		return SessionResult{}, err
	}

	tokens, err := client.ExchangeCode(ctx, code)
	if err != nil {
		a.logger.Error("Auth service: code exchange failed",
			"provider", providerTag,
			"error", err.Error())
		a.recordRejection(err, "code exchange")
		a.metrics.RecordSignIn("exchange_failed")
		return SessionResult{}, fmt.Errorf("%w: %w", model.ErrAuthExchangeFailed, err)
	}

	identity, err := client.FetchIdentity(ctx, tokens.Access)
	if err != nil {
		a.logger.Error("Auth service: identity fetch failed",
			"provider", providerTag,
			"error", err.Error())
		a.recordRejection(err, "userinfo")
		a.metrics.RecordSignIn("identity_failed")
		return SessionResult{}, fmt.Errorf("%w: %w", model.ErrAuthExchangeFailed, err)
	}

	user, err := a.resolveUser(ctx, identity)
	if err != nil {
		a.metrics.RecordSignIn("store_failed")
		return SessionResult{}, err
	}

	if err := a.vault.Upsert(ctx, user.ID, providerTag, tokens.Access, tokens.Refresh); err != nil {
		a.logger.Error("Auth service: failed to store provider tokens",
			"user_id", user.ID,
			"provider", providerTag,
			"error", err.Error())
		a.metrics.RecordSignIn("store_failed")
		return SessionResult{}, fmt.Errorf("failed to store provider tokens: %w", err)
	}

	sessionToken, err := a.sessions.Issue(user.ID, providerTag, a.sessionTTL)
	if err != nil {
		a.metrics.RecordSignIn("issue_failed")
		return SessionResult{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: sign-in completed",
		"user_id", user.ID,
		"provider", providerTag)
	a.metrics.RecordSignIn("success")

	return SessionResult{SessionToken: sessionToken, User: user.Summary()}, nil
}

// resolveUser finds the user by email or creates one on first login.
// Two concurrent first-logins for the same email converge on a single
// row: the loser of the insert race re-fetches and proceeds.
func (a *Auth) resolveUser(ctx context.Context, identity model.Identity) (model.User, error) {
	user, err := a.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	now := time.Now()
	user, err = a.users.Create(ctx, model.User{
		ID:          uuid.New(),
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if errors.Is(err, model.ErrDuplicateEmail) {
		a.logger.Debug("Auth service: concurrent signup detected, re-fetching user",
			"email", identity.Email)
		user, err = a.users.GetByEmail(ctx, identity.Email)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to re-fetch user after duplicate: %w", err)
		}
		return user, nil
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: new user created",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// Refresh renews a session from an expired session token using the
// stored provider refresh token. The expired token must still carry a
// valid signature; expiry alone is the expected trigger, not an error.
func (a *Auth) Refresh(ctx context.Context, expiredToken string) (SessionResult, error) {
	claims, err := a.sessions.Decode(expiredToken, true)
	if err != nil {
		a.metrics.RecordRefresh("invalid_session")
		return SessionResult{}, fmt.Errorf("%w: %w", model.ErrInvalidSession, err)
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		a.metrics.RecordRefresh("invalid_session")
		return SessionResult{}, model.ErrInvalidSession
	}
	if err != nil {
		return SessionResult{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	stored, err := a.vault.Get(ctx, user.ID, claims.Provider)
	if errors.Is(err, model.ErrNotFound) {
		a.metrics.RecordRefresh("no_refresh_credential")
		return SessionResult{}, model.ErrNoRefreshCredential
	}
	if err != nil {
		return SessionResult{}, fmt.Errorf("failed to get provider tokens: %w", err)
	}
	if stored.RefreshToken == "" {
		a.metrics.RecordRefresh("no_refresh_credential")
		return SessionResult{}, model.ErrNoRefreshCredential
	}

	client, err := a.providers.Get(claims.Provider)
	if err != nil {
		return SessionResult{}, err
	}

	tokens, err := client.RefreshToken(ctx, stored.RefreshToken)
	if err != nil {
		a.logger.Error("Auth service: provider refused refresh token",
			"user_id", user.ID,
			"provider", claims.Provider,
			"error", err.Error())
		a.recordRejection(err, "token refresh")
		a.metrics.RecordRefresh("revoked")
		return SessionResult{}, fmt.Errorf("%w: %w", model.ErrRefreshRevoked, err)
	}

	// The refresh-token-preserving rule applies: most refresh grants
	// omit a new refresh token and the stored one stays.
	if err := a.vault.Upsert(ctx, user.ID, claims.Provider, tokens.Access, tokens.Refresh); err != nil {
		a.metrics.RecordRefresh("store_failed")
		return SessionResult{}, fmt.Errorf("failed to rotate provider tokens: %w", err)
	}

	sessionToken, err := a.sessions.Issue(user.ID, claims.Provider, a.sessionTTL)
	if err != nil {
		a.metrics.RecordRefresh("issue_failed")
		return SessionResult{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	a.logger.Info("Auth service: session refreshed",
		"user_id", user.ID,
		"provider", claims.Provider)
	a.metrics.RecordRefresh("success")

	return SessionResult{SessionToken: sessionToken, User: user.Summary()}, nil
}

// CurrentUser resolves a user summary by ID for authenticated requests.
func (a *Auth) CurrentUser(ctx context.Context, userID uuid.UUID) (model.Summary, error) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user.Summary(), nil
}

// VerifySession validates a live session token and returns the user ID.
// Used by the authentication middleware.
func (a *Auth) VerifySession(ctx context.Context, sessionToken string) (uuid.UUID, error) {
	claims, err := a.sessions.Decode(sessionToken, false)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}

func (a *Auth) recordRejection(err error, operation string) {
	var provErr *provider.Error
	if errors.As(err, &provErr) {
		a.metrics.RecordProviderRejection(operation)
	}
}

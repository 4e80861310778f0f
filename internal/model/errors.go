package model

import "errors"

// Storage-level errors.
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrMissingRefreshToken = errors.New("refresh token required for new record")
)

// Authentication flow errors surfaced to callers.
var (
	// ErrAuthExchangeFailed means the provider rejected the
	// authorization code or was unreachable during sign-in. The user
	// must restart the login.
	ErrAuthExchangeFailed = errors.New("authorization exchange failed")
	// ErrInvalidSession means the presented session token is malformed
	// or mis-signed. The client must re-login.
	ErrInvalidSession = errors.New("invalid session token")
	// ErrNoRefreshCredential means no refresh token is on file for the
	// user. The user must re-login via the full OAuth flow.
	ErrNoRefreshCredential = errors.New("no refresh credential on file")
	// ErrRefreshRevoked means the provider refused the stored refresh
	// token. Terminal: force a full re-login, do not retry.
	ErrRefreshRevoked = errors.New("provider refresh token revoked")
)

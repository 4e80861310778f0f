package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/driveassist/auth-server/internal/model"
)

// SessionTokenManager is a mock of model.SessionTokenManager.
type SessionTokenManager struct {
	mock.Mock
}

func (m *SessionTokenManager) Issue(userID uuid.UUID, provider string, ttl time.Duration) (string, error) {
	args := m.Called(userID, provider, ttl)
	return args.String(0), args.Error(1)
}

func (m *SessionTokenManager) Decode(token string, ignoreExpiry bool) (model.SessionClaims, error) {
	args := m.Called(token, ignoreExpiry)
	return args.Get(0).(model.SessionClaims), args.Error(1)
}

// ProviderClient is a mock of model.ProviderClient.
type ProviderClient struct {
	mock.Mock
}

func (m *ProviderClient) LoginURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *ProviderClient) ExchangeCode(ctx context.Context, code string) (model.ProviderTokens, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(model.ProviderTokens), args.Error(1)
}

func (m *ProviderClient) FetchIdentity(ctx context.Context, accessToken string) (model.Identity, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(model.Identity), args.Error(1)
}

func (m *ProviderClient) RefreshToken(ctx context.Context, refreshToken string) (model.ProviderTokens, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.ProviderTokens), args.Error(1)
}

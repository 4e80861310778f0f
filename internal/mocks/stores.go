// Package mocks provides testify mocks for the model interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/driveassist/auth-server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

// ProviderTokenStore is a mock of model.ProviderTokenStore.
type ProviderTokenStore struct {
	mock.Mock
}

func (m *ProviderTokenStore) Get(ctx context.Context, userID uuid.UUID, provider string) (model.ProviderToken, error) {
	args := m.Called(ctx, userID, provider)
	return args.Get(0).(model.ProviderToken), args.Error(1)
}

func (m *ProviderTokenStore) Upsert(ctx context.Context, userID uuid.UUID, provider, accessToken, refreshToken string) error {
	args := m.Called(ctx, userID, provider, accessToken, refreshToken)
	return args.Error(0)
}

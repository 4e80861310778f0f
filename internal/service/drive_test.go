package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/driveassist/auth-server/internal/drive"
	"github.com/driveassist/auth-server/internal/mocks"
	"github.com/driveassist/auth-server/internal/model"
	"github.com/driveassist/auth-server/internal/provider"
	"github.com/driveassist/auth-server/internal/testutil"
)

type fakeDriveLister struct {
	gotToken string
	files    []drive.File
	err      error
}

func (f *fakeDriveLister) ListFiles(_ context.Context, accessToken string, _ int) ([]drive.File, error) {
	f.gotToken = accessToken
	return f.files, f.err
}

func TestDrive_ListFiles(t *testing.T) {
	ctx := context.Background()
	vault := &mocks.ProviderTokenStore{}
	lister := &fakeDriveLister{files: []drive.File{{ID: "f1", Name: "notes.txt"}}}
	userID := uuid.New()

	vault.On("Get", mock.Anything, userID, "google").
		Return(model.ProviderToken{UserID: userID, AccessToken: "a1", RefreshToken: "r1"}, nil)

	d := NewDrive(vault, lister, "google", testutil.MakeNoopLogger())

	files, err := d.ListFiles(ctx, userID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a1", lister.gotToken)
}

func TestDrive_ListFiles_NoTokens(t *testing.T) {
	ctx := context.Background()
	vault := &mocks.ProviderTokenStore{}
	userID := uuid.New()

	vault.On("Get", mock.Anything, userID, "google").
		Return(model.ProviderToken{}, model.ErrNotFound)

	d := NewDrive(vault, &fakeDriveLister{}, "google", testutil.MakeNoopLogger())

	_, err := d.ListFiles(ctx, userID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestDrive_ListFiles_ExpiredAccessToken(t *testing.T) {
	ctx := context.Background()
	vault := &mocks.ProviderTokenStore{}
	userID := uuid.New()
	provErr := &provider.Error{Operation: "drive list", StatusCode: 401, Body: "invalid_token"}

	vault.On("Get", mock.Anything, userID, "google").
		Return(model.ProviderToken{UserID: userID, AccessToken: "stale"}, nil)

	d := NewDrive(vault, &fakeDriveLister{err: provErr}, "google", testutil.MakeNoopLogger())

	_, err := d.ListFiles(ctx, userID)
	var got *provider.Error
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 401, got.StatusCode)
}

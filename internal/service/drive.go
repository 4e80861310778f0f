package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/driveassist/auth-server/internal/drive"
	"github.com/driveassist/auth-server/internal/logger"
	"github.com/driveassist/auth-server/internal/model"
)

// DriveLister fetches Drive file references with a provider access
// token.
type DriveLister interface {
	ListFiles(ctx context.Context, accessToken string, pageSize int) ([]drive.File, error)
}

// Drive lists a user's files using the access token on file in the
// vault.
type Drive struct {
	vault       model.ProviderTokenStore
	client      DriveLister
	providerTag string
	logger      *logger.Logger
}

func NewDrive(vault model.ProviderTokenStore, client DriveLister, providerTag string, logger *logger.Logger) *Drive {
	return &Drive{
		vault:       vault,
		client:      client,
		providerTag: providerTag,
		logger:      logger,
	}
}

// ListFiles returns the first page of the user's Drive files. A
// provider 401 propagates to the caller; it means the stored access
// token has expired and the session should be refreshed first.
func (d *Drive) ListFiles(ctx context.Context, userID uuid.UUID) ([]drive.File, error) {
	stored, err := d.vault.Get(ctx, userID, d.providerTag)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider tokens: %w", err)
	}

	files, err := d.client.ListFiles(ctx, stored.AccessToken, 10)
	if err != nil {
		d.logger.Error("Drive service: file listing failed",
			"user_id", userID,
			"error", err.Error())
		return nil, err
	}

	return files, nil
}

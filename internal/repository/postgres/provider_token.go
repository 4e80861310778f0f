package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/driveassist/auth-server/internal/model"
)

var _ model.ProviderTokenStore = (*ProviderTokenRepository)(nil)

type ProviderTokenRepository struct {
	db *Connection
}

func NewProviderTokenRepository(db *Connection) *ProviderTokenRepository {
	return &ProviderTokenRepository{db: db}
}

func (r *ProviderTokenRepository) Get(ctx context.Context, userID uuid.UUID, provider string) (model.ProviderToken, error) {
	const query = `
        SELECT id, user_id, provider, access_token, COALESCE(refresh_token, ''), issued_at, updated_at
        FROM provider_tokens WHERE user_id = $1 AND provider = $2
    `
	var pt model.ProviderToken
	err := r.db.QueryRow(ctx, query, userID, provider).Scan(
		&pt.ID, &pt.UserID, &pt.Provider, &pt.AccessToken, &pt.RefreshToken,
		&pt.IssuedAt, &pt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ProviderToken{}, model.ErrNotFound
		}
		return model.ProviderToken{}, fmt.Errorf("failed to get provider token: %w", err)
	}
	return pt, nil
}

// Upsert stores the latest credential pair for a user. The access
// token always wins; the stored refresh token survives an update that
// supplies none, because providers return a refresh token only on
// first consent. Creating a brand-new record without a refresh token
// fails: a session the system can never renew must not be persisted.
func (r *ProviderTokenRepository) Upsert(ctx context.Context, userID uuid.UUID, provider, accessToken, refreshToken string) error {
	if refreshToken == "" {
		const update = `
            UPDATE provider_tokens SET access_token = $3, updated_at = NOW()
            WHERE user_id = $1 AND provider = $2
        `
		tag, err := r.db.Exec(ctx, update, userID, provider, accessToken)
		if err != nil {
			return fmt.Errorf("failed to update provider token: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrMissingRefreshToken
		}
		return nil
	}

	const upsert = `
        INSERT INTO provider_tokens (id, user_id, provider, access_token, refresh_token, issued_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        ON CONFLICT (user_id, provider) DO UPDATE SET
            access_token = EXCLUDED.access_token,
            refresh_token = EXCLUDED.refresh_token,
            updated_at = NOW()
    `
	if _, err := r.db.Exec(ctx, upsert, uuid.New(), userID, provider, accessToken, refreshToken); err != nil {
		return fmt.Errorf("failed to upsert provider token: %w", err)
	}
	return nil
}

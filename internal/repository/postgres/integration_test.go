//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/driveassist/auth-server/internal/model"
	repo "github.com/driveassist/auth-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "driveassist_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/driveassist_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string) model.User {
	return model.User{
		ID:          uuid.New(),
		Email:       email,
		DisplayName: "Test User",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	t.Run("create_and_get", func(t *testing.T) {
		u := newUser("user@example.com")
		saved, err := ur.Create(ctx, u)
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)

		byEmail, err := ur.GetByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		u := newUser("dup@example.com")
		_, err := ur.Create(ctx, u)
		require.NoError(t, err)

		_, err = ur.Create(ctx, newUser("dup@example.com"))
		require.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := ur.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)

		_, err = ur.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestProviderTokenRepository(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	tr := repo.NewProviderTokenRepository(conn)

	owner, err := ur.Create(ctx, newUser("tokens@example.com"))
	require.NoError(t, err)

	t.Run("get_before_first_upsert", func(t *testing.T) {
		_, err := tr.Get(ctx, owner.ID, "google")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("new_record_without_refresh_rejected", func(t *testing.T) {
		err := tr.Upsert(ctx, owner.ID, "google", "access-1", "")
		require.ErrorIs(t, err, model.ErrMissingRefreshToken)

		_, err = tr.Get(ctx, owner.ID, "google")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("insert_with_refresh", func(t *testing.T) {
		require.NoError(t, tr.Upsert(ctx, owner.ID, "google", "access-1", "refresh-1"))

		got, err := tr.Get(ctx, owner.ID, "google")
		require.NoError(t, err)
		require.Equal(t, "access-1", got.AccessToken)
		require.Equal(t, "refresh-1", got.RefreshToken)
	})

	t.Run("empty_refresh_preserves_stored_refresh", func(t *testing.T) {
		require.NoError(t, tr.Upsert(ctx, owner.ID, "google", "access-2", ""))

		got, err := tr.Get(ctx, owner.ID, "google")
		require.NoError(t, err)
		require.Equal(t, "access-2", got.AccessToken)
		require.Equal(t, "refresh-1", got.RefreshToken)
	})

	t.Run("new_refresh_replaces_stored_refresh", func(t *testing.T) {
		require.NoError(t, tr.Upsert(ctx, owner.ID, "google", "access-3", "refresh-2"))

		got, err := tr.Get(ctx, owner.ID, "google")
		require.NoError(t, err)
		require.Equal(t, "access-3", got.AccessToken)
		require.Equal(t, "refresh-2", got.RefreshToken)
	})

	t.Run("records_scoped_by_provider", func(t *testing.T) {
		other, err := ur.Create(ctx, newUser("other@example.com"))
		require.NoError(t, err)
		require.NoError(t, tr.Upsert(ctx, other.ID, "google", "other-access", "other-refresh"))

		got, err := tr.Get(ctx, owner.ID, "google")
		require.NoError(t, err)
		require.Equal(t, "access-3", got.AccessToken)

		_, err = tr.Get(ctx, owner.ID, "github")
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

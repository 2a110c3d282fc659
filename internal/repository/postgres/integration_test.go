//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/texcode-accounts/internal/model"
	repo "github.com/dtroode/texcode-accounts/internal/repository/postgres"
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
				"POSTGRES_DB":       "texcode_test",
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
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/texcode_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestAccountRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn, repo.WithMaxConns(4))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ar := repo.NewAccountRepository(conn)
	now := time.Now().UTC().Truncate(time.Microsecond)

	saved, err := ar.Create(ctx, model.Account{
		Email:             "user@example.com",
		Role:              model.RoleAdmin,
		VerificationToken: "VT-1",
		CreatedAt:         now,
	})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	n, err := ar.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	byEmail, err := ar.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, saved.ID, byEmail.ID)

	byToken, err := ar.GetByVerificationToken(ctx, "VT-1")
	require.NoError(t, err)
	require.Equal(t, saved.ID, byToken.ID)

	reset := "RT-1"
	expired := now.Add(-time.Hour)
	saved.ResetToken = &reset
	saved.ResetTokenExpires = &expired
	saved.UpdatedAt = &now
	_, err = ar.Update(ctx, saved)
	require.NoError(t, err)

	byReset, err := ar.GetByResetToken(ctx, reset)
	require.NoError(t, err)
	require.Equal(t, saved.ID, byReset.ID)

	cleared, err := ar.ClearExpiredResetTokens(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), cleared)

	_, err = ar.GetByResetToken(ctx, reset)
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, ar.Delete(ctx, saved.ID))
	require.ErrorIs(t, ar.Delete(ctx, saved.ID), model.ErrNotFound)
}

func TestNewConnection_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()

	first, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	require.NoError(t, second.Ping(ctx))
}

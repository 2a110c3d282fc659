package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/texcode-accounts/internal/model"
)

func strPtr(s string) *string { return &s }

func TestAccountRepository_CreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()

	a, err := r.Create(ctx, model.Account{Email: "a@x.com"})
	require.NoError(t, err)
	b, err := r.Create(ctx, model.Account{Email: "b@x.com"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAccountRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()

	created, err := r.Create(ctx, model.Account{
		Email:             "a@x.com",
		VerificationToken: "VT",
		ResetToken:        strPtr("RT"),
	})
	require.NoError(t, err)

	byID, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	byEmail, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = r.GetByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	byVT, err := r.GetByVerificationToken(ctx, "VT")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byVT.ID)

	byRT, err := r.GetByResetToken(ctx, "RT")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byRT.ID)

	_, err = r.GetByVerificationToken(ctx, "")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = r.GetByResetToken(ctx, "other")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()

	created, err := r.Create(ctx, model.Account{Email: "a@x.com", ResetToken: strPtr("RT")})
	require.NoError(t, err)

	*created.ResetToken = "mutated"

	stored, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "RT", *stored.ResetToken)
}

func TestAccountRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()

	created, err := r.Create(ctx, model.Account{Email: "a@x.com"})
	require.NoError(t, err)

	created.FirstName = "Ann"
	_, err = r.Update(ctx, created)
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)

	require.NoError(t, r.Delete(ctx, created.ID))
	assert.ErrorIs(t, r.Delete(ctx, created.ID), model.ErrNotFound)

	_, err = r.Update(ctx, created)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_ClearExpiredResetTokens(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	expired, err := r.Create(ctx, model.Account{Email: "old@x.com", ResetToken: strPtr("OLD"), ResetTokenExpires: &past})
	require.NoError(t, err)
	live, err := r.Create(ctx, model.Account{Email: "new@x.com", ResetToken: strPtr("NEW"), ResetTokenExpires: &future})
	require.NoError(t, err)

	n, err := r.ClearExpiredResetTokens(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := r.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ResetToken)
	assert.Nil(t, got.ResetTokenExpires)

	got, err = r.GetByID(ctx, live.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ResetToken)
	assert.Equal(t, "NEW", *got.ResetToken)
}

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/texcode-accounts/internal/mocks"
	"github.com/dtroode/texcode-accounts/internal/model"
	"github.com/dtroode/texcode-accounts/internal/testutil"
	"github.com/dtroode/texcode-accounts/internal/token"
)

func TestSession_Validate(t *testing.T) {
	tm := &mocks.TokenManager{}
	tm.On("ParseSessionToken", "good").Return(int64(42), nil).Once()
	tm.On("ParseSessionToken", "bad").Return(int64(0), model.ErrInvalidToken).Once()

	s := NewSession(tm, testutil.MakeNoopLogger())

	id, ok := s.Validate("good")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	id, ok = s.Validate("bad")
	assert.False(t, ok)
	assert.Zero(t, id)

	tm.AssertExpectations(t)
}

func TestSession_Validate_Expiry(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	jwt := token.NewJWT("secret", token.WithClock(func() time.Time { return now }))
	s := NewSession(jwt, testutil.MakeNoopLogger())

	tok, err := jwt.GenerateSessionToken(5)
	require.NoError(t, err)

	id, ok := s.Validate(tok)
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)

	now = issued.Add(token.SessionTTL)
	_, ok = s.Validate(tok)
	assert.False(t, ok)

	other := token.NewJWT("other-secret", token.WithClock(func() time.Time { return issued }))
	_, ok = NewSession(other, testutil.MakeNoopLogger()).Validate(tok)
	assert.False(t, ok)
}

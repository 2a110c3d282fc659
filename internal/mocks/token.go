package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

var _ model.TokenManager = (*TokenManager)(nil)

func (m *TokenManager) GenerateSessionToken(principalID int64) (string, error) {
	args := m.Called(principalID)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseSessionToken(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

// SecureTokenGenerator is a mock of model.SecureTokenGenerator.
// The taken predicate is not invoked; use the real generator to exercise it.
type SecureTokenGenerator struct {
	mock.Mock
}

var _ model.SecureTokenGenerator = (*SecureTokenGenerator)(nil)

func (m *SecureTokenGenerator) Generate(ctx context.Context, taken model.TakenFunc) (string, error) {
	args := m.Called(ctx, taken)
	return args.String(0), args.Error(1)
}

// NewTokenManager creates a TokenManager that asserts its expectations on cleanup.
func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(t, m)
	return m
}

// NewSecureTokenGenerator creates a SecureTokenGenerator that asserts its expectations on cleanup.
func NewSecureTokenGenerator(t testingT) *SecureTokenGenerator {
	m := &SecureTokenGenerator{}
	register(t, m)
	return m
}

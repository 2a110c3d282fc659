package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// ContextManager is a mock of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

var _ model.ContextManager = (*ContextManager)(nil)

func (m *ContextManager) SetPrincipalIDToContext(ctx context.Context, principalID int64) context.Context {
	args := m.Called(ctx, principalID)
	return args.Get(0).(context.Context)
}

func (m *ContextManager) GetPrincipalIDFromContext(ctx context.Context) (int64, bool) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Bool(1)
}

// NewContextManager creates a ContextManager that asserts its expectations on cleanup.
func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	register(t, m)
	return m
}

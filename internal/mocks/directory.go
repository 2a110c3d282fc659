package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// CredentialDirectory is a mock of model.CredentialDirectory.
type CredentialDirectory struct {
	mock.Mock
}

var _ model.CredentialDirectory = (*CredentialDirectory)(nil)

func (m *CredentialDirectory) FindByCredentials(ctx context.Context, username, password string) (model.Principal, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(model.Principal), args.Error(1)
}

func (m *CredentialDirectory) GetByID(ctx context.Context, id int64) (model.Principal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Principal), args.Error(1)
}

func (m *CredentialDirectory) All(ctx context.Context) ([]model.Principal, error) {
	args := m.Called(ctx)
	principals, _ := args.Get(0).([]model.Principal)
	return principals, args.Error(1)
}

// NewCredentialDirectory creates a CredentialDirectory that asserts its expectations on cleanup.
func NewCredentialDirectory(t testingT) *CredentialDirectory {
	m := &CredentialDirectory{}
	register(t, m)
	return m
}

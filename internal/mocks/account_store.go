package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// AccountStore is a mock of model.AccountStore.
type AccountStore struct {
	mock.Mock
}

var _ model.AccountStore = (*AccountStore)(nil)

func (m *AccountStore) GetByID(ctx context.Context, id int64) (model.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByResetToken(ctx context.Context, token string) (model.Account, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByVerificationToken(ctx context.Context, token string) (model.Account, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *AccountStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) Update(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AccountStore) ClearExpiredResetTokens(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// NewAccountStore creates a AccountStore that asserts its expectations on cleanup.
func NewAccountStore(t testingT) *AccountStore {
	m := &AccountStore{}
	register(t, m)
	return m
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// AccountService is a mock of handler.AccountService.
type AccountService struct {
	mock.Mock
}

func (m *AccountService) Authenticate(ctx context.Context, username, password string) (model.Session, bool, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(model.Session), args.Bool(1), args.Error(2)
}

func (m *AccountService) Register(ctx context.Context, params model.RegisterParams) (model.RegisterOutcome, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.RegisterOutcome), args.Error(1)
}

func (m *AccountService) GetAccount(ctx context.Context, id int64) (model.AccountView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.AccountView), args.Error(1)
}

func (m *AccountService) Update(ctx context.Context, id int64, upd model.AccountUpdate) (model.AccountView, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(model.AccountView), args.Error(1)
}

func (m *AccountService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AccountService) ForgotPassword(ctx context.Context, email, origin string) (model.ResetOutcome, error) {
	args := m.Called(ctx, email, origin)
	return args.Get(0).(model.ResetOutcome), args.Error(1)
}

func (m *AccountService) VerifyEmail(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *AccountService) ValidateResetToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AccountService) ListPrincipals(ctx context.Context) ([]model.Principal, error) {
	args := m.Called(ctx)
	principals, _ := args.Get(0).([]model.Principal)
	return principals, args.Error(1)
}

func (m *AccountService) GetPrincipal(ctx context.Context, id int64) (model.Principal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Principal), args.Error(1)
}

// NewAccountService creates a AccountService that asserts its expectations on cleanup.
func NewAccountService(t testingT) *AccountService {
	m := &AccountService{}
	register(t, m)
	return m
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// Mailer is a mock of model.Mailer.
type Mailer struct {
	mock.Mock
}

var _ model.Mailer = (*Mailer)(nil)

func (m *Mailer) Send(ctx context.Context, msg model.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// NewMailer creates a Mailer that asserts its expectations on cleanup.
func NewMailer(t testingT) *Mailer {
	m := &Mailer{}
	register(t, m)
	return m
}

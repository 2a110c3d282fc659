package mocks

import (
	"github.com/stretchr/testify/mock"
)

// SessionValidator is a mock of middleware.SessionValidator.
type SessionValidator struct {
	mock.Mock
}

func (m *SessionValidator) Validate(token string) (int64, bool) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Bool(1)
}

// NewSessionValidator creates a SessionValidator that asserts its expectations on cleanup.
func NewSessionValidator(t testingT) *SessionValidator {
	m := &SessionValidator{}
	register(t, m)
	return m
}

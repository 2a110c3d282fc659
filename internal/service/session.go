package service

import (
	"github.com/dtroode/texcode-accounts/internal/logger"
	"github.com/dtroode/texcode-accounts/internal/model"
)

// Session validates bearer session tokens for protected requests.
type Session struct {
	tokens model.TokenManager
	logger *logger.Logger
}

func NewSession(tokens model.TokenManager, logger *logger.Logger) *Session {
	return &Session{tokens: tokens, logger: logger}
}

// Validate returns the principal id carried by token. Any failure yields
// (0, false); the cause is only logged.
func (s *Session) Validate(token string) (int64, bool) {
	id, err := s.tokens.ParseSessionToken(token)
	if err != nil {
		s.logger.Debug("Session service: token rejected", "error", err.Error())
		return 0, false
	}
	return id, true
}

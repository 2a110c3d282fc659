package middleware

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/texcode-accounts/internal/logger"
	"github.com/dtroode/texcode-accounts/internal/model"
)

// SessionValidator resolves a principal id from a session token.
type SessionValidator interface {
	Validate(token string) (int64, bool)
}

// Authenticate validates bearer tokens and injects the principal id into context.
type Authenticate struct {
	sessions       SessionValidator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionValidator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the "authorization: Bearer <token>" header, validates the
// token and returns a context carrying the principal id.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}

	principalID, ok := m.sessions.Validate(token)
	if !ok {
		m.logger.Debug("Authenticate middleware: invalid session token")
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}

	return m.contextManager.SetPrincipalIDToContext(ctx, principalID), nil
}

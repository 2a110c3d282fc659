package context

import (
	"context"
)

// principalIDKey is the private context key holding the authenticated principal id.
type principalIDKey struct{}

// Manager stores and retrieves the authenticated principal id.
//
// The id lives in a context value rather than in incoming metadata, so a
// client cannot inject it through request headers.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipalIDToContext returns a copy of ctx carrying principalID.
func (m *Manager) SetPrincipalIDToContext(ctx context.Context, principalID int64) context.Context {
	return context.WithValue(ctx, principalIDKey{}, principalID)
}

// GetPrincipalIDFromContext returns the principal id stored by
// SetPrincipalIDToContext and whether it was present.
func (m *Manager) GetPrincipalIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(principalIDKey{}).(int64)
	return id, ok
}

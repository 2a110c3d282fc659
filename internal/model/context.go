package model

import "context"

type ContextManager interface {
	SetPrincipalIDToContext(ctx context.Context, principalID int64) context.Context
	GetPrincipalIDFromContext(ctx context.Context) (int64, bool)
}

package model

import "context"

// TokenManager issues and validates signed session tokens.
type TokenManager interface {
	GenerateSessionToken(principalID int64) (string, error)
	ParseSessionToken(token string) (int64, error)
}

// TakenFunc reports whether a candidate secure token is already in use.
type TakenFunc func(ctx context.Context, token string) (bool, error)

// SecureTokenGenerator produces random tokens unique under a caller predicate.
type SecureTokenGenerator interface {
	Generate(ctx context.Context, taken TakenFunc) (string, error)
}

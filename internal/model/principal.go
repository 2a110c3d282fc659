package model

import (
	"context"
	"time"
)

// CredentialDirectory holds the principals allowed to log in interactively.
// It is independent from AccountStore.
type CredentialDirectory interface {
	FindByCredentials(ctx context.Context, username, password string) (Principal, error)
	GetByID(ctx context.Context, id int64) (Principal, error)
	All(ctx context.Context) ([]Principal, error)
}

// Principal is a login identity from the credential directory.
type Principal struct {
	ID                int64
	FirstName         string
	LastName          string
	Username          string
	Password          string
	Role              Role
	CreatedAt         time.Time
	VerificationToken string
}

// Session is the result of a successful authentication.
type Session struct {
	Principal Principal
	Token     string
}

// Public returns a copy of p without the password.
func (p Principal) Public() Principal {
	p.Password = ""
	return p
}

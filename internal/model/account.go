package model

import (
	"context"
	"time"
)

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = 24 * time.Hour

// Role is an account or principal role.
type Role string

const (
	// RoleAdmin is granted to the first account ever registered.
	RoleAdmin Role = "Admin"
	// RoleUser is granted to every other account.
	RoleUser Role = "User"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByID(ctx context.Context, id int64) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByResetToken(ctx context.Context, token string) (Account, error)
	GetByVerificationToken(ctx context.Context, token string) (Account, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, account Account) (Account, error)
	Delete(ctx context.Context, id int64) error
	ClearExpiredResetTokens(ctx context.Context, before time.Time) (int64, error)
}

// Account represents a stored administrative identity.
//
// PasswordHash is reserved: nothing writes it and authentication never reads it.
type Account struct {
	ID                int64
	Title             string
	FirstName         string
	LastName          string
	Email             string
	AcceptTerms       bool
	Role              Role
	PasswordHash      string
	VerificationToken string
	VerifiedAt        *time.Time
	ResetToken        *string
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// IsVerified reports whether the account confirmed its email.
func (a Account) IsVerified() bool {
	return a.VerifiedAt != nil
}

// View returns the outward representation of the account.
func (a Account) View() AccountView {
	return AccountView{
		ID:         a.ID,
		Title:      a.Title,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Email:      a.Email,
		Role:       a.Role,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		IsVerified: a.IsVerified(),
	}
}

// AccountView is the account data returned through the API.
type AccountView struct {
	ID         int64
	Title      string
	FirstName  string
	LastName   string
	Email      string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	IsVerified bool
}

// RegisterParams contains fields accepted on registration.
type RegisterParams struct {
	Title       string
	FirstName   string
	LastName    string
	Email       string
	Password    string
	AcceptTerms bool
}

// AccountUpdate carries a partial update. Nil fields keep their stored value.
type AccountUpdate struct {
	Title     *string
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

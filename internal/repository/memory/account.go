package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dtroode/texcode-accounts/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

// AccountRepository keeps accounts in process memory. Every call is atomic
// on its own; sequences of calls are not.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[int64]model.Account
	nextID   int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[int64]model.Account),
	}
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return clone(account), nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (model.Account, error) {
	return r.find(func(a model.Account) bool { return a.Email == email })
}

func (r *AccountRepository) GetByResetToken(_ context.Context, token string) (model.Account, error) {
	return r.find(func(a model.Account) bool { return a.ResetToken != nil && *a.ResetToken == token })
}

func (r *AccountRepository) GetByVerificationToken(_ context.Context, token string) (model.Account, error) {
	return r.find(func(a model.Account) bool { return a.VerificationToken != "" && a.VerificationToken == token })
}

func (r *AccountRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.accounts), nil
}

func (r *AccountRepository) Create(_ context.Context, account model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	account.ID = r.nextID
	r.accounts[account.ID] = clone(account)

	return clone(account), nil
}

func (r *AccountRepository) Update(_ context.Context, account model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return model.Account{}, fmt.Errorf("failed to update account %d: %w", account.ID, model.ErrNotFound)
	}
	r.accounts[account.ID] = clone(account)

	return clone(account), nil
}

func (r *AccountRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return fmt.Errorf("failed to delete account %d: %w", id, model.ErrNotFound)
	}
	delete(r.accounts, id)

	return nil
}

func (r *AccountRepository) ClearExpiredResetTokens(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cleared int64
	for id, account := range r.accounts {
		if account.ResetTokenExpires == nil || !account.ResetTokenExpires.Before(before) {
			continue
		}
		account.ResetToken = nil
		account.ResetTokenExpires = nil
		r.accounts[id] = account
		cleared++
	}

	return cleared, nil
}

func (r *AccountRepository) find(match func(model.Account) bool) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		found model.Account
		ok    bool
	)
	for _, account := range r.accounts {
		if !match(account) {
			continue
		}
		// lowest id wins so lookups are stable when duplicates slipped in
		if !ok || account.ID < found.ID {
			found, ok = account, true
		}
	}
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return clone(found), nil
}

func clone(a model.Account) model.Account {
	if a.ResetToken != nil {
		v := *a.ResetToken
		a.ResetToken = &v
	}
	if a.ResetTokenExpires != nil {
		v := *a.ResetTokenExpires
		a.ResetTokenExpires = &v
	}
	if a.VerifiedAt != nil {
		v := *a.VerifiedAt
		a.VerifiedAt = &v
	}
	if a.UpdatedAt != nil {
		v := *a.UpdatedAt
		a.UpdatedAt = &v
	}
	return a
}

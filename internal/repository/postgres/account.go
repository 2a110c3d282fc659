package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/texcode-accounts/internal/model"
)

// Querier is the subset of pgxpool.Pool used by repositories.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db Querier
}

func NewAccountRepository(db Querier) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

const accountColumns = `id, title, first_name, last_name, email, accept_terms, role, password_hash,
		verification_token, verified_at, reset_token, reset_token_expires, created_at, updated_at`

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 ORDER BY id LIMIT 1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByResetToken(ctx context.Context, token string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE reset_token = $1 ORDER BY id LIMIT 1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by reset token: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByVerificationToken(ctx context.Context, token string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
			  WHERE verification_token = $1 AND verification_token <> '' ORDER BY id LIMIT 1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by verification token: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (title, first_name, last_name, email, accept_terms, role, password_hash,
			  verification_token, verified_at, reset_token, reset_token_expires, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.Title, account.FirstName, account.LastName, account.Email, account.AcceptTerms,
		string(account.Role), account.PasswordHash, account.VerificationToken, account.VerifiedAt,
		account.ResetToken, account.ResetTokenExpires, account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) Update(ctx context.Context, account model.Account) (model.Account, error) {
	query := `UPDATE accounts SET title = $2, first_name = $3, last_name = $4, email = $5, accept_terms = $6,
			  role = $7, password_hash = $8, verification_token = $9, verified_at = $10, reset_token = $11,
			  reset_token_expires = $12, updated_at = $13
			  WHERE id = $1
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.ID, account.Title, account.FirstName, account.LastName, account.Email, account.AcceptTerms,
		string(account.Role), account.PasswordHash, account.VerificationToken, account.VerifiedAt,
		account.ResetToken, account.ResetTokenExpires, account.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) ClearExpiredResetTokens(ctx context.Context, before time.Time) (int64, error) {
	query := `UPDATE accounts SET reset_token = NULL, reset_token_expires = NULL
			  WHERE reset_token_expires IS NOT NULL AND reset_token_expires < $1`

	tag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var (
		account model.Account
		role    string
	)
	err := row.Scan(
		&account.ID, &account.Title, &account.FirstName, &account.LastName, &account.Email,
		&account.AcceptTerms, &role, &account.PasswordHash, &account.VerificationToken,
		&account.VerifiedAt, &account.ResetToken, &account.ResetTokenExpires,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return model.Account{}, err
	}
	account.Role = model.Role(role)
	return account, nil
}

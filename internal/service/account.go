package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/samber/oops"

	"github.com/dtroode/texcode-accounts/internal/logger"
	resetmail "github.com/dtroode/texcode-accounts/internal/mail"
	"github.com/dtroode/texcode-accounts/internal/model"
)

// DefaultDispatchTimeout bounds a single email dispatch.
const DefaultDispatchTimeout = 10 * time.Second

// Account implements the account lifecycle: authentication against the
// credential directory, registration, update, delete and password reset.
type Account struct {
	accounts        model.AccountStore
	directory       model.CredentialDirectory
	tokens          model.TokenManager
	generator       model.SecureTokenGenerator
	mailer          model.Mailer
	recorder        model.Recorder
	logger          *logger.Logger
	now             func() time.Time
	dispatchTimeout time.Duration
}

// AccountOption configures Account.
type AccountOption func(*Account)

// WithClock overrides the time source.
func WithClock(now func() time.Time) AccountOption {
	return func(a *Account) {
		a.now = now
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r model.Recorder) AccountOption {
	return func(a *Account) {
		a.recorder = r
	}
}

// WithDispatchTimeout sets the email dispatch timeout.
func WithDispatchTimeout(d time.Duration) AccountOption {
	return func(a *Account) {
		if d > 0 {
			a.dispatchTimeout = d
		}
	}
}

func NewAccount(
	accounts model.AccountStore,
	directory model.CredentialDirectory,
	tokens model.TokenManager,
	generator model.SecureTokenGenerator,
	mailer model.Mailer,
	logger *logger.Logger,
	opts ...AccountOption,
) *Account {
	a := &Account{
		accounts:        accounts,
		directory:       directory,
		tokens:          tokens,
		generator:       generator,
		mailer:          mailer,
		recorder:        model.NopRecorder{},
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
		dispatchTimeout: DefaultDispatchTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Authenticate issues a session token for the principal matching username and
// password. The boolean is false for both an unknown username and a wrong
// password; the error is reserved for internal failures.
func (a *Account) Authenticate(ctx context.Context, username, password string) (model.Session, bool, error) {
	a.logger.Debug("Account service: authenticating", "username", username)

	principal, err := a.directory.FindByCredentials(ctx, username, password)
	if errors.Is(err, model.ErrNotFound) {
		a.recorder.Authentication(false)
		a.logger.Info("Account service: authentication failed", "username", username)
		return model.Session{}, false, nil
	}
	if err != nil {
		return model.Session{}, false, oops.Code("AUTHENTICATE_FAILED").
			With("operation", "FindByCredentials").
			Wrap(err)
	}

	token, err := a.tokens.GenerateSessionToken(principal.ID)
	if err != nil {
		return model.Session{}, false, oops.Code("AUTHENTICATE_FAILED").
			With("operation", "GenerateSessionToken").
			With("principal_id", principal.ID).
			Wrap(err)
	}

	a.recorder.Authentication(true)
	a.logger.Info("Account service: authenticated", "principal_id", principal.ID)

	return model.Session{Principal: principal.Public(), Token: token}, true, nil
}

// Register creates an account unless one with the same email exists, in
// which case nothing happens. The first account ever stored becomes Admin.
func (a *Account) Register(ctx context.Context, params model.RegisterParams) (model.RegisterOutcome, error) {
	if err := validateEmail(params.Email); err != nil {
		return 0, err
	}

	_, err := a.accounts.GetByEmail(ctx, params.Email)
	switch {
	case err == nil:
		a.recorder.Registration(model.OutcomeAlreadyExists)
		a.logger.Debug("Account service: registration skipped, email taken")
		return model.OutcomeAlreadyExists, nil
	case !errors.Is(err, model.ErrNotFound):
		return 0, oops.Code("REGISTER_FAILED").
			With("operation", "GetByEmail").
			Wrap(err)
	}

	count, err := a.accounts.Count(ctx)
	if err != nil {
		return 0, oops.Code("REGISTER_FAILED").
			With("operation", "Count").
			Wrap(err)
	}

	role := model.RoleUser
	if count == 0 {
		role = model.RoleAdmin
	}

	verificationToken, err := a.generator.Generate(ctx, a.verificationTokenTaken)
	if err != nil {
		return 0, oops.Code("REGISTER_FAILED").
			With("operation", "GenerateVerificationToken").
			Wrap(err)
	}

	created, err := a.accounts.Create(ctx, model.Account{
		Title:             params.Title,
		FirstName:         params.FirstName,
		LastName:          params.LastName,
		Email:             params.Email,
		AcceptTerms:       params.AcceptTerms,
		Role:              role,
		VerificationToken: verificationToken,
		CreatedAt:         a.now(),
	})
	if err != nil {
		return 0, oops.Code("REGISTER_FAILED").
			With("operation", "Create").
			Wrap(err)
	}

	a.recorder.Registration(model.OutcomeCreated)
	a.logger.Info("Account service: account registered",
		"account_id", created.ID,
		"role", string(created.Role))

	return model.OutcomeCreated, nil
}

// GetAccount returns the view of a stored account.
func (a *Account) GetAccount(ctx context.Context, id int64) (model.AccountView, error) {
	account, err := a.getAccount(ctx, id)
	if err != nil {
		return model.AccountView{}, err
	}
	return account.View(), nil
}

// Update applies the non-nil fields of upd. Role cannot be changed and the
// password field is accepted but not stored.
func (a *Account) Update(ctx context.Context, id int64, upd model.AccountUpdate) (model.AccountView, error) {
	account, err := a.getAccount(ctx, id)
	if err != nil {
		return model.AccountView{}, err
	}

	if upd.Email != nil && *upd.Email != account.Email {
		if err := validateEmail(*upd.Email); err != nil {
			return model.AccountView{}, err
		}

		other, err := a.accounts.GetByEmail(ctx, *upd.Email)
		switch {
		case err == nil && other.ID != account.ID:
			return model.AccountView{}, oops.Code("EMAIL_TAKEN").
				With("account_id", id).
				Wrapf(model.ErrConflict, "email '%s' is already registered", *upd.Email)
		case err != nil && !errors.Is(err, model.ErrNotFound):
			return model.AccountView{}, oops.Code("UPDATE_FAILED").
				With("operation", "GetByEmail").
				With("account_id", id).
				Wrap(err)
		}
		account.Email = *upd.Email
	}

	if upd.Title != nil {
		account.Title = *upd.Title
	}
	if upd.FirstName != nil {
		account.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		account.LastName = *upd.LastName
	}

	now := a.now()
	account.UpdatedAt = &now

	updated, err := a.accounts.Update(ctx, account)
	if err != nil {
		return model.AccountView{}, oops.Code("UPDATE_FAILED").
			With("operation", "Update").
			With("account_id", id).
			Wrap(err)
	}

	a.logger.Info("Account service: account updated", "account_id", id)

	return updated.View(), nil
}

// Delete removes the account permanently.
func (a *Account) Delete(ctx context.Context, id int64) error {
	if _, err := a.getAccount(ctx, id); err != nil {
		return err
	}

	if err := a.accounts.Delete(ctx, id); err != nil {
		return oops.Code("DELETE_FAILED").
			With("operation", "Delete").
			With("account_id", id).
			Wrap(err)
	}

	a.logger.Info("Account service: account deleted", "account_id", id)

	return nil
}

// ForgotPassword stores a fresh reset token on the account with the given
// email and mails it. Unknown emails succeed without side effects. A failed
// dispatch keeps the stored token and is reported only through the outcome.
func (a *Account) ForgotPassword(ctx context.Context, email, origin string) (model.ResetOutcome, error) {
	if err := validateEmail(email); err != nil {
		return model.ResetOutcome{}, err
	}

	account, err := a.accounts.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.recorder.ResetRequest(model.OutcomeNotFoundSilent)
		a.logger.Debug("Account service: reset requested for unknown email")
		return model.ResetOutcome{Kind: model.OutcomeNotFoundSilent}, nil
	}
	if err != nil {
		return model.ResetOutcome{}, oops.Code("RESET_REQUEST_FAILED").
			With("operation", "GetByEmail").
			Wrap(err)
	}

	token, err := a.generator.Generate(ctx, a.resetTokenTaken)
	if err != nil {
		return model.ResetOutcome{}, oops.Code("RESET_REQUEST_FAILED").
			With("operation", "GenerateResetToken").
			With("account_id", account.ID).
			Wrap(err)
	}

	expires := a.now().Add(model.ResetTokenTTL)
	account.ResetToken = &token
	account.ResetTokenExpires = &expires

	if _, err := a.accounts.Update(ctx, account); err != nil {
		return model.ResetOutcome{}, oops.Code("RESET_REQUEST_FAILED").
			With("operation", "Update").
			With("account_id", account.ID).
			Wrap(err)
	}

	a.recorder.ResetRequest(model.OutcomeResetIssued)
	a.logger.Info("Account service: reset token issued", "account_id", account.ID)

	outcome := model.ResetOutcome{Kind: model.OutcomeResetIssued}
	if err := a.dispatchReset(ctx, account.Email, token, origin); err != nil {
		a.recorder.DispatchFailure()
		a.logger.LogError("Account service: failed to send reset email", err, "account_id", account.ID)
		outcome.DispatchErr = err
	}

	return outcome, nil
}

// VerifyEmail marks the account holding token as verified and clears the token.
func (a *Account) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return oops.Code("VERIFICATION_TOKEN_EMPTY").Wrapf(model.ErrInvalidArgument, "verification token cannot be empty")
	}

	account, err := a.accounts.GetByVerificationToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return oops.Code("VERIFICATION_TOKEN_INVALID").Wrap(model.ErrInvalidToken)
	}
	if err != nil {
		return oops.Code("VERIFY_FAILED").
			With("operation", "GetByVerificationToken").
			Wrap(err)
	}

	now := a.now()
	account.VerifiedAt = &now
	account.VerificationToken = ""

	if _, err := a.accounts.Update(ctx, account); err != nil {
		return oops.Code("VERIFY_FAILED").
			With("operation", "Update").
			With("account_id", account.ID).
			Wrap(err)
	}

	a.logger.Info("Account service: email verified", "account_id", account.ID)

	return nil
}

// ValidateResetToken returns the id of the account holding an unexpired
// reset token. The token is not consumed.
func (a *Account) ValidateResetToken(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, oops.Code("RESET_TOKEN_EMPTY").Wrapf(model.ErrInvalidArgument, "reset token cannot be empty")
	}

	account, err := a.accounts.GetByResetToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return 0, oops.Code("RESET_TOKEN_INVALID").Wrap(model.ErrInvalidToken)
	}
	if err != nil {
		return 0, oops.Code("RESET_VALIDATE_FAILED").
			With("operation", "GetByResetToken").
			Wrap(err)
	}

	if account.ResetTokenExpires == nil || !a.now().Before(*account.ResetTokenExpires) {
		return 0, oops.Code("RESET_TOKEN_EXPIRED").
			With("account_id", account.ID).
			Wrap(model.ErrInvalidToken)
	}

	return account.ID, nil
}

// ListPrincipals returns the credential directory without passwords.
func (a *Account) ListPrincipals(ctx context.Context) ([]model.Principal, error) {
	all, err := a.directory.All(ctx)
	if err != nil {
		return nil, oops.Code("LIST_PRINCIPALS_FAILED").Wrap(err)
	}

	out := make([]model.Principal, 0, len(all))
	for _, p := range all {
		out = append(out, p.Public())
	}
	return out, nil
}

// GetPrincipal returns a directory principal without its password.
func (a *Account) GetPrincipal(ctx context.Context, id int64) (model.Principal, error) {
	p, err := a.directory.GetByID(ctx, id)
	if err != nil {
		return model.Principal{}, oops.Code("GET_PRINCIPAL_FAILED").
			With("principal_id", id).
			Wrap(err)
	}
	return p.Public(), nil
}

func (a *Account) getAccount(ctx context.Context, id int64) (model.Account, error) {
	account, err := a.accounts.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, oops.Code("ACCOUNT_NOT_FOUND").
			With("account_id", id).
			Wrapf(err, "account not found")
	}
	if err != nil {
		return model.Account{}, oops.Code("GET_ACCOUNT_FAILED").
			With("account_id", id).
			Wrap(err)
	}
	return account, nil
}

func (a *Account) dispatchReset(ctx context.Context, to, token, origin string) error {
	msg, err := resetmail.ResetPasswordMessage(to, token, origin)
	if err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.dispatchTimeout)
	defer cancel()

	return a.mailer.Send(ctx, msg)
}

func (a *Account) verificationTokenTaken(ctx context.Context, token string) (bool, error) {
	return taken(a.accounts.GetByVerificationToken(ctx, token))
}

func (a *Account) resetTokenTaken(ctx context.Context, token string) (bool, error) {
	return taken(a.accounts.GetByResetToken(ctx, token))
}

func taken(_ model.Account, err error) (bool, error) {
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func validateEmail(email string) error {
	if email == "" {
		return oops.Code("EMAIL_EMPTY").Wrapf(model.ErrInvalidArgument, "email cannot be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return oops.Code("EMAIL_INVALID").
			With("email", email).
			Wrapf(model.ErrInvalidArgument, "email is not a valid address")
	}
	return nil
}

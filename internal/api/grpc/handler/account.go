package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/texcode-accounts/internal/logger"
	"github.com/dtroode/texcode-accounts/internal/model"
)

// AccountService defines the account lifecycle operations exposed over gRPC.
type AccountService interface {
	Authenticate(ctx context.Context, username, password string) (model.Session, bool, error)
	Register(ctx context.Context, params model.RegisterParams) (model.RegisterOutcome, error)
	GetAccount(ctx context.Context, id int64) (model.AccountView, error)
	Update(ctx context.Context, id int64, upd model.AccountUpdate) (model.AccountView, error)
	Delete(ctx context.Context, id int64) error
	ForgotPassword(ctx context.Context, email, origin string) (model.ResetOutcome, error)
	VerifyEmail(ctx context.Context, token string) error
	ValidateResetToken(ctx context.Context, token string) (int64, error)
	ListPrincipals(ctx context.Context) ([]model.Principal, error)
	GetPrincipal(ctx context.Context, id int64) (model.Principal, error)
}

var _ AccountsServer = (*Account)(nil)

// Account handles gRPC endpoints of the Accounts service.
type Account struct {
	accountService AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(accountService AccountService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Authenticate exchanges username and password for a session token.
func (h *Account) Authenticate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	username, err := f.str("username")
	if err != nil {
		return nil, err
	}
	password, err := f.str("password")
	if err != nil {
		return nil, err
	}
	if username == "" || password == "" {
		return nil, status.Error(codes.InvalidArgument, "username and password are required")
	}

	h.logger.Debug("Account handler: processing authenticate request", "username", username)

	session, ok, err := h.accountService.Authenticate(ctx, username, password)
	if err != nil {
		h.logger.LogError("Account handler: authenticate failed", err, "username", username)
		return nil, handleError(err)
	}
	if !ok {
		return nil, errInvalidCredentials
	}

	return sessionToStruct(session)
}

// Register creates an account. The response is empty whether or not the
// email was already registered.
func (h *Account) Register(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	f := fieldsOf(req)

	var (
		params model.RegisterParams
		err    error
	)
	for key, dst := range map[string]*string{
		"title":     &params.Title,
		"firstName": &params.FirstName,
		"lastName":  &params.LastName,
		"email":     &params.Email,
		"password":  &params.Password,
	} {
		if *dst, err = f.str(key); err != nil {
			return nil, err
		}
	}
	if params.AcceptTerms, err = f.boolean("acceptTerms"); err != nil {
		return nil, err
	}
	if err := checkPasswordConfirmation(f, params.Password); err != nil {
		return nil, err
	}
	if params.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "password is required")
	}
	if !params.AcceptTerms {
		return nil, status.Error(codes.InvalidArgument, "terms must be accepted")
	}

	h.logger.Debug("Account handler: processing register request")

	outcome, err := h.accountService.Register(ctx, params)
	if err != nil {
		h.logger.LogError("Account handler: register failed", err)
		return nil, handleError(err)
	}

	h.logger.Debug("Account handler: register completed", "outcome", outcome.String())

	return &emptypb.Empty{}, nil
}

// ForgotPassword requests a reset email. The response is empty whether or
// not an account matched. The link origin is read from the "origin" header.
func (h *Account) ForgotPassword(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	email, err := fieldsOf(req).str("email")
	if err != nil {
		return nil, err
	}

	origin := originFromContext(ctx)
	h.logger.Debug("Account handler: processing forgot password request", "origin", origin)

	outcome, err := h.accountService.ForgotPassword(ctx, email, origin)
	if err != nil {
		h.logger.LogError("Account handler: forgot password failed", err)
		return nil, handleError(err)
	}

	h.logger.Debug("Account handler: forgot password completed", "outcome", outcome.Kind.String())

	return &emptypb.Empty{}, nil
}

// VerifyEmail confirms the email of the account holding the token.
func (h *Account) VerifyEmail(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	token, err := fieldsOf(req).str("token")
	if err != nil {
		return nil, err
	}

	if err := h.accountService.VerifyEmail(ctx, token); err != nil {
		h.logger.LogError("Account handler: verify email failed", err)
		return nil, handleError(err)
	}

	return &emptypb.Empty{}, nil
}

// ValidateResetToken succeeds when the reset token exists and has not expired.
func (h *Account) ValidateResetToken(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	token, err := fieldsOf(req).str("token")
	if err != nil {
		return nil, err
	}

	if _, err := h.accountService.ValidateResetToken(ctx, token); err != nil {
		h.logger.LogError("Account handler: validate reset token failed", err)
		return nil, handleError(err)
	}

	return &emptypb.Empty{}, nil
}

// GetAccount returns an account by id.
func (h *Account) GetAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := fieldsOf(req).id("id")
	if err != nil {
		return nil, err
	}

	view, err := h.accountService.GetAccount(ctx, id)
	if err != nil {
		h.logger.LogError("Account handler: get account failed", err, "account_id", id)
		return nil, handleError(err)
	}

	return accountToStruct(view)
}

// UpdateAccount applies a partial update to an account.
func (h *Account) UpdateAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := fieldsOf(req)
	id, err := f.id("id")
	if err != nil {
		return nil, err
	}

	var upd model.AccountUpdate
	for key, dst := range map[string]**string{
		"title":     &upd.Title,
		"firstName": &upd.FirstName,
		"lastName":  &upd.LastName,
		"email":     &upd.Email,
		"password":  &upd.Password,
	} {
		if *dst, err = f.optString(key); err != nil {
			return nil, err
		}
	}
	if upd.Password != nil {
		if err := checkPasswordConfirmation(f, *upd.Password); err != nil {
			return nil, err
		}
	}

	h.logger.Debug("Account handler: processing update account request",
		"account_id", id,
		"principal_id", h.principalID(ctx))

	view, err := h.accountService.Update(ctx, id, upd)
	if err != nil {
		h.logger.LogError("Account handler: update account failed", err, "account_id", id)
		return nil, handleError(err)
	}

	h.logger.Info("Account handler: account updated", "account_id", id)

	return accountToStruct(view)
}

// DeleteAccount removes an account.
func (h *Account) DeleteAccount(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, err := fieldsOf(req).id("id")
	if err != nil {
		return nil, err
	}

	if err := h.accountService.Delete(ctx, id); err != nil {
		h.logger.LogError("Account handler: delete account failed", err, "account_id", id)
		return nil, handleError(err)
	}

	h.logger.Info("Account handler: account deleted",
		"account_id", id,
		"principal_id", h.principalID(ctx))

	return &emptypb.Empty{}, nil
}

// ListPrincipals returns every principal of the credential directory.
func (h *Account) ListPrincipals(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	principals, err := h.accountService.ListPrincipals(ctx)
	if err != nil {
		h.logger.LogError("Account handler: list principals failed", err)
		return nil, handleError(err)
	}

	return principalsToStruct(principals)
}

// GetPrincipal returns a principal by id, or the caller when id is omitted.
func (h *Account) GetPrincipal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, ok, err := fieldsOf(req).optID("id")
	if err != nil {
		return nil, err
	}
	if !ok {
		id, ok = h.contextManager.GetPrincipalIDFromContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "principal is not authenticated")
		}
	}

	principal, err := h.accountService.GetPrincipal(ctx, id)
	if err != nil {
		h.logger.LogError("Account handler: get principal failed", err, "principal_id", id)
		return nil, handleError(err)
	}

	return principalToStruct(principal)
}

func (h *Account) principalID(ctx context.Context) int64 {
	id, _ := h.contextManager.GetPrincipalIDFromContext(ctx)
	return id
}

func checkPasswordConfirmation(f fields, password string) error {
	confirm, err := f.optString("confirmPassword")
	if err != nil {
		return err
	}
	if confirm != nil && *confirm != password {
		return status.Error(codes.InvalidArgument, "passwords do not match")
	}
	return nil
}

func originFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if origins := md.Get("origin"); len(origins) > 0 {
		return origins[0]
	}
	return ""
}

package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/texcode-accounts/internal/api/grpc/handler"
	"github.com/dtroode/texcode-accounts/internal/api/grpc/middleware"
	"github.com/dtroode/texcode-accounts/internal/logger"
	"github.com/dtroode/texcode-accounts/internal/model"
)

// Router wires the Accounts service and its interceptors into a gRPC server.
type Router struct {
	accountService handler.AccountService
	sessions       middleware.SessionValidator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	accountService handler.AccountService,
	sessions middleware.SessionValidator,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		accountService: accountService,
		sessions:       sessions,
		contextManager: contextManager,
		logger:         logger,
	}
}

// requiresAuth selects every method outside handler.PublicMethods.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return !handler.PublicMethods[c.FullMethod()]
}

// Register builds the gRPC server with recovery, request logging and
// authentication interceptors, and registers the Accounts service.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		r.logger.Error("gRPC handler panicked", "panic", p)
		return status.Error(codes.Internal, "internal server error")
	})

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	s := grpc.NewServer(opts...)
	r.registerAccountRoutes(s)

	return s
}

func (r *Router) registerAccountRoutes(server *grpc.Server) {
	accountHandler := handler.NewAccount(r.accountService, r.contextManager, r.logger)
	handler.RegisterAccountsServer(server, accountHandler)
}

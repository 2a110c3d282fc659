package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/texcode-accounts/internal/api/grpc/context"
	"github.com/dtroode/texcode-accounts/internal/api/grpc/router"
	grpcServer "github.com/dtroode/texcode-accounts/internal/api/grpc/server"
	"github.com/dtroode/texcode-accounts/internal/config"
	"github.com/dtroode/texcode-accounts/internal/logger"
	"github.com/dtroode/texcode-accounts/internal/mail"
	"github.com/dtroode/texcode-accounts/internal/metrics"
	"github.com/dtroode/texcode-accounts/internal/model"
	"github.com/dtroode/texcode-accounts/internal/repository/memory"
	"github.com/dtroode/texcode-accounts/internal/repository/postgres"
	"github.com/dtroode/texcode-accounts/internal/server"
	"github.com/dtroode/texcode-accounts/internal/service"
	storage "github.com/dtroode/texcode-accounts/internal/storage/minio"
	"github.com/dtroode/texcode-accounts/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	accounts, ready, closeStore, err := openAccountStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer closeStore()

	directory, err := openDirectory(cfg.Credentials)
	if err != nil {
		logger.Fatal("failed to load credential directory", "error", err)
	}

	mailer, err := newMailer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize mailer", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret)
	generator := token.NewSecureGenerator(token.WithMaxAttempts(cfg.SecureToken.MaxAttempts))

	var metricsServer *metrics.Server
	accountOpts := []service.AccountOption{service.WithDispatchTimeout(cfg.Mail.Timeout)}
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Addr, ready, logger)
		accountOpts = append(accountOpts, service.WithRecorder(metricsServer.Metrics()))
	}

	accountService := service.NewAccount(accounts, directory, tokenManager, generator, mailer, logger, accountOpts...)
	sessionService := service.NewSession(tokenManager, logger)
	ctxMgr := grpcctx.NewManager()

	if metricsServer != nil {
		errCh, err := metricsServer.Start()
		if err != nil {
			logger.Fatal("failed to start metrics server", "error", err)
		}
		go func() {
			if err, ok := <-errCh; ok && err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		logger.Info("Metrics server listening", "address", metricsServer.Addr())
	}

	var sweeper *service.ResetSweeper
	if cfg.ResetSweep.Enabled {
		var recorder service.SweepRecorder
		if metricsServer != nil {
			recorder = metricsServer.Metrics()
		}
		sweeper = service.NewResetSweeper(accounts, cfg.ResetSweep.Schedule, recorder, logger)
		if err := sweeper.Start(); err != nil {
			logger.Fatal("failed to start reset token sweeper", "error", err)
		}
	}

	grpcServer := registerGRPCServer(logger, accountService, sessionService, ctxMgr, fmt.Sprintf(":%s", cfg.GRPC.Port))
	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(grpcServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}
	wg.Wait()

	if sweeper != nil {
		if err := sweeper.Stop(shutdownCtx); err != nil {
			logger.Error("error stopping reset token sweeper", "error", err)
		}
	}
	if metricsServer != nil {
		if err := metricsServer.Stop(shutdownCtx); err != nil {
			logger.Error("error stopping metrics server", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// openAccountStore returns the configured store, its readiness probe and a
// close function.
func openAccountStore(ctx context.Context, cfg config.Database) (model.AccountStore, metrics.ReadinessChecker, func(), error) {
	if cfg.Driver == config.DriverMemory {
		return memory.NewAccountRepository(), func() bool { return true }, func() {}, nil
	}

	db, err := postgres.NewConnection(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, nil, err
	}

	ready := func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return db.Ping(pingCtx) == nil
	}

	return postgres.NewAccountRepository(db), ready, func() { _ = db.Close() }, nil
}

func openDirectory(cfg config.Credentials) (*memory.Directory, error) {
	if cfg.File == "" {
		return memory.NewDirectory(nil)
	}
	return memory.LoadDirectory(cfg.File)
}

func newMailer(ctx context.Context, cfg *config.Config, l *logger.Logger) (model.Mailer, error) {
	switch cfg.Mail.Driver {
	case config.MailDriverSMTP:
		return mail.NewSMTP(mail.SMTPConfig{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.SMTPUser,
			Password: cfg.Mail.SMTPPass,
			From:     cfg.Mail.From,
			Timeout:  cfg.Mail.Timeout,
		})
	case config.MailDriverArchive:
		minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
			Secure: cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage client: %w", err)
		}
		return mail.NewArchive(storageClient), nil
	default:
		return mail.NewLog(l), nil
	}
}

func registerGRPCServer(
	logger *logger.Logger,
	accountService *service.Account,
	sessionService *service.Session,
	ctxMgr model.ContextManager,
	addr string,
) *grpcServer.GRPCServer {
	r := router.New(accountService, sessionService, ctxMgr, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}

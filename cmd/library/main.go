// Package main реализует точку входа сервиса выдачи книг.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gobooklend/internal/library/adapters/cache"
	"gobooklend/internal/library/adapters/grpc"
	httpadapter "gobooklend/internal/library/adapters/http"
	"gobooklend/internal/library/adapters/postgres"
	"gobooklend/internal/library/adapters/services"
	"gobooklend/internal/library/app"
	"gobooklend/internal/library/config"
	"gobooklend/internal/library/db"
	domainservices "gobooklend/internal/library/domain/services"
	"gobooklend/pkg/logger"
	"gobooklend/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "LIBRARY_LOGGER_MODE"
	EnvLoggerLevel = "LIBRARY_LOGGER_LEVEL"
)

// MigrationsDir - каталог миграций относительно рабочей директории.
const MigrationsDir = "migrations/library"

const readinessInterval = 15 * time.Second

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrInitCache            = "failed to initialize token revocation cache"
	ErrBootstrapAdmin       = "failed to bootstrap administrator"
	ErrStartGRPC            = "failed to start gRPC server"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "library service started"
	LogServiceShutdownDone = "library service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing redis connections"
	LogStoppingGRPC        = "stopping gRPC server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogBootstrapAdmin      = "ensuring bootstrap administrator"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingGRPC        = "starting gRPC server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger
		ctx = logger.NewContext(ctx, finalLogger)

		database, err := db.New(ctx, &cfg.Postgres, MigrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrInitCache, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRepo)
		repoFactory := postgres.NewRepositoryFactory(database.Pool())

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.JWT.TokenConfig(), cfg.JWT.BCryptCost)
		tokenService := serviceFactory.TokenService()
		revocation := cache.NewTokenRevocation(redisCache, cfg.JWT.AccessTokenTTL)

		log.Info(ctx, LogInitUseCases)
		oracle := app.NewAvailabilityOracle(repoFactory.LoanRepository(), app.SystemClock)
		useCases := httpadapter.UseCases{
			Loans: app.NewLoanUseCase(
				repoFactory.LoanRepository(),
				repoFactory.BookRepository(),
				repoFactory.BorrowerRepository(),
				oracle,
				app.SystemClock,
			),
			Borrowers: app.NewBorrowerUseCase(repoFactory.BorrowerRepository(), repoFactory.UserRepository(), app.SystemClock),
			Authors:   app.NewAuthorUseCase(repoFactory.AuthorRepository()),
			Books:     app.NewBookUseCase(repoFactory.BookRepository(), repoFactory.AuthorRepository(), oracle),
			Users: app.NewUserUseCase(
				repoFactory.UserRepository(),
				serviceFactory.PasswordService(),
				tokenService,
				revocation,
				app.SystemClock,
			),
			Gate: app.NewAuthorizationGate(tokenService, revocation, domainservices.DefaultPolicy()),
		}

		if cfg.Bootstrap.Enabled() {
			log.Info(ctx, LogBootstrapAdmin, zap.String("username", cfg.Bootstrap.AdminUsername))
			if err := useCases.Users.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
				log.Error(ctx, ErrBootstrapAdmin, zap.Error(err))
				_ = redisCache.Close()
				database.Close(ctx)
				exitCode = 1
				return
			}
		}

		grpcServer := grpc.New(&cfg.GRPC, database.Ping)
		log.Info(ctx, LogStartingGRPC)
		if err := grpcServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPC, zap.Error(err))
			_ = redisCache.Close()
			database.Close(ctx)
			exitCode = 1
			return
		}

		watchCtx, stopWatch := context.WithCancel(ctx)
		defer stopWatch()
		go grpcServer.Watch(watchCtx, readinessInterval)

		log.Info(ctx, LogInitHTTPServer)
		httpApp := httpadapter.NewApp(&cfg.HTTP, cfg.Logging.IsProduction())
		httpadapter.SetupRouter(httpApp, useCases)

		go func() {
			log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
			if err := httpApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return httpApp.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingGRPC)
				stopWatch()
				grpcServer.Stop(ctx)
				return nil
			},
		)

		log.Info(ctx, LogClosingCache)
		if err := redisCache.Close(); err != nil {
			log.Warn(ctx, LogClosingCache, zap.Error(err))
		}
		log.Info(ctx, LogClosingDB)
		database.Close(ctx)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

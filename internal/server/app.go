// Package server assembles the gophauth server: it opens the store, builds
// the hasher, token issuer, user service and access guard, and runs the
// gRPC endpoint until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/guard"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/telemetry"
	"go.opentelemetry.io/otel"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

const serviceName = "gophauth"

type App struct {
	config            *config.Config
	logger            logging.Logger
	db                *sql.DB
	server            *gs.GRPCServer
	shutdownTelemetry func(context.Context) error
}

// NewApp acquires every resource the server needs. A missing signing
// secret fails here, before the store is touched.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	issuer, err := auth.NewTokenIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration, auth.WithIssuer(c.TokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, serviceName, c.OTelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	metrics, err := telemetry.NewAuthMetrics(otel.GetMeterProvider())
	if err != nil {
		_ = shutdownTelemetry(ctx)
		return nil, fmt.Errorf("metrics init error: %w", err)
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		_ = shutdownTelemetry(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := auth.NewArgon2Hasher(auth.WithMaxConcurrent(c.HashConcurrency))

	us, err := services.NewUserService(ctx, db, m, hasher, issuer, logger, services.WithRecorder(metrics))
	if err != nil {
		_ = db.Close()
		_ = shutdownTelemetry(ctx)
		return nil, fmt.Errorf("user service init error: %w", err)
	}

	return &App{
		config:            c,
		logger:            logger,
		db:                db,
		server:            gs.NewGRPCServer(c.EndpointAddrGRPC, logger, us, guard.New(issuer)),
		shutdownTelemetry: shutdownTelemetry,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database and flushes telemetry.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var (
		wg        sync.WaitGroup
		serverErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, "grpc server stopped", "error", err)
			serverErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	return errors.Join(serverErr, app.close())
}

func (app *App) close() error {
	// ctx is already cancelled here; shutdown gets a fresh one.
	ctx := context.Background()

	app.logger.Info(ctx, "Releasing resources...")

	var errs []error
	if err := app.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close db: %w", err))
	}
	if err := app.shutdownTelemetry(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown telemetry: %w", err))
	}
	return errors.Join(errs...)
}

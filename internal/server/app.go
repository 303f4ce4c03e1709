// Package server wires configuration, storage, the resource service and its
// subscribers, and runs the gRPC and HTTP transports until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/vaultkeeper/internal/logging"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/config"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/resources"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/subscribers/archive"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/subscribers/auditlog"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/vaultkeeper/internal/server/grpc"
)

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repoManager repomanager.RepositoryManager
	notifier    *resources.Notifier
	resources   *resources.Service
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	notifier := resources.NewNotifier(logger)
	notifier.Subscribe("auditlog", auditlog.New(rm))
	if c.ArchiveEnabled() {
		notifier.Subscribe("archive", archive.New(archive.Options{
			Bucket:    c.ArchiveBucket,
			Region:    c.S3Region,
			Endpoint:  c.S3BaseEndpoint,
			AccessKey: c.S3RootUser,
			SecretKey: c.S3RootPassword,
			Timeout:   c.ArchiveTimeout,
		}, logger))
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		repoManager: rm,
		notifier:    notifier,
		resources:   resources.NewService(db, rm, notifier, logger),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.resources, app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpapi.New(app.resources, app.config.SecretKey, app.logger)
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, router, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
	}
}

// Run applies migrations when configured and serves both transports until
// ctx is cancelled, a termination signal arrives, or a server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(ctx, cancelFunc)

	if app.config.MigrateOnStart {
		if err := app.repoManager.RunMigrations(ctx, app.db); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	wg.Wait()

	app.logger.Info(ctx, "App stopped")
	return nil
}

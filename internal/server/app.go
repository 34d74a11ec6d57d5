// Package server initializes and runs the daily diet application: it opens
// storage, applies migrations, wires services and serves HTTP until a
// shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/dailydiet/internal/logging"
	"github.com/dmitrijs2005/dailydiet/internal/server/config"
	"github.com/dmitrijs2005/dailydiet/internal/server/httpapi"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/dailydiet/internal/server/services"
	"github.com/dmitrijs2005/dailydiet/internal/server/telemetry"
)

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
}

// NewApp prepares storage and services. With cfg.InMemory set no database is
// opened and data lives only as long as the process.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if cfg.InMemory {
		logger.Warn(ctx, "Using in-memory storage, data will not survive a restart")
		rm = repomanager.NewMemoryRepositoryManager()
	} else {
		var err error
		db, err = openDB(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db ping error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	as, err := services.NewAccountService(db, rm, cfg)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	hs, err := httpapi.NewServer(
		cfg.EndpointAddrHTTP,
		logger,
		telemetry.New(),
		as,
		services.NewSessionResolver(db, rm),
		services.NewMealService(db, rm),
		cfg.SecretKey,
	)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	return &App{config: cfg, logger: logger, db: db, http: hs}, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal is received.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	closeDB(app.db)
	app.logger.Info(ctx, "App stopped")
}

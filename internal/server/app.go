// Package server wires the bookstore together: storage, migrations,
// services, the session store and the HTTP server, and runs it until the
// process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/config"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
	"github.com/dmitrijs2005/bookstore/internal/server/sessions"
	"github.com/dmitrijs2005/bookstore/internal/server/web"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	server *web.Server
}

func NewApp(c *config.Config) (*App, error) {
	return newApp(context.Background(), c, logging.NewJSONLogger(os.Stdout, c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger}

	if c.SessionIdleTimeout <= 0 {
		return nil, fmt.Errorf("config error: session idle timeout must be positive, got %s", c.SessionIdleTimeout)
	}

	dsn, err := c.DSN()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	app.db, err = dbx.Open(ctx, c.DBDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m, err := repomanager.NewSQLRepositoryManager(c.DBDriver, logger)
	if err != nil {
		app.close(ctx)
		return nil, err
	}
	if err := m.RunMigrations(ctx, app.db); err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store, err := app.initSessionStore(ctx)
	if err != nil {
		app.close(ctx)
		return nil, err
	}

	secret := c.SessionSecret
	if secret == "" {
		secret, err = common.MakeRandHexString(32)
		if err != nil {
			app.close(ctx)
			return nil, fmt.Errorf("session secret: %w", err)
		}
		logger.Warn(ctx, "SESSION_SECRET is not set, using a random one; sessions will not survive a restart")
	}

	users := services.NewUserService(app.db, m, store, logger)
	books := services.NewBookService(app.db, m, logger)

	router, err := web.NewRouter(web.RouterOptions{
		Users:              users,
		Books:              books,
		Sessions:           store,
		Logger:             logger,
		SessionSecret:      []byte(secret),
		SessionIdleTimeout: c.SessionIdleTimeout,
	})
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("router init error: %w", err)
	}

	app.server = web.NewServer(c.HTTPAddr, router, logger)
	return app, nil
}

// initSessionStore picks Redis when an address is configured and the
// in-process store otherwise.
func (app *App) initSessionStore(ctx context.Context) (sessions.Store, error) {
	if app.config.RedisAddr == "" {
		app.logger.Info(ctx, "Using in-memory session store")
		return sessions.NewMemoryStore(app.config.SessionIdleTimeout), nil
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.config.RedisAddr,
		Password: app.config.RedisPassword,
		DB:       app.config.RedisDB,
	})
	if err := app.redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	app.logger.Info(ctx, "Using Redis session store", "address", app.config.RedisAddr)
	return sessions.NewRedisStore(app.redis, app.config.SessionIdleTimeout), nil
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
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a stop signal arrives, then releases
// the database and Redis connections.
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

	app.close(context.WithoutCancel(ctx))
	app.logger.Info(ctx, "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "redis close failed", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close failed", "error", err)
		}
	}
}

// Package admin implements the operator commands: schema migration, account
// creation and catalog seeding.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/flagx"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/config"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
	"github.com/dmitrijs2005/bookstore/internal/server/sessions"
)

const usage = `usage: admin <command> [-k driver -d dsn ...] [command flags]

commands:
  migrate                                         apply database migrations
  useradd -username U [-first F -last L -email E] create an account (password is prompted)
  seed-books [-file books.json]                   import a starter catalog in one transaction
`

type App struct {
	config  *config.Config
	logger  logging.Logger
	prompt  *prompter
	out     io.Writer
	db      *sql.DB
	manager repomanager.RepositoryManager
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	m, err := repomanager.NewSQLRepositoryManager(c.DBDriver, logger)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, c.DBDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:  c,
		logger:  logger,
		prompt:  newPrompter(in, out),
		out:     out,
		db:      db,
		manager: m,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run dispatches args[0] to its command.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := flagx.SplitCommand(args)

	switch cmd {
	case "migrate":
		return a.migrate(ctx)
	case "useradd":
		return a.userAdd(ctx, rest)
	case "seed-books":
		return a.seedBooks(ctx, rest)
	case "", "help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) migrate(ctx context.Context) error {
	if err := a.manager.RunMigrations(ctx, a.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	a.logger.Info(ctx, "migrations applied", "driver", a.config.DBDriver)
	return nil
}

func (a *App) userService() *services.UserService {
	return services.NewUserService(a.db, a.manager, sessions.NewMemoryStore(a.config.SessionIdleTimeout), a.logger)
}

func (a *App) bookService() *services.BookService {
	return services.NewBookService(a.db, a.manager, a.logger)
}

// Package repomanager provides a RepositoryManager for the SQL backends,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/migrations"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/audit"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// gooseDialects maps config driver names to goose dialects. The migration
// directory inside the embedded FS carries the driver name.
var gooseDialects = map[string]string{
	"postgres": "postgres",
	"sqlite":   "sqlite3",
}

// SQLRepositoryManager vends SQL-backed repository implementations
// and exposes a schema migration hook.
type SQLRepositoryManager struct {
	driver string
	logger logging.Logger
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Books returns a books.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Books(db dbx.DBTX) books.Repository {
	return books.NewSQLRepository(db)
}

// Audit returns an audit.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Audit(db dbx.DBTX) audit.Repository {
	return audit.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations for the
// manager's driver and runs them against db.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(newGooseLogger(ctx, m.logger))
	if err := goose.SetDialect(gooseDialects[m.driver]); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.driver); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for driver
// ("postgres" or "sqlite"). Migration progress is reported through logger.
func NewSQLRepositoryManager(driver string, logger logging.Logger) (RepositoryManager, error) {
	if _, ok := gooseDialects[driver]; !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return &SQLRepositoryManager{driver: driver, logger: logger}, nil
}

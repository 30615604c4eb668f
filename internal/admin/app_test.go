package admin

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/auth"
	"github.com/dmitrijs2005/bookstore/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DBDriver = config.DriverSQLite
	cfg.DatabaseDSN = "file:admin_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"

	var out bytes.Buffer
	app, err := NewApp(context.Background(), cfg, logging.Discard(), strings.NewReader(input), &out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, &out
}

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) {
		if err != nil {
			return nil, err
		}
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = old })
}

func (a *App) count(t *testing.T, query string) int {
	t.Helper()
	var n int
	require.NoError(t, a.db.QueryRow(query).Scan(&n))
	return n
}

func TestRun_Help(t *testing.T) {
	app, out := newTestApp(t, "")

	require.NoError(t, app.Run(context.Background(), nil))
	assert.Contains(t, out.String(), "usage: admin")

	err := app.Run(context.Background(), []string{"frobnicate"})
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	app, _ := newTestApp(t, "")

	require.NoError(t, app.Run(context.Background(), []string{"migrate"}))
	assert.Equal(t, 0, app.count(t, `SELECT COUNT(*) FROM users`))
}

func TestUserAdd_FromFlags(t *testing.T) {
	app, out := newTestApp(t, "")
	stubPassword(t, "s3cret-pass", nil)

	err := app.Run(context.Background(), []string{
		"useradd", "-k", "sqlite", "-username", "janedoe", "-first", "Jane", "-last", "Doe", "-email", "jane@example.com",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "User janedoe created.")

	var hash string
	require.NoError(t, app.db.QueryRow(`SELECT hashed_password FROM users WHERE username = $1`, "janedoe").Scan(&hash))
	assert.NoError(t, auth.CheckPassword(hash, "s3cret-pass"))
}

func TestUserAdd_Prompts(t *testing.T) {
	app, out := newTestApp(t, "janedoe\nJane\nDoe\njane@example.com\n")
	stubPassword(t, "s3cret-pass", nil)

	require.NoError(t, app.Run(context.Background(), []string{"useradd"}))
	assert.Contains(t, out.String(), "Username: ")
	assert.Equal(t, 1, app.count(t, `SELECT COUNT(*) FROM users`))
}

func TestUserAdd_Rejected(t *testing.T) {
	app, _ := newTestApp(t, "")
	args := []string{"useradd", "-username", "janedoe", "-first", "Jane", "-last", "Doe", "-email", "jane@example.com"}

	stubPassword(t, "short", nil)
	assert.Error(t, app.Run(context.Background(), args))

	stubPassword(t, "", errors.New("not a terminal"))
	assert.Error(t, app.Run(context.Background(), args))

	stubPassword(t, "s3cret-pass", nil)
	require.NoError(t, app.Run(context.Background(), args))
	err := app.Run(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Equal(t, 1, app.count(t, `SELECT COUNT(*) FROM users`))
}

func TestSeedBooks_StarterCatalog(t *testing.T) {
	app, out := newTestApp(t, "")

	require.NoError(t, app.Run(context.Background(), []string{"seed-books"}))
	assert.Contains(t, out.String(), "Imported 6 books.")
	assert.Equal(t, len(starterCatalog), app.count(t, `SELECT COUNT(*) FROM books`))
}

func TestSeedBooks_File(t *testing.T) {
	app, _ := newTestApp(t, "")
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Dune","price":"12.50"},{"name":"Emma","price":7.99}]`), 0o600))

	require.NoError(t, app.Run(context.Background(), []string{"seed-books", "-file", path}))
	assert.Equal(t, 2, app.count(t, `SELECT COUNT(*) FROM books`))
}

func TestSeedBooks_InvalidFileImportsNothing(t *testing.T) {
	app, _ := newTestApp(t, "")
	require.NoError(t, app.Run(context.Background(), []string{"migrate"}))

	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Dune","price":"12.50"},{"name":"Free","price":"0"}]`), 0o600))

	assert.Error(t, app.Run(context.Background(), []string{"seed-books", "-file", path}))
	assert.Equal(t, 0, app.count(t, `SELECT COUNT(*) FROM books`))

	assert.Error(t, app.Run(context.Background(), []string{"seed-books", "-file", filepath.Join(t.TempDir(), "missing.json")}))
}

package web

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
	"github.com/dmitrijs2005/bookstore/internal/server/sessions"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-session-secret"

type testEnv struct {
	t      *testing.T
	db     *sql.DB
	store  *sessions.MemoryStore
	server *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := dbx.Open(ctx, "sqlite", "file:web_"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := repomanager.NewSQLRepositoryManager("sqlite", logging.Discard())
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(ctx, db))

	store := sessions.NewMemoryStore(10 * time.Minute)
	log := logging.Discard()

	router, err := NewRouter(RouterOptions{
		Users:              services.NewUserService(db, m, store, log),
		Books:              services.NewBookService(db, m, log),
		Sessions:           store,
		Logger:             log,
		SessionSecret:      []byte(testSecret),
		SessionIdleTimeout: 10 * time.Minute,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{t: t, db: db, store: store, server: srv, client: newClient(t)}
}

// newClient keeps cookies and never follows redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type result struct {
	status   int
	body     string
	location string
	header   http.Header
}

func (e *testEnv) do(c *http.Client, req *http.Request) result {
	e.t.Helper()
	resp, err := c.Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return result{
		status:   resp.StatusCode,
		body:     string(body),
		location: resp.Header.Get("Location"),
		header:   resp.Header,
	}
}

func (e *testEnv) get(path string) result {
	e.t.Helper()
	return e.getWith(e.client, path)
}

func (e *testEnv) getWith(c *http.Client, path string) result {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	require.NoError(e.t, err)
	return e.do(c, req)
}

func (e *testEnv) post(path string, form url.Values) result {
	e.t.Helper()
	return e.postWith(e.client, path, form)
}

func (e *testEnv) postWith(c *http.Client, path string, form url.Values) result {
	e.t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(c, req)
}

func (e *testEnv) count(query string, args ...any) int {
	e.t.Helper()
	var n int
	require.NoError(e.t, e.db.QueryRow(query, args...).Scan(&n))
	return n
}

func (e *testEnv) register(userName, password string) result {
	e.t.Helper()
	return e.post("/registered", url.Values{
		"username": {userName},
		"first":    {"Jane"},
		"last":     {"Doe"},
		"email":    {userName + "@example.com"},
		"password": {password},
	})
}

func (e *testEnv) login(userName, password string) result {
	e.t.Helper()
	return e.post("/users/loggedin", url.Values{"username": {userName}, "password": {password}})
}

// registerAndLogin leaves e.client holding a live session.
func (e *testEnv) registerAndLogin() {
	e.t.Helper()
	require.Equal(e.t, http.StatusOK, e.register("janedoe", "s3cret-pass").status)
	res := e.login("janedoe", "s3cret-pass")
	require.Equal(e.t, http.StatusSeeOther, res.status)
	require.Equal(e.t, "/list", res.location)
}

func sessionCookie(h http.Header) *http.Cookie {
	for _, c := range (&http.Response{Header: h}).Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	return nil
}

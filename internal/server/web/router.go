package web

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
	"github.com/dmitrijs2005/bookstore/internal/server/sessions"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterOptions carries everything the HTTP layer depends on.
type RouterOptions struct {
	Users    *services.UserService
	Books    *services.BookService
	Sessions sessions.Store
	Logger   logging.Logger

	// SessionSecret signs the session cookie.
	SessionSecret []byte
	// SessionIdleTimeout is both the store idle window and the cookie lifetime.
	SessionIdleTimeout time.Duration
	SecureCookies      bool
}

// NewRouter assembles the chi router with shared middleware and every page
// mounted. Routes under RequireSession redirect anonymous visitors to the
// login page.
func NewRouter(opts RouterOptions) (chi.Router, error) {
	rd, err := newRenderer()
	if err != nil {
		return nil, err
	}

	h := &handlers{
		users:         opts.Users,
		books:         opts.Books,
		sessions:      opts.Sessions,
		render:        rd,
		log:           opts.Logger.With("module", "http"),
		secret:        opts.SessionSecret,
		idle:          opts.SessionIdleTimeout,
		secureCookies: opts.SecureCookies,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(h.loadSession)

	r.NotFound(h.notFound)

	r.Get("/health", h.health)
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.Get("/", h.home)
	r.Get("/about", h.about)
	r.Get("/search", h.searchForm)
	r.Post("/search-result", h.searchResult)
	r.Get("/bargainbooks", h.bargainBooks)
	r.Get("/register", h.registerForm)
	r.Post("/registered", h.registered)
	r.Get("/users/login", h.loginForm)
	r.Post("/users/loggedin", h.loggedIn)

	r.Group(func(r chi.Router) {
		r.Use(RequireSession)

		r.Get("/list", h.listBooks)
		r.Get("/addbook", h.addBookForm)
		r.Post("/bookadded", h.bookAdded)
		r.Get("/users/list", h.listUsers)
		r.Get("/users/audit", h.listAudit)
		r.Get("/logout", h.logout)
	})

	return r, nil
}

package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
	"github.com/dmitrijs2005/bookstore/internal/server/sessions"
)

type handlers struct {
	users         *services.UserService
	books         *services.BookService
	sessions      sessions.Store
	render        *renderer
	log           logging.Logger
	secret        []byte
	idle          time.Duration
	secureCookies bool
}

type booksPage struct {
	Heading string
	Empty   string
	Books   []models.Book
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, "index.html", "Home", nil)
}

func (h *handlers) about(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, "about.html", "About", nil)
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.message(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound), "Page not found.")
}

// parseForm reports false after answering the request itself.
func (h *handlers) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return false
	}
	return true
}

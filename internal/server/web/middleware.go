package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/logging"
	"github.com/dmitrijs2005/bookstore/internal/server/auth"
	"github.com/go-chi/chi/v5/middleware"
)

// loadSession resolves the session cookie and, when it names a live session,
// restarts the idle window, re-issues the cookie and stores the username in
// the request context. Requests without a valid session pass through
// anonymously.
func (h *handlers) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(common.SessionCookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()

		id, err := auth.GetSessionIDFromToken(c.Value, h.secret)
		if err != nil {
			h.log.Debug(ctx, "rejected session token", "error", err)
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		sess, err := h.sessions.Touch(ctx, id)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				h.log.Error(ctx, "session lookup failed", "error", err)
			}
			h.clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		if err := h.setSessionCookie(w, sess.ID); err != nil {
			h.log.Error(ctx, "session cookie signing failed", "error", err)
		}

		next.ServeHTTP(w, r.WithContext(withSession(ctx, sess.ID, sess.UserName)))
	})
}

// RequireSession redirects anonymous requests to the login page without
// calling next.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserName(r.Context()) == "" {
			http.Redirect(w, r, "/users/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs every request once it has been served.
func requestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.Info(r.Context(), "request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

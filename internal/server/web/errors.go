package web

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bookstore/internal/common"
)

// errorResponse maps a service error onto a status code and the message shown
// to the client. Details stay in the server log.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "The submitted form is not valid."
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Wrong username or password"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Page not found."
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "That username is already taken."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again later."
	}
}

// writeError is the single exit for failed requests on read and write paths.
func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorResponse(err)
	if status == http.StatusInternalServerError {
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	h.message(w, r, status, http.StatusText(status), msg)
}

// message renders the shared message page. If even that fails a plain text
// response is written.
func (h *handlers) message(w http.ResponseWriter, r *http.Request, status int, title, text string) {
	if err := h.render.render(w, r, status, "message.html", title, text); err != nil {
		h.log.Error(r.Context(), "template render failed", "template", "message.html", "error", err)
		http.Error(w, text, status)
	}
}

// show renders name or falls back to a generic 500.
func (h *handlers) show(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	if err := h.render.render(w, r, status, name, title, data); err != nil {
		h.log.Error(r.Context(), "template render failed", "template", name, "error", err)
		h.message(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError),
			"Something went wrong. Please try again later.")
	}
}

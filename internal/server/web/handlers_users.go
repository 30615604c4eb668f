package web

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/bookstore/internal/server/forms"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
)

type loginPage struct {
	UserName string
	Error    string
}

func (h *handlers) registerForm(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, "register.html", "Register", forms.RegisterForm{})
}

func (h *handlers) registered(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	f, err := forms.ParseRegister(r.PostForm)
	if err != nil {
		f.Password = ""
		h.show(w, r, http.StatusOK, "register.html", "Register", f)
		return
	}

	user, err := h.users.Register(r.Context(), services.RegisterInput{
		UserName:  f.UserName,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.message(w, r, http.StatusOK, "Registered", fmt.Sprintf(
		"Hello %s %s, you are now registered! We will send an email to you at %s.",
		user.FirstName, user.LastName, user.Email))
}

func (h *handlers) loginForm(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, "login.html", "Log in", loginPage{})
}

func (h *handlers) loggedIn(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	f := forms.ParseLogin(r.PostForm)

	sess, err := h.users.Login(r.Context(), f.UserName, f.Password)
	if err != nil {
		status, msg := errorResponse(err)
		if status == http.StatusInternalServerError {
			h.writeError(w, r, err)
			return
		}
		h.show(w, r, status, "login.html", "Log in", loginPage{UserName: f.UserName, Error: msg})
		return
	}

	if err := h.setSessionCookie(w, sess.ID); err != nil {
		_ = h.users.Logout(r.Context(), sess.ID)
		h.writeError(w, r, err)
		return
	}

	http.Redirect(w, r, "/list", http.StatusSeeOther)
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context(), sessionID(r.Context())); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.clearSessionCookie(w)

	anon := r.WithContext(withSession(r.Context(), "", ""))
	h.message(w, anon, http.StatusOK, "Logged out", "You are now logged out.")
}

func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.show(w, r, http.StatusOK, "users.html", "Users", users)
}

func (h *handlers) listAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.users.ListAudit(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.show(w, r, http.StatusOK, "audit.html", "Login audit", entries)
}

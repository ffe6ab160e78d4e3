package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Vishal-43/img-craft/internal/application/account"
	"github.com/Vishal-43/img-craft/internal/domain"
	"github.com/Vishal-43/img-craft/internal/session"
	"github.com/Vishal-43/img-craft/internal/transport/http/view"
)

const msgUnverified = "Please verify your email before logging in."

// LoginHandler handles login, logout and the signed-in dashboard.
type LoginHandler struct {
	accounts account.Service
	views    *view.Renderer
}

func NewLoginHandler(accounts account.Service, views *view.Renderer) *LoginHandler {
	return &LoginHandler{accounts: accounts, views: views}
}

func (h *LoginHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.views, view.PageLogin, view.Data{})
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	retry := func(msg string) {
		render(w, r, h.views, view.PageLogin, view.Data{Error: msg, Email: email})
	}

	if _, err := h.accounts.GetUserForLogin(r.Context(), email, r.PostFormValue("password")); err != nil {
		if msg, ok := rejection(err); ok {
			retry(msg)
			return
		}
		serverError(w, r, err)
		return
	}
	status, err := h.accounts.CheckVerificationStatus(r.Context(), email)
	if err != nil {
		serverError(w, r, err)
		return
	}
	if status != domain.StatusVerified {
		retry(msgUnverified)
		return
	}

	sess.Set(domain.SessionUser, email)
	saveAndRedirect(w, r, sess, pathDashboard)
}

// Logout always succeeds, with or without a signed-in user.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	sess.Clear()
	saveAndRedirect(w, r, sess, pathLogin)
}

func (h *LoginHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	g := session.Require(sess, domain.SessionUser, pathLogin)
	if !g.OK() {
		seeOther(w, r, g.Redirect)
		return
	}
	u, err := h.accounts.GetUser(r.Context(), g.Value)
	if errors.Is(err, domain.ErrNotFound) {
		// The account vanished under a live session.
		sess.Delete(domain.SessionUser)
		saveAndRedirect(w, r, sess, pathLogin)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	render(w, r, h.views, view.PageDashboard, view.Data{Username: u.Username, Email: u.Email})
}

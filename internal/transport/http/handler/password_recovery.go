package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Vishal-43/img-craft/internal/application/account"
	"github.com/Vishal-43/img-craft/internal/application/mail"
	"github.com/Vishal-43/img-craft/internal/domain"
	"github.com/Vishal-43/img-craft/internal/pkg/password"
	"github.com/Vishal-43/img-craft/internal/pkg/validate"
	"github.com/Vishal-43/img-craft/internal/session"
	"github.com/Vishal-43/img-craft/internal/transport/http/view"
)

const (
	msgEmailNotFound    = "Email not found"
	msgInvalidResetCode = "Invalid code"
)

// PasswordRecoveryHandler handles forgot-password, reset-code check and reset.
type PasswordRecoveryHandler struct {
	accounts account.Service
	mail     mail.Service
	views    *view.Renderer
}

func NewPasswordRecoveryHandler(accounts account.Service, mail mail.Service, views *view.Renderer) *PasswordRecoveryHandler {
	return &PasswordRecoveryHandler{accounts: accounts, mail: mail, views: views}
}

func (h *PasswordRecoveryHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.views, view.PageForgotPassword, view.Data{})
}

func (h *PasswordRecoveryHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	notFound := func() {
		render(w, r, h.views, view.PageForgotPassword, view.Data{Error: msgEmailNotFound, Email: email})
	}
	if !validate.Email(email) {
		notFound()
		return
	}
	if _, err := h.accounts.GetUser(r.Context(), email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound()
			return
		}
		serverError(w, r, err)
		return
	}
	code, err := h.mail.SendPasswordResetCode(r.Context(), email)
	if err != nil {
		serverError(w, r, err)
		return
	}

	sess.Set(domain.SessionResetEmail, email)
	sess.Set(domain.SessionResetCode, code)
	saveAndRedirect(w, r, sess, pathResetPasswordVerify)
}

func (h *PasswordRecoveryHandler) ShowResetPasswordVerify(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.views, view.PageResetPasswordVerify, view.Data{})
}

// ResetPasswordVerify only checks the code; the session is left untouched.
func (h *PasswordRecoveryHandler) ResetPasswordVerify(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	if g := session.Require(sess, domain.SessionResetEmail, pathForgotPassword); !g.OK() {
		seeOther(w, r, g.Redirect)
		return
	}
	expected, _ := sess.Get(domain.SessionResetCode)
	if !codesMatch(strings.TrimSpace(r.PostFormValue("reset_code")), expected) {
		render(w, r, h.views, view.PageResetPasswordVerify, view.Data{Error: msgInvalidResetCode})
		return
	}
	seeOther(w, r, pathResetPassword)
}

func (h *PasswordRecoveryHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.views, view.PageResetPassword, view.Data{})
}

func (h *PasswordRecoveryHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	g := session.Require(sess, domain.SessionResetEmail, pathForgotPassword)
	if !g.OK() {
		seeOther(w, r, g.Redirect)
		return
	}
	newPassword := r.PostFormValue("new_password")
	if !password.IsStrong(newPassword) {
		render(w, r, h.views, view.PageResetPassword, view.Data{Error: password.StrongPasswordMessage})
		return
	}
	if err := h.accounts.UpdateUserPassword(r.Context(), g.Value, newPassword); err != nil {
		serverError(w, r, err)
		return
	}

	sess.Delete(domain.SessionResetCode, domain.SessionResetEmail)
	saveAndRedirect(w, r, sess, pathLogin)
}

package handler

import (
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
	msgInvalidSignup    = "Please provide a username and a valid email address."
	msgPasswordMismatch = "Passwords do not match"
	msgInvalidVerify    = "Invalid verification code."
)

// SignupHandler handles registration and email verification.
type SignupHandler struct {
	accounts account.Service
	mail     mail.Service
	views    *view.Renderer
}

func NewSignupHandler(accounts account.Service, mail mail.Service, views *view.Renderer) *SignupHandler {
	return &SignupHandler{accounts: accounts, mail: mail, views: views}
}

func (h *SignupHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.views, view.PageSignup, view.Data{})
}

// Signup creates the account, mails a verification code and parks the
// pending email and code in the session.
func (h *SignupHandler) Signup(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	form := domain.SignupForm{
		Username:        strings.TrimSpace(r.PostFormValue("username")),
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	retry := func(msg string) {
		render(w, r, h.views, view.PageSignup, view.Data{Error: msg, Username: form.Username, Email: form.Email})
	}

	if err := validate.Struct(&form); err != nil {
		retry(msgInvalidSignup)
		return
	}
	if form.Password != form.ConfirmPassword {
		retry(msgPasswordMismatch)
		return
	}
	if !password.IsStrong(form.Password) {
		retry(password.StrongPasswordMessage)
		return
	}

	if _, err := h.accounts.CreateUser(r.Context(), form.Username, form.Email, form.Password); err != nil {
		if msg, ok := rejection(err); ok {
			retry(msg)
			return
		}
		serverError(w, r, err)
		return
	}
	code, err := h.mail.SendVerificationCode(r.Context(), form.Email)
	if err != nil {
		serverError(w, r, err)
		return
	}

	sess.Set(domain.SessionUnverifiedEmail, form.Email)
	sess.Set(domain.SessionVerificationCode, code)
	saveAndRedirect(w, r, sess, pathVerify)
}

func (h *SignupHandler) ShowVerify(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	g := session.Require(sess, domain.SessionUnverifiedEmail, pathSignup)
	if !g.OK() {
		seeOther(w, r, g.Redirect)
		return
	}
	render(w, r, h.views, view.PageVerify, view.Data{Email: g.Value})
}

// Verify marks the pending account verified when the code matches, then
// clears the whole session.
func (h *SignupHandler) Verify(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	g := session.Require(sess, domain.SessionUnverifiedEmail, pathSignup)
	if !g.OK() {
		seeOther(w, r, g.Redirect)
		return
	}
	expected, _ := sess.Get(domain.SessionVerificationCode)
	if !codesMatch(strings.TrimSpace(r.PostFormValue("code")), expected) {
		render(w, r, h.views, view.PageVerify, view.Data{Error: msgInvalidVerify, Email: g.Value})
		return
	}

	if err := h.accounts.UpdateVerificationStatus(r.Context(), g.Value, domain.StatusVerified); err != nil {
		serverError(w, r, err)
		return
	}
	sess.Clear()
	saveAndRedirect(w, r, sess, pathLogin)
}

package handler

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Vishal-43/img-craft/internal/domain"
	"github.com/Vishal-43/img-craft/internal/session"
	"github.com/Vishal-43/img-craft/internal/transport/http/middleware"
	"github.com/Vishal-43/img-craft/internal/transport/http/view"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Paths the flows redirect to.
const (
	pathSignup              = "/signup"
	pathVerify              = "/verify"
	pathLogin               = "/login"
	pathDashboard           = "/dashboard"
	pathForgotPassword      = "/forgot_passsword"
	pathResetPasswordVerify = "/reset_password_verify"
	pathResetPassword       = "/reset_password"
)

const msgInternal = "internal server error"

func render(w http.ResponseWriter, r *http.Request, views *view.Renderer, page string, data view.Data) {
	if err := views.Render(w, http.StatusOK, page, data); err != nil {
		serverError(w, r, err)
	}
}

// serverError logs an unexpected failure and answers 500 without details.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
		"err", err,
	)
	http.Error(w, msgInternal, http.StatusInternalServerError)
}

func seeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// currentSession returns the session injected by middleware.Session. Routes
// are always mounted behind it, so a missing session is a wiring fault.
func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		serverError(w, r, errors.New("session middleware not installed"))
		return nil, false
	}
	return sess, true
}

func saveAndRedirect(w http.ResponseWriter, r *http.Request, sess *session.Session, path string) {
	if err := sess.Save(r, w); err != nil {
		serverError(w, r, err)
		return
	}
	seeOther(w, r, path)
}

// rejection extracts the user-facing message of a business refusal.
func rejection(err error) (string, bool) {
	var rej *domain.Rejection
	if errors.As(err, &rej) {
		return rej.Message, true
	}
	return "", false
}

// codesMatch compares a submitted code with the one held in the session.
func codesMatch(submitted, expected string) bool {
	return expected != "" && subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) == 1
}

// Package view renders the HTML pages of the account flows.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names, one per template file.
const (
	PageHome                = "home"
	PageSignup              = "signup"
	PageVerify              = "verify"
	PageLogin               = "login"
	PageForgotPassword      = "forgot_password"
	PageResetPasswordVerify = "reset_password_verify"
	PageResetPassword       = "reset_password"
	PageDashboard           = "dashboard"
)

var titles = map[string]string{
	PageHome:                "Welcome",
	PageSignup:              "Sign up",
	PageVerify:              "Verify your email",
	PageLogin:               "Log in",
	PageForgotPassword:      "Forgot password",
	PageResetPasswordVerify: "Enter reset code",
	PageResetPassword:       "Choose a new password",
	PageDashboard:           "Dashboard",
}

// Data is what every page template receives.
type Data struct {
	Title    string
	Error    string
	Username string
	Email    string
}

// Renderer holds one parsed template set per page, each sharing the base layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	base, err := template.ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parse base template: %w", err)
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(titles))}
	for name := range titles {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template failure never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if data.Title == "" {
		data.Title = titles[page]
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and other assets. Mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

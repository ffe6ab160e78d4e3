package http

import (
	"net/http"

	"github.com/Vishal-43/img-craft/internal/application/account"
	"github.com/Vishal-43/img-craft/internal/application/mail"
	"github.com/Vishal-43/img-craft/internal/config"
	"github.com/Vishal-43/img-craft/internal/infrastructure/smtp"
	"github.com/Vishal-43/img-craft/internal/session"
	"github.com/Vishal-43/img-craft/internal/transport/http/handler"
	appmiddleware "github.com/Vishal-43/img-craft/internal/transport/http/middleware"
	"github.com/Vishal-43/img-craft/internal/transport/http/view"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	Mailer      smtp.Mailer
	Sessions    *session.Manager
	RateLimiter *appmiddleware.RateLimiter // optional; built from cfg when nil
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, error) {
	views, err := view.New()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	formRL := deps.RateLimiter
	if formRL == nil {
		formRL = appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	accountSvc := account.NewService(account.ServiceDeps{UserRepo: deps.UserRepo})
	mailSvc := mail.NewService(deps.Mailer)

	healthH := handler.NewHealthHandler()
	pageH := handler.NewPageHandler(views)
	signupH := handler.NewSignupHandler(accountSvc, mailSvc, views)
	loginH := handler.NewLoginHandler(accountSvc, views)
	pwH := handler.NewPasswordRecoveryHandler(accountSvc, mailSvc, views)

	r.Get("/health", healthH.Health)
	r.Handle("/static/*", view.Static())

	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.Session(deps.Sessions))

		r.Get("/", pageH.Home)
		r.Get("/signup", signupH.ShowSignup)
		r.Get("/login", loginH.ShowLogin)
		r.Get("/logout", loginH.Logout)
		r.Get("/forgot_passsword", pwH.ShowForgotPassword)
		r.Get("/reset_password_verify", pwH.ShowResetPasswordVerify)
		r.Get("/reset_password", pwH.ShowResetPassword)
		r.Get("/verify", signupH.ShowVerify)
		r.Get("/dashboard", loginH.Dashboard)

		// Form submissions are rate limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(formRL.Limit)

			r.Post("/signup", signupH.Signup)
			r.Post("/verify", signupH.Verify)
			r.Post("/login", loginH.Login)
			r.Post("/forgot_passsword", pwH.ForgotPassword)
			r.Post("/reset_password_verify", pwH.ResetPasswordVerify)
			r.Post("/reset_password", pwH.ResetPassword)
		})
	})

	return r, nil
}

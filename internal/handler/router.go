package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gsi-session/internal/middleware"
)

// Fixed routes. SIGNIN_PATH and LANDING_PATH must not reuse any of them.
const (
	HealthPath         = "/health"
	MetricsPath        = "/metrics"
	LoginPath          = "/login"
	DefaultSignOutPath = "/signout"
)

// ReservedPaths lists the routes mounted regardless of configuration
func ReservedPaths() []string {
	return []string{HealthPath, MetricsPath, LoginPath, DefaultSignOutPath}
}

// RouterDeps is everything NewRouter mounts
type RouterDeps struct {
	Auth     *AuthHandler
	Sessions middleware.SessionResolver
	Routes   middleware.Routes
	// SignInLimiter throttles the credential-accepting POSTs per client IP.
	// Nil disables throttling.
	SignInLimiter *middleware.RateLimiter
}

// NewRouter builds the full route table
func NewRouter(d RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics())

	r.Get(HealthPath, Health)
	r.Handle(MetricsPath, promhttp.Handler())

	// Block all other routes to prevent access to files we're not explicitly serving
	r.NotFound(NotFound)

	rejectSignIn := http.HandlerFunc(d.Auth.RejectSignIn)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthGate(middleware.RequireUnauthenticated, d.Sessions, d.Routes))
		r.Get(d.Routes.SignIn, d.Auth.SignInPage)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthGate(middleware.RequireAuthenticated, d.Sessions, d.Routes))
		r.Get(d.Routes.Landing, d.Auth.Home)
		r.Get(d.Auth.config.SignOutPath, d.Auth.SignOut)
	})

	r.Group(func(r chi.Router) {
		if d.SignInLimiter != nil {
			r.Use(d.SignInLimiter.Middleware(rejectSignIn))
		}
		r.Use(middleware.DoubleSubmit(rejectSignIn))
		r.Post(d.Routes.SignIn, d.Auth.SignIn)
	})

	r.Group(func(r chi.Router) {
		if d.SignInLimiter != nil {
			r.Use(d.SignInLimiter.Middleware(nil))
		}
		r.Use(middleware.DoubleSubmit(http.HandlerFunc(LoginFailed)))
		r.Post(LoginPath, d.Auth.Login)
	})

	return r
}

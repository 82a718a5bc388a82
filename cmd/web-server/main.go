package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gsi-session/internal/config"
	"gsi-session/internal/cookie"
	"gsi-session/internal/handler"
	"gsi-session/internal/identity"
	"gsi-session/internal/middleware"
	"gsi-session/internal/observability"
	"gsi-session/internal/service"
	"gsi-session/internal/token"
)

func main() {
	cfg := config.Load()

	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)

	slog.Info("starting web server", slog.String("environment", cfg.Environment))

	tokenCfg := token.Config{Secret: []byte(cfg.SessionSecret), MaxLifetime: cookie.MaxAge}
	issuer, err := token.NewIssuer(tokenCfg)
	if err != nil {
		slog.Error("failed to create token issuer", slog.String("error", err.Error()))
		os.Exit(1)
	}
	verifier, err := token.NewVerifier(tokenCfg)
	if err != nil {
		slog.Error("failed to create token verifier", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cookies, err := cookie.NewStore(cfg.CookieOptions())
	if err != nil {
		slog.Error("failed to create cookie store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	discoveryCtx, discoveryCancel := context.WithTimeout(context.Background(), cfg.IdentityTimeout)
	defer discoveryCancel()

	google, err := identity.NewGoogle(discoveryCtx, cfg.GoogleClientID)
	if err != nil {
		slog.Error("failed to discover google identity provider", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("google identity provider ready")

	pages, err := handler.NewPages()
	if err != nil {
		slog.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessionService := service.NewSessionService(verifier, token.NewRefresher(issuer), cookies)
	authService := service.NewAuthService(google, issuer, cfg.IdentityTimeout)

	routes := cfg.Routes()
	authHandler := handler.NewAuthHandler(authService, sessionService, cookies, pages, handler.PageConfig{
		GoogleClientID: cfg.GoogleClientID,
		LoginURI:       cfg.GoogleLoginURI,
	}, routes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signInLimiter := middleware.NewRateLimiter(ctx, 5, 10)
	defer signInLimiter.Stop()

	r := handler.NewRouter(handler.RouterDeps{
		Auth:          authHandler,
		Sessions:      sessionService,
		Routes:        routes,
		SignInLimiter: signInLimiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("web server listening", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.String("error", err.Error()))
	}

	cancel()

	slog.Info("server stopped gracefully")
}

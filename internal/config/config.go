package config

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gsi-session/internal/cookie"
	"gsi-session/internal/handler"
	"gsi-session/internal/middleware"
)

// Config holds application configuration
type Config struct {
	Port            string
	Environment     string // development, staging, production
	SessionSecret   string
	CookieName      string
	CookieSigned    bool
	CookieSecret    string
	CookieSameSite  string // strict, lax
	GoogleClientID  string
	GoogleLoginURI  string
	SignInPath      string
	LandingPath     string
	IdentityTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

// Load loads configuration from environment variables and validates it.
// An invalid configuration aborts the process.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Configuration invalid: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	return cfg
}

// FromEnv reads every key with its default. It only fails on values that
// cannot be parsed; semantic checks are left to Validate.
func FromEnv() (*Config, error) {
	signed, err := strconv.ParseBool(getEnv("COOKIE_SIGNED", "false"))
	if err != nil {
		return nil, fmt.Errorf("COOKIE_SIGNED: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("IDENTITY_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("IDENTITY_TIMEOUT: %w", err)
	}

	sessionSecret := getEnv("SESSION_SECRET", "")

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		SessionSecret:   sessionSecret,
		CookieName:      getEnv("COOKIE_NAME", cookie.DefaultName),
		CookieSigned:    signed,
		CookieSecret:    getEnv("COOKIE_SECRET", sessionSecret),
		CookieSameSite:  strings.ToLower(getEnv("COOKIE_SAMESITE", "strict")),
		GoogleClientID:  getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleLoginURI:  getEnv("GOOGLE_LOGIN_URI", "/signin"),
		SignInPath:      getEnv("SIGNIN_PATH", "/signin"),
		LandingPath:     getEnv("LANDING_PATH", "/"),
		IdentityTimeout: timeout,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}, nil
}

// Validate checks configuration for security and correctness
func (c *Config) Validate() error {
	// The signing secret has no fallback in any environment
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must be set")
	}

	// Production environment requires strong secrets
	if c.IsProduction() {
		if c.SessionSecret == "change-this-in-production" {
			return fmt.Errorf("SESSION_SECRET must be set to a strong random value in production")
		}
		if len(c.SessionSecret) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 characters in production (got %d)", len(c.SessionSecret))
		}
	}

	if c.GoogleClientID == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID must be set")
	}

	if c.CookieSigned && c.CookieSecret == "" {
		return fmt.Errorf("COOKIE_SECRET must be set when COOKIE_SIGNED is true")
	}

	if _, err := ParseSameSite(c.CookieSameSite); err != nil {
		return err
	}

	if c.IdentityTimeout <= 0 {
		return fmt.Errorf("IDENTITY_TIMEOUT must be positive (got %s)", c.IdentityTimeout)
	}

	for key, path := range map[string]string{"SIGNIN_PATH": c.SignInPath, "LANDING_PATH": c.LandingPath} {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("%s must be an absolute path (got %q)", key, path)
		}
	}
	if c.SignInPath == c.LandingPath {
		return fmt.Errorf("SIGNIN_PATH and LANDING_PATH must differ")
	}
	for _, reserved := range handler.ReservedPaths() {
		if path.Clean(c.SignInPath) == reserved {
			return fmt.Errorf("SIGNIN_PATH must not be the reserved route %s", reserved)
		}
		if path.Clean(c.LandingPath) == reserved {
			return fmt.Errorf("LANDING_PATH must not be the reserved route %s", reserved)
		}
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev" || c.Environment == ""
}

// CookieOptions maps the cookie keys onto the store's options. The Secure
// flag is dropped only in development so plain http://localhost works.
func (c *Config) CookieOptions() cookie.Options {
	sameSite, _ := ParseSameSite(c.CookieSameSite)
	return cookie.Options{
		Name:     c.CookieName,
		SameSite: sameSite,
		Secure:   !c.IsDevelopment(),
		Signed:   c.CookieSigned,
		Secret:   []byte(c.CookieSecret),
	}
}

// Routes returns the gate's redirect destinations
func (c *Config) Routes() middleware.Routes {
	return middleware.Routes{
		SignIn:  c.SignInPath,
		Landing: c.LandingPath,
	}
}

// ParseSameSite accepts "strict" or "lax"
func ParseSameSite(v string) (http.SameSite, error) {
	switch strings.ToLower(v) {
	case "", "strict":
		return http.SameSiteStrictMode, nil
	case "lax":
		return http.SameSiteLaxMode, nil
	default:
		return 0, fmt.Errorf("COOKIE_SAMESITE must be strict or lax (got %q)", v)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

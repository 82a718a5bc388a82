package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gsi-session/internal/cookie"
	"gsi-session/internal/domain"
	"gsi-session/internal/token"
)

// Counter for generating unique subjects
var idCounter atomic.Int64

// TestSecret signs every token minted by the fixtures
var TestSecret = []byte("fixture-secret-with-at-least-32-bytes")

// ClaimsOptions allows customizing claims fixture creation
type ClaimsOptions struct {
	Subject string
	Name    string
	Picture string
}

// NewTestClaims creates session claims with sensible defaults
func NewTestClaims(opts ...func(*ClaimsOptions)) domain.SessionClaims {
	n := idCounter.Add(1)
	o := &ClaimsOptions{
		Subject: fmt.Sprintf("1000%d", n),
		Name:    fmt.Sprintf("Test User %d", n),
		Picture: fmt.Sprintf("https://example.com/avatar/%d.png", n),
	}
	for _, opt := range opts {
		opt(o)
	}
	return domain.SessionClaims{
		Subject: o.Subject,
		Name:    o.Name,
		Picture: o.Picture,
	}
}

// WithSubject sets the subject
func WithSubject(sub string) func(*ClaimsOptions) {
	return func(o *ClaimsOptions) {
		o.Subject = sub
	}
}

// WithName sets the display name
func WithName(name string) func(*ClaimsOptions) {
	return func(o *ClaimsOptions) {
		o.Name = name
	}
}

// WithoutPicture clears the avatar URL
func WithoutPicture() func(*ClaimsOptions) {
	return func(o *ClaimsOptions) {
		o.Picture = ""
	}
}

// TokenConfig returns the token config shared by fixtures, optionally with a
// fixed clock.
func TokenConfig(now ...time.Time) token.Config {
	cfg := token.Config{Secret: TestSecret}
	if len(now) > 0 {
		at := now[0]
		cfg.Now = func() time.Time { return at }
	}
	return cfg
}

// IssueToken mints a token for claims as if issued at the given time
func IssueToken(t *testing.T, claims domain.SessionClaims, issuedAt time.Time) string {
	t.Helper()
	issuer, err := token.NewIssuer(TokenConfig(issuedAt))
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	raw, err := issuer.Issue(claims)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return raw
}

// ExpiredToken mints a token whose exp lapsed by the given amount
func ExpiredToken(t *testing.T, claims domain.SessionClaims, by time.Duration) string {
	t.Helper()
	return IssueToken(t, claims, time.Now().Add(-token.DefaultTTL-by))
}

// Session bundles the real token and cookie components wired the way the
// server wires them.
type Session struct {
	Issuer    *token.Issuer
	Verifier  *token.Verifier
	Refresher *token.Refresher
	Cookies   *cookie.Store
}

// NewSession builds the session components with the fixture secret
func NewSession(t *testing.T, opts cookie.Options) *Session {
	t.Helper()
	issuer, err := token.NewIssuer(TokenConfig())
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	verifier, err := token.NewVerifier(TokenConfig())
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	store, err := cookie.NewStore(opts)
	if err != nil {
		t.Fatalf("new cookie store: %v", err)
	}
	return &Session{
		Issuer:    issuer,
		Verifier:  verifier,
		Refresher: token.NewRefresher(issuer),
		Cookies:   store,
	}
}

// Package token mints and checks the signed session tokens stored in the
// session cookie. Tokens are HS256 JWTs with a short fixed lifetime.
package token

import (
	"time"

	"gsi-session/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultTTL is the lifetime of every session token
	DefaultTTL = 15 * time.Minute
	// DefaultMaxLifetime caps how long after sign-in a token may still be
	// refreshed. It matches the session cookie's Max-Age.
	DefaultMaxLifetime = 7 * 24 * time.Hour
)

// Config is built once at startup and shared read-only by the issuer,
// verifier and refresher.
type Config struct {
	Secret      []byte
	TTL         time.Duration
	MaxLifetime time.Duration
	// Now overrides the clock; nil means time.Now
	Now func() time.Time
}

func (c Config) normalize() (Config, error) {
	if len(c.Secret) == 0 {
		return c, domain.ErrSigningConfigMissing
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.MaxLifetime <= 0 {
		c.MaxLifetime = DefaultMaxLifetime
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c, nil
}

// sessionClaims is the JWT payload: application claims plus iat/exp/jti.
// auth_time is the OIDC claim name for the time the user authenticated.
type sessionClaims struct {
	Name     string           `json:"name"`
	Picture  string           `json:"picture,omitempty"`
	AuthTime *jwt.NumericDate `json:"auth_time,omitempty"`
	jwt.RegisteredClaims
}

func (c *sessionClaims) toDomain() *domain.SessionClaims {
	out := &domain.SessionClaims{
		Subject: c.Subject,
		Name:    c.Name,
		Picture: c.Picture,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	if c.AuthTime != nil {
		out.AuthTime = c.AuthTime.Time
	}
	return out
}

var signingMethod = jwt.SigningMethodHS256

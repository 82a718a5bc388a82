package token

import (
	"errors"
	"fmt"
	"time"

	"gsi-session/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer signs session claims into a token
type Issuer struct {
	config Config
}

// NewIssuer fails with domain.ErrSigningConfigMissing when no secret is set.
// Callers are expected to treat that as fatal at startup.
func NewIssuer(cfg Config) (*Issuer, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	return &Issuer{config: cfg}, nil
}

// TTL is the fixed token lifetime
func (i *Issuer) TTL() time.Duration {
	return i.config.TTL
}

// MaxLifetime is how long after sign-in a session may be refreshed
func (i *Issuer) MaxLifetime() time.Duration {
	return i.config.MaxLifetime
}

// Issue signs claims for a fresh sign-in: iat = auth_time = now and
// exp = now + TTL. Any temporal fields already present on claims are ignored.
func (i *Issuer) Issue(claims domain.SessionClaims) (string, error) {
	signed, _, err := i.mint(claims, time.Time{})
	return signed, err
}

// mint signs claims and also returns them with the temporal fields the
// token carries, truncated to the second like the JWT encoding. A zero
// authTime starts a new session at now.
func (i *Issuer) mint(claims domain.SessionClaims, authTime time.Time) (string, *domain.SessionClaims, error) {
	if claims.Subject == "" {
		return "", nil, errors.New("session claims missing subject")
	}

	now := i.config.Now()
	if authTime.IsZero() {
		authTime = now
	}
	payload := sessionClaims{
		Name:     claims.Name,
		Picture:  claims.Picture,
		AuthTime: jwt.NewNumericDate(authTime),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.config.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, payload).SignedString(i.config.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, payload.toDomain(), nil
}

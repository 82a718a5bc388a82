package token

import (
	"errors"
	"fmt"

	"gsi-session/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks signature and expiry of session tokens
type Verifier struct {
	config Config
	parser *jwt.Parser
}

func NewVerifier(cfg Config) (*Verifier, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(cfg.Now),
	)
	return &Verifier{config: cfg, parser: parser}, nil
}

// Verify returns the claims of a valid token, or one of
// domain.ErrTokenMalformed, domain.ErrTokenSignatureInvalid and
// domain.ErrTokenExpired. The signature is checked before any temporal claim,
// so a tampered token never reports as expired.
func (v *Verifier) Verify(raw string) (*domain.SessionClaims, error) {
	if raw == "" {
		return nil, domain.ErrTokenMalformed
	}

	claims := &sessionClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return v.config.Secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrTokenMalformed)
	}
	return claims.toDomain(), nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", domain.ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
	default:
		// missing exp, iat in the future and similar claim problems
		return fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gsi-session/internal/domain"
	"gsi-session/internal/observability"
)

// DefaultIdentityTimeout bounds the call to the identity provider
const DefaultIdentityTimeout = 10 * time.Second

type TokenIssuer interface {
	Issue(claims domain.SessionClaims) (string, error)
}

// AuthService turns a verified identity-provider credential into a session
// token.
type AuthService struct {
	identity domain.IdentityVerifier
	issuer   TokenIssuer
	timeout  time.Duration
}

func NewAuthService(identity domain.IdentityVerifier, issuer TokenIssuer, timeout time.Duration) *AuthService {
	if timeout <= 0 {
		timeout = DefaultIdentityTimeout
	}
	return &AuthService{
		identity: identity,
		issuer:   issuer,
		timeout:  timeout,
	}
}

// SignIn verifies credential with the identity provider and issues a session
// token for the identity it asserts. There is no retry: a failed or timed-out
// verification ends the attempt with domain.ErrIdentityVerificationFailed.
func (s *AuthService) SignIn(ctx context.Context, credential string) (string, *domain.SessionClaims, error) {
	if credential == "" {
		return "", nil, fmt.Errorf("%w: no credential", domain.ErrIdentityVerificationFailed)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	id, err := s.identity.Verify(verifyCtx, credential)
	observability.IdentityVerifyDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrIdentityVerificationFailed) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: %v", domain.ErrIdentityVerificationFailed, err)
	}
	if id == nil || id.Subject == "" {
		return "", nil, fmt.Errorf("%w: identity without subject", domain.ErrIdentityVerificationFailed)
	}

	claims := id.Claims()
	signed, err := s.issuer.Issue(claims)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}

	observability.SessionTokensIssued.WithLabelValues("signin").Inc()
	return signed, &claims, nil
}

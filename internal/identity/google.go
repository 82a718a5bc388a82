// Package identity verifies the ID token Google Identity Services posts to
// the sign-in endpoint.
package identity

import (
	"context"
	"errors"
	"fmt"

	"gsi-session/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
)

// GoogleIssuer is the OIDC issuer for Google accounts
const GoogleIssuer = "https://accounts.google.com"

// Google verifies GSI credentials against Google's published signing keys
type Google struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogle fetches Google's discovery document and prepares a verifier
// that only accepts tokens minted for clientID.
func NewGoogle(ctx context.Context, clientID string) (*Google, error) {
	if clientID == "" {
		return nil, errors.New("google client id missing")
	}

	provider, err := oidc.NewProvider(ctx, GoogleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	return &Google{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// NewGoogleWithKeySet builds a verifier from a fixed key set, skipping
// discovery.
func NewGoogleWithKeySet(issuer, clientID string, keys oidc.KeySet) *Google {
	return &Google{
		verifier: oidc.NewVerifier(issuer, keys, &oidc.Config{ClientID: clientID}),
	}
}

// Verify checks signature, issuer, audience and expiry of credential and
// returns the identity it asserts. Every failure wraps
// domain.ErrIdentityVerificationFailed.
func (g *Google) Verify(ctx context.Context, credential string) (*domain.Identity, error) {
	if credential == "" {
		return nil, fmt.Errorf("%w: empty credential", domain.ErrIdentityVerificationFailed)
	}

	idToken, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIdentityVerificationFailed, err)
	}

	var claims struct {
		Subject string `json:"sub"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
		Email   string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: claims: %v", domain.ErrIdentityVerificationFailed, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrIdentityVerificationFailed)
	}

	return &domain.Identity{
		Subject: claims.Subject,
		Name:    claims.Name,
		Picture: claims.Picture,
		Email:   claims.Email,
	}, nil
}

package domain

import (
	"context"
	"time"
)

// SessionClaims is the identity carried inside a session token.
// IssuedAt, ExpiresAt and AuthTime are zero until a token has been minted or
// decoded. AuthTime is the original sign-in and survives every refresh.
type SessionClaims struct {
	Subject   string    `json:"sub"`
	Name      string    `json:"name"`
	Picture   string    `json:"picture,omitempty"`
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
	AuthTime  time.Time `json:"-"`
}

// Stable returns a copy of the claims without the temporal fields.
func (c SessionClaims) Stable() SessionClaims {
	return SessionClaims{
		Subject: c.Subject,
		Name:    c.Name,
		Picture: c.Picture,
	}
}

// Identity is what the identity provider vouches for after verifying a
// sign-in credential
type Identity struct {
	Subject string
	Name    string
	Picture string
	Email   string
}

// Claims maps a verified identity onto the claims stored in a session token
func (i *Identity) Claims() SessionClaims {
	return SessionClaims{
		Subject: i.Subject,
		Name:    i.Name,
		Picture: i.Picture,
	}
}

// IdentityVerifier checks a credential issued by the external identity
// provider. Implementations perform network I/O and must honour ctx.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

package identity

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"gsi-session/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "1234.apps.googleusercontent.com"

type idClaims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Email   string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signIDToken(t *testing.T, key *rsa.PrivateKey, claims idClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func validClaims() idClaims {
	return idClaims{
		Name:    "Ada Lovelace",
		Picture: "https://lh3.googleusercontent.com/a/ada",
		Email:   "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    GoogleIssuer,
			Subject:   "110248495921238986420",
			Audience:  jwt.ClaimStrings{testClientID},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newVerifier(key *rsa.PrivateKey) *Google {
	keys := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{key.Public()}}
	return NewGoogleWithKeySet(GoogleIssuer, testClientID, keys)
}

func TestGoogle_Verify(t *testing.T) {
	key := newKey(t)
	g := newVerifier(key)

	id, err := g.Verify(context.Background(), signIDToken(t, key, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "110248495921238986420", id.Subject)
	assert.Equal(t, "Ada Lovelace", id.Name)
	assert.Equal(t, "https://lh3.googleusercontent.com/a/ada", id.Picture)
	assert.Equal(t, "ada@example.com", id.Email)
}

func TestGoogle_VerifyFailures(t *testing.T) {
	key := newKey(t)
	otherKey := newKey(t)
	g := newVerifier(key)

	tests := []struct {
		name   string
		signer *rsa.PrivateKey
		mutate func(*idClaims)
	}{
		{"wrong_audience", key, func(c *idClaims) { c.Audience = jwt.ClaimStrings{"someone-else"} }},
		{"wrong_issuer", key, func(c *idClaims) { c.Issuer = "https://evil.example.com" }},
		{"expired", key, func(c *idClaims) { c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute)) }},
		{"missing_subject", key, func(c *idClaims) { c.Subject = "" }},
		{"unknown_key", otherKey, func(c *idClaims) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			tt.mutate(&claims)

			_, err := g.Verify(context.Background(), signIDToken(t, tt.signer, claims))
			assert.ErrorIs(t, err, domain.ErrIdentityVerificationFailed)
		})
	}
}

func TestGoogle_VerifyEmptyCredential(t *testing.T) {
	_, err := newVerifier(newKey(t)).Verify(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrIdentityVerificationFailed)
}

func TestGoogle_VerifyGarbage(t *testing.T) {
	_, err := newVerifier(newKey(t)).Verify(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, domain.ErrIdentityVerificationFailed)
}

func TestNewGoogle_RequiresClientID(t *testing.T) {
	_, err := NewGoogle(context.Background(), "")
	assert.Error(t, err)
}

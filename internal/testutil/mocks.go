// Package testutil provides shared test utilities, mocks, and fixtures
// for testing the gsi-session application.
package testutil

import (
	"context"
	"errors"
	"sync"

	"gsi-session/internal/domain"
)

// Common test errors
var (
	ErrMockNotImplemented = errors.New("mock function not implemented")
)

// MockIdentityVerifier implements domain.IdentityVerifier for testing
type MockIdentityVerifier struct {
	mu sync.Mutex

	// VerifyFunc overrides the default lookup in Identities
	VerifyFunc func(ctx context.Context, credential string) (*domain.Identity, error)

	// Identities maps accepted credentials to the identity they assert
	Identities map[string]*domain.Identity

	Calls []string
}

// NewMockIdentityVerifier creates a verifier that accepts nothing until
// identities are added
func NewMockIdentityVerifier() *MockIdentityVerifier {
	return &MockIdentityVerifier{
		Identities: make(map[string]*domain.Identity),
	}
}

// Accept registers credential as proof of the identity behind claims
func (m *MockIdentityVerifier) Accept(credential string, claims domain.SessionClaims) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Identities[credential] = &domain.Identity{
		Subject: claims.Subject,
		Name:    claims.Name,
		Picture: claims.Picture,
	}
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, credential string) (*domain.Identity, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, credential)
	m.mu.Unlock()

	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, credential)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.Identities[credential]
	if !ok {
		return nil, domain.ErrIdentityVerificationFailed
	}
	return id, nil
}

// CallCount returns how many times Verify was invoked
func (m *MockIdentityVerifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

package token

import (
	"fmt"
	"time"

	"gsi-session/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Refresher reissues a session token whose only defect is a lapsed exp
type Refresher struct {
	issuer *Issuer
	parser *jwt.Parser
}

func NewRefresher(issuer *Issuer) *Refresher {
	return &Refresher{
		issuer: issuer,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{signingMethod.Alg()})),
	}
}

// Refresh must only be called with a token the Verifier rejected with
// domain.ErrTokenExpired; the signature was proven there and is not checked
// again. The stable claims and auth_time are carried into a fresh token.
// A session whose auth_time is missing or older than the issuer's
// MaxLifetime is not renewed. Returned claims describe the new token.
func (r *Refresher) Refresh(expired string) (string, *domain.SessionClaims, error) {
	claims := &sessionClaims{}
	if _, _, err := r.parser.ParseUnverified(expired, claims); err != nil {
		return "", nil, fmt.Errorf("%w: decode: %v", domain.ErrRefreshFailed, err)
	}
	if claims.Subject == "" {
		return "", nil, fmt.Errorf("%w: missing subject", domain.ErrRefreshFailed)
	}
	if claims.AuthTime == nil {
		return "", nil, fmt.Errorf("%w: missing auth_time", domain.ErrRefreshFailed)
	}

	authTime := claims.AuthTime.Time
	if age := r.issuer.config.Now().Sub(authTime); age > r.issuer.MaxLifetime() {
		return "", nil, fmt.Errorf("%w: session lifetime exceeded (signed in %s ago)",
			domain.ErrRefreshFailed, age.Truncate(time.Second))
	}

	recovered := claims.toDomain()
	fresh, minted, err := r.issuer.mint(recovered.Stable(), recovered.AuthTime)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrRefreshFailed, err)
	}
	return fresh, minted, nil
}

package security

import (
	"crypto/hmac"

	"gsi-session/internal/domain"
)

// DoubleSubmitField is the form field and cookie name Google Identity
// Services uses for its CSRF token.
const DoubleSubmitField = "g_csrf_token"

// ValidateDoubleSubmit compares the token posted in the request body with
// the one the identity provider stored in a cookie. A cross-site forger can
// trigger the POST but cannot read the cookie, so cannot make them match.
// An absent token never matches, not even another absent token.
func ValidateDoubleSubmit(bodyToken, cookieToken string) error {
	if cookieToken == "" {
		return domain.ErrCSRFMissingCookieToken
	}
	if bodyToken == "" {
		return domain.ErrCSRFMissingBodyToken
	}
	if !hmac.Equal([]byte(bodyToken), []byte(cookieToken)) {
		return domain.ErrCSRFMismatch
	}
	return nil
}

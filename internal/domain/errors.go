package domain

import "errors"

// CSRF double-submit failures
var (
	ErrCSRFMissingCookieToken = errors.New("no CSRF token in cookie")
	ErrCSRFMissingBodyToken   = errors.New("no CSRF token in body")
	ErrCSRFMismatch           = errors.New("CSRF tokens do not match")
)

// Sign-in and session token failures
var (
	ErrIdentityVerificationFailed = errors.New("identity verification failed")
	ErrTokenMalformed             = errors.New("session token malformed")
	ErrTokenSignatureInvalid      = errors.New("session token signature invalid")
	ErrTokenExpired               = errors.New("session token expired")
	ErrRefreshFailed              = errors.New("session refresh failed")
	ErrSigningConfigMissing       = errors.New("session signing secret not configured")
)

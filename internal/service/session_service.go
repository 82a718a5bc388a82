package service

import (
	"errors"
	"net/http"
	"time"

	"gsi-session/internal/domain"
	"gsi-session/internal/observability"
)

// SessionState is the outcome of resolving one request's session cookie.
// It is computed per request and never stored.
type SessionState int

const (
	StateNoCookie SessionState = iota
	StateMalformed
	StateExpired
	StateValid
)

func (s SessionState) String() string {
	switch s {
	case StateNoCookie:
		return "no_cookie"
	case StateMalformed:
		return "malformed"
	case StateExpired:
		return "expired"
	case StateValid:
		return "valid"
	default:
		return "unknown"
	}
}

// Resolution is the result of SessionService.Resolve. Claims is only set
// when State is StateValid. An expired token that could not be refreshed
// reports StateExpired with Err wrapping domain.ErrRefreshFailed.
type Resolution struct {
	State     SessionState
	Claims    *domain.SessionClaims
	Refreshed bool
	Err       error
}

// Authenticated reports whether the request carries a usable session
func (r Resolution) Authenticated() bool {
	return r.State == StateValid && r.Claims != nil
}

type TokenVerifier interface {
	Verify(raw string) (*domain.SessionClaims, error)
}

type TokenRefresher interface {
	Refresh(expired string) (string, *domain.SessionClaims, error)
}

type CookieStore interface {
	Get(r *http.Request) (string, bool)
	Set(w http.ResponseWriter, value string)
	Renew(w http.ResponseWriter, value string, started time.Time)
	Clear(w http.ResponseWriter)
}

// SessionService resolves the session attached to a request
type SessionService struct {
	verifier  TokenVerifier
	refresher TokenRefresher
	cookies   CookieStore
}

func NewSessionService(verifier TokenVerifier, refresher TokenRefresher, cookies CookieStore) *SessionService {
	return &SessionService{
		verifier:  verifier,
		refresher: refresher,
		cookies:   cookies,
	}
}

// Resolve reads the session cookie and verifies its token. An expired token
// is refreshed: the new token is written to w so the browser adopts it and
// the current request continues with the recovered claims. A session past
// its absolute lifetime is not refreshed and resolves as StateExpired.
func (s *SessionService) Resolve(w http.ResponseWriter, r *http.Request) Resolution {
	res := s.resolve(w, r)
	observability.SessionResolutions.WithLabelValues(res.State.String()).Inc()
	return res
}

func (s *SessionService) resolve(w http.ResponseWriter, r *http.Request) Resolution {
	raw, ok := s.cookies.Get(r)
	if !ok {
		return Resolution{State: StateNoCookie}
	}

	claims, err := s.verifier.Verify(raw)
	if err == nil {
		return Resolution{State: StateValid, Claims: claims}
	}
	if !errors.Is(err, domain.ErrTokenExpired) {
		observability.SecurityEvent(r, "session token rejected", err.Error())
		return Resolution{State: StateMalformed, Err: err}
	}

	fresh, claims, err := s.refresher.Refresh(raw)
	if err != nil {
		observability.SecurityEvent(r, "session refresh failed", err.Error())
		return Resolution{State: StateExpired, Err: err}
	}

	s.cookies.Renew(w, fresh, claims.AuthTime)
	observability.SessionTokensIssued.WithLabelValues("refresh").Inc()
	observability.FromContext(r.Context()).Debug("session token refreshed")
	return Resolution{State: StateValid, Claims: claims, Refreshed: true}
}

// End clears the session cookie. The token itself stays valid until it
// expires, but with the cookie gone nothing presents it.
func (s *SessionService) End(w http.ResponseWriter) {
	s.cookies.Clear(w)
}

package middleware

import (
	"context"
	"net/http"

	"gsi-session/internal/domain"
	"gsi-session/internal/observability"
	"gsi-session/internal/service"
)

// Policy selects how AuthGate treats a request
type Policy int

const (
	// RequireAuthenticated continues only with a valid session and sends
	// everyone else to sign in.
	RequireAuthenticated Policy = iota
	// RequireUnauthenticated sends signed-in users to the landing page and
	// lets everyone else through.
	RequireUnauthenticated
)

func (p Policy) String() string {
	switch p {
	case RequireAuthenticated:
		return "require_authenticated"
	case RequireUnauthenticated:
		return "require_unauthenticated"
	default:
		return "unknown"
	}
}

// Routes are the two fixed redirect destinations of the gate
type Routes struct {
	SignIn  string
	Landing string
}

// SessionContext is attached to every request that passes the gate
type SessionContext struct {
	Authenticated bool
	Claims        *domain.SessionClaims
}

type SessionResolver interface {
	Resolve(w http.ResponseWriter, r *http.Request) service.Resolution
}

type sessionContextKey struct{}

// AuthGate resolves the request's session once and either continues with a
// SessionContext attached or redirects. Which check failed is never exposed
// to the client.
func AuthGate(policy Policy, resolver SessionResolver, routes Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := resolver.Resolve(w, r)
			authenticated := res.Authenticated()

			var redirectTo string
			switch {
			case policy == RequireAuthenticated && !authenticated:
				redirectTo = routes.SignIn
			case policy == RequireUnauthenticated && authenticated:
				redirectTo = routes.Landing
			}

			if redirectTo != "" {
				observability.AuthGateDecisions.WithLabelValues(policy.String(), "redirect").Inc()
				http.Redirect(w, r, redirectTo, http.StatusSeeOther)
				return
			}

			observability.AuthGateDecisions.WithLabelValues(policy.String(), "continue").Inc()
			sc := SessionContext{}
			ctx := r.Context()
			if authenticated {
				sc = SessionContext{Authenticated: true, Claims: res.Claims}
				ctx = observability.WithSubject(ctx, res.Claims.Subject)
			}
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, sc)))
		})
	}
}

// GetSession returns the SessionContext attached by AuthGate
func GetSession(ctx context.Context) (SessionContext, bool) {
	sc, ok := ctx.Value(sessionContextKey{}).(SessionContext)
	return sc, ok
}

func WithSession(ctx context.Context, sc SessionContext) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sc)
}

package middleware

import (
	"net/http"

	"gsi-session/internal/observability"
	"gsi-session/internal/security"
)

// maxFormBytes caps the sign-in form; a GSI post is well under 4KB
const maxFormBytes = 64 << 10

// DoubleSubmit guards the sign-in POST with Google's double-submit CSRF
// token: the g_csrf_token form field must be present and equal to the
// g_csrf_token cookie. Failures are logged and handed to onFailure before
// anything downstream, including the identity provider, runs.
func DoubleSubmit(onFailure http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

			var cookieToken string
			if c, err := r.Cookie(security.DoubleSubmitField); err == nil {
				cookieToken = c.Value
			}
			bodyToken := r.PostFormValue(security.DoubleSubmitField)

			if err := security.ValidateDoubleSubmit(bodyToken, cookieToken); err != nil {
				observability.SecurityEvent(r, "CSRF validation failed", err.Error())
				observability.SignInAttempts.WithLabelValues("csrf_rejected").Inc()
				onFailure.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

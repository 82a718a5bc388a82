package handler

import (
	"net/http"

	"gsi-session/internal/domain"
	"gsi-session/internal/middleware"
	"gsi-session/internal/observability"
	"gsi-session/internal/service"
)

// PageConfig is what the sign-in page needs to render the GSI button
type PageConfig struct {
	GoogleClientID string
	LoginURI       string
	SignOutPath    string
}

// AuthHandler serves the sign-in, sign-out and home pages
type AuthHandler struct {
	authService *service.AuthService
	sessions    *service.SessionService
	cookies     service.CookieStore
	pages       *Pages
	config      PageConfig
	routes      middleware.Routes
}

func NewAuthHandler(
	authService *service.AuthService,
	sessions *service.SessionService,
	cookies service.CookieStore,
	pages *Pages,
	config PageConfig,
	routes middleware.Routes,
) *AuthHandler {
	if config.SignOutPath == "" {
		config.SignOutPath = DefaultSignOutPath
	}
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookies:     cookies,
		pages:       pages,
		config:      config,
		routes:      routes,
	}
}

type signInPage struct {
	Title          string
	GoogleClientID string
	LoginURI       string
}

type homePage struct {
	Title       string
	Claims      *domain.SessionClaims
	SignOutPath string
}

// SignInPage renders the Google sign-in button. Mounted behind
// RequireUnauthenticated.
func (h *AuthHandler) SignInPage(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, r, "signin", signInPage{
		Title:          "Sign In",
		GoogleClientID: h.config.GoogleClientID,
		LoginURI:       h.config.LoginURI,
	})
}

// SignIn receives the GSI form post after DoubleSubmit has accepted it.
// Every failure redirects back to sign in; the reason is only logged.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	token, claims, err := h.authService.SignIn(r.Context(), r.PostFormValue("credential"))
	if err != nil {
		observability.SecurityEvent(r, "sign-in rejected", err.Error())
		observability.SignInAttempts.WithLabelValues("identity_rejected").Inc()
		h.RejectSignIn(w, r)
		return
	}

	h.cookies.Set(w, token)
	observability.SignInAttempts.WithLabelValues("success").Inc()
	observability.FromContext(observability.WithSubject(r.Context(), claims.Subject)).Info("user signed in")
	http.Redirect(w, r, h.routes.Landing, http.StatusSeeOther)
}

// RejectSignIn sends the browser back to the sign-in page
func (h *AuthHandler) RejectSignIn(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.routes.SignIn, http.StatusSeeOther)
}

// SignOut clears the session cookie. Mounted behind RequireAuthenticated.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.End(w)
	observability.FromContext(r.Context()).Info("user signed out")
	http.Redirect(w, r, h.routes.SignIn, http.StatusSeeOther)
}

// Home renders the landing page for the signed-in user
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.GetSession(r.Context())
	if !ok || !sc.Authenticated {
		http.Redirect(w, r, h.routes.SignIn, http.StatusSeeOther)
		return
	}
	h.pages.Render(w, r, "home", homePage{
		Title:       "Home",
		Claims:      sc.Claims,
		SignOutPath: h.config.SignOutPath,
	})
}

// Login is the older verification-only endpoint: it checks the credential
// and answers "OK" or "failed" without starting a session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, _, err := h.authService.SignIn(r.Context(), r.PostFormValue("credential")); err != nil {
		observability.SecurityEvent(r, "login check rejected", err.Error())
		_, _ = w.Write([]byte("failed"))
		return
	}
	_, _ = w.Write([]byte("OK"))
}

// LoginFailed is the DoubleSubmit failure response for Login
func LoginFailed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("failed"))
}

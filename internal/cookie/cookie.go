// Package cookie carries the session token between browser and server.
package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultName matches the cookie name used by existing deployments
	DefaultName = "jid"
	// MaxAge bounds the absolute session lifetime regardless of refreshes
	MaxAge = 7 * 24 * time.Hour
)

// Options is the fixed attribute set applied to every write of the cookie.
// The same value must be used for Set, Get and Clear.
type Options struct {
	Name     string
	Path     string
	Domain   string
	SameSite http.SameSite
	Secure   bool
	// Signed adds an HMAC over the value; Get then only accepts values whose
	// MAC verifies under Secret.
	Signed bool
	Secret []byte
}

// Store reads and writes one named cookie
type Store struct {
	opts Options
}

// NewStore applies defaults for name, path and SameSite
func NewStore(opts Options) (*Store, error) {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.SameSite == 0 || opts.SameSite == http.SameSiteDefaultMode {
		opts.SameSite = http.SameSiteStrictMode
	}
	if opts.Signed && len(opts.Secret) == 0 {
		return nil, errors.New("signed cookie requires a secret")
	}
	return &Store{opts: opts}, nil
}

// Name returns the cookie name
func (s *Store) Name() string {
	return s.opts.Name
}

// Signed reports whether values carry an HMAC
func (s *Store) Signed() bool {
	return s.opts.Signed
}

// Get returns the stored value. A missing cookie, an empty value or, for a
// signed store, a value whose MAC does not verify all read as absent.
func (s *Store) Get(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.opts.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	if !s.opts.Signed {
		return c.Value, true
	}
	return s.unsign(c.Value)
}

// Set writes value with the full attribute set
func (s *Store) Set(w http.ResponseWriter, value string) {
	s.write(w, value, MaxAge)
}

// Renew writes value for a session that began at started. Max-Age is what
// remains of MaxAge since then, so refreshing never extends the cookie past
// MaxAge from sign-in. A zero started behaves like Set.
func (s *Store) Renew(w http.ResponseWriter, value string, started time.Time) {
	if started.IsZero() {
		s.Set(w, value)
		return
	}
	remaining := MaxAge - time.Since(started)
	if remaining < time.Second {
		remaining = time.Second
	}
	s.write(w, value, remaining)
}

func (s *Store) write(w http.ResponseWriter, value string, maxAge time.Duration) {
	if s.opts.Signed {
		value = s.sign(value)
	}
	http.SetCookie(w, s.cookie(value, int(maxAge/time.Second)))
}

// Clear expires the cookie. Path and Domain must match those used by Set or
// the browser keeps the original.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.opts.Name,
		Value:    value,
		Path:     s.opts.Path,
		Domain:   s.opts.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	}
}

func (s *Store) mac(value string) string {
	h := hmac.New(sha256.New, s.opts.Secret)
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func (s *Store) sign(value string) string {
	return value + "." + s.mac(value)
}

func (s *Store) unsign(signed string) (string, bool) {
	i := strings.LastIndexByte(signed, '.')
	if i <= 0 {
		return "", false
	}
	value, sum := signed[:i], signed[i+1:]
	if !hmac.Equal([]byte(sum), []byte(s.mac(value))) {
		return "", false
	}
	return value, true
}

package testutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertErrorIs fails the test if err does not match the expected error
func AssertErrorIs(t *testing.T, err, expected error) {
	t.Helper()
	if !errors.Is(err, expected) {
		t.Errorf("expected error %v, got: %v", expected, err)
	}
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// AssertNotEqual fails the test if got == want
func AssertNotEqual[T comparable](t *testing.T, got, notWant T) {
	t.Helper()
	if got == notWant {
		t.Errorf("got %v, did not want %v", got, notWant)
	}
}

// AssertTrue fails the test if condition is false
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Errorf("expected true: %s", msg)
	}
}

// AssertFalse fails the test if condition is true
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Errorf("expected false: %s", msg)
	}
}

// AssertContains fails if s does not contain substring
func AssertContains(t *testing.T, s, substring string) {
	t.Helper()
	if !strings.Contains(s, substring) {
		t.Errorf("expected %q to contain %q", s, substring)
	}
}

// AssertNotContains fails if s contains substring
func AssertNotContains(t *testing.T, s, substring string) {
	t.Helper()
	if strings.Contains(s, substring) {
		t.Errorf("expected %q to not contain %q", s, substring)
	}
}

// HTTP Test Helpers

// AssertStatusCode fails if the response status code doesn't match expected
func AssertStatusCode(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect fails unless the response is a 303 to location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	AssertStatusCode(t, w, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Location: got %q, want %q", got, location)
	}
}

// FindCookie returns the Set-Cookie entry named name, or nil
func FindCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// AssertCookie fails if the response doesn't set a cookie with the expected name
func AssertCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	c := FindCookie(w, name)
	if c == nil {
		t.Fatalf("expected cookie %q not found", name)
	}
	return c
}

// AssertNoCookie fails if the response sets a live cookie with the given name
func AssertNoCookie(t *testing.T, w *httptest.ResponseRecorder, name string) {
	t.Helper()
	if c := FindCookie(w, name); c != nil && c.Value != "" && c.MaxAge >= 0 {
		t.Errorf("unexpected cookie %q found with value %q", name, c.Value)
	}
}

// AssertClearedCookie fails unless the response expires the named cookie
func AssertClearedCookie(t *testing.T, w *httptest.ResponseRecorder, name string) {
	t.Helper()
	c := AssertCookie(t, w, name)
	if c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("cookie %q not cleared: value %q, max-age %d", name, c.Value, c.MaxAge)
	}
}

// Request Helpers

// NewRequestWithCookie creates a new HTTP request carrying one cookie
func NewRequestWithCookie(t *testing.T, method, target, cookieName, cookieValue string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{
		Name:  cookieName,
		Value: cookieValue,
	})
	return req
}

// NewFormRequest creates a form-encoded POST like the one Google Identity
// Services submits
func NewFormRequest(t *testing.T, target string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// ReplayCookies copies every non-expired Set-Cookie of w onto req
func ReplayCookies(w *httptest.ResponseRecorder, req *http.Request) {
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
}

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_BasicFunctionality(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 2, 2)
	defer rl.Stop()

	handler := rl.Middleware(nil)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req.RemoteAddr = "192.168.1.1:1234"

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Errorf("request %d: expected status %d, got %d", i+1, want, rr.Code)
		}
	}
}

func TestRateLimiter_CustomOnLimit(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 1)
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
	}))(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req.RemoteAddr = "10.0.0.1:1"

	handler.ServeHTTP(httptest.NewRecorder(), req)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Errorf("expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/signin" {
		t.Errorf("Location = %q, want /signin", loc)
	}
}

func TestRateLimiter_PerIPLimiting(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 1)
	defer rl.Stop()

	handler := rl.Middleware(nil)(okHandler())

	req1 := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req1.RemoteAddr = "192.168.1.1:1234"
	req2 := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req2.RemoteAddr = "192.168.1.2:1234"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req1)
	if rr.Code != http.StatusOK {
		t.Errorf("IP1 first request: expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req2)
	if rr.Code != http.StatusOK {
		t.Errorf("IP2 first request: expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req1)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("IP1 second request: expected 429, got %d", rr.Code)
	}
}

func TestRateLimiter_PortIgnored(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 1)
	defer rl.Stop()

	handler := rl.Middleware(nil)(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/signin", nil)
	first.RemoteAddr = "198.51.100.4:1000"
	second := httptest.NewRequest(http.MethodPost, "/signin", nil)
	second.RemoteAddr = "198.51.100.4:2000"

	handler.ServeHTTP(httptest.NewRecorder(), first)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, second)

	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("same IP on another port: expected 429, got %d", rr.Code)
	}
}

func TestRateLimiter_CleanupRemovesIdle(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 10, 10)
	defer rl.Stop()

	rl.getLimiter("idle")
	rl.getLimiter("active")

	rl.mu.Lock()
	rl.limiters["idle"].lastAccess = time.Now().Add(-2 * limiterTTL)
	rl.mu.Unlock()

	rl.cleanup(time.Now())

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.limiters["idle"]; ok {
		t.Error("idle limiter should have been removed")
	}
	if _, ok := rl.limiters["active"]; !ok {
		t.Error("active limiter should remain")
	}
}

func TestRateLimiter_LRUEviction(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 10, 10)
	defer rl.Stop()

	base := time.Now()
	rl.mu.Lock()
	for i := 0; i < maxLimiters+10; i++ {
		rl.limiters[fmt.Sprintf("ip-%d", i)] = &limiterEntry{lastAccess: base.Add(time.Duration(i) * time.Millisecond)}
	}
	rl.mu.Unlock()

	rl.cleanup(base)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.limiters) != maxLimiters/2 {
		t.Errorf("expected %d limiters after eviction, got %d", maxLimiters/2, len(rl.limiters))
	}
	if _, ok := rl.limiters["ip-0"]; ok {
		t.Error("oldest limiter should have been evicted")
	}
	if _, ok := rl.limiters[fmt.Sprintf("ip-%d", maxLimiters+9)]; !ok {
		t.Error("newest limiter should remain")
	}
}

func TestRateLimiter_ConcurrentAccess(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1000, 1000)
	defer rl.Stop()

	handler := rl.Middleware(nil)(okHandler())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/signin", nil)
			req.RemoteAddr = fmt.Sprintf("10.0.0.%d:80", i%5)
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}(i)
	}
	wg.Wait()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.limiters) != 5 {
		t.Errorf("expected 5 limiters, got %d", len(rl.limiters))
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 1)
	rl.Stop()
	rl.Stop()
}

func TestRateLimiter_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rl := NewRateLimiter(ctx, 1, 1)
	cancel()
	defer rl.Stop()

	// limiter keeps serving after its sweeper exits
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signin", nil)
	req.RemoteAddr = "10.1.1.1:1"
	rl.Middleware(nil)(okHandler()).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

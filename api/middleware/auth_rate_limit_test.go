package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type memoryLimiterStore struct {
	counts map[string]int64
}

func newMemoryLimiterStore() *memoryLimiterStore {
	return &memoryLimiterStore{counts: map[string]int64{}}
}

func (s *memoryLimiterStore) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func postLogin(handler http.Handler, ip, email string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"`+email+`","password":"x"}`))
	r.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestAuthRateLimitBlocksIPOverLimit(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 2; i++ {
		if w := postLogin(handler, "10.0.0.1", "a@b.com"); w.Code != http.StatusOK {
			t.Fatalf("attempt %d expected 200 got %d", i+1, w.Code)
		}
	}
	if w := postLogin(handler, "10.0.0.1", "a@b.com"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", w.Code)
	}
	if w := postLogin(handler, "10.0.0.2", "a@b.com"); w.Code != http.StatusOK {
		t.Fatalf("other ip should pass, got %d", w.Code)
	}
}

func TestAuthRateLimitBlocksEmailAcrossIPs(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	if w := postLogin(handler, "10.0.0.1", "Target@Example.com"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if w := postLogin(handler, "10.0.0.2", "target@example.com"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if w := postLogin(handler, "10.0.0.3", "TARGET@example.com"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for normalized email got %d", w.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", 0, 5, 5)
	handler := AuthRateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 10; i++ {
		if w := postLogin(handler, "10.0.0.1", "a@b.com"); w.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", w.Code)
		}
	}
	if len(store.counts) != 0 {
		t.Fatalf("expected no counters, got %v", store.counts)
	}
}

func TestAuthRateLimitPreservesBodyForHandler(t *testing.T) {
	store := newMemoryLimiterStore()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)

	var seen string
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		seen = string(body)
		w.WriteHeader(http.StatusOK)
	}))

	postLogin(handler, "10.0.0.1", "a@b.com")
	if !strings.Contains(seen, "a@b.com") {
		t.Fatalf("handler should see the original body, got %q", seen)
	}
}

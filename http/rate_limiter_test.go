package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	allowed, _ := rl.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("10.0.0.1")
	assert.True(t, allowed)

	allowed, wait := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 30*time.Second, wait)

	allowed, _ = rl.Allow("10.0.0.2")
	assert.True(t, allowed, "buckets are per client")

	now = now.Add(20 * time.Second)
	allowed, wait = rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 10*time.Second, wait)

	now = now.Add(10 * time.Second)
	allowed, _ = rl.Allow("10.0.0.1")
	assert.True(t, allowed)
}

func TestRateLimiter_RefillIsCapped(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	now = now.Add(10 * time.Minute)

	for i := 0; i < 2; i++ {
		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed)
	}
	allowed, _ := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	rl.Allow("10.0.0.1")
	now = now.Add(bucketCleanupThreshold + time.Second)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.clients)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, 30*time.Second)
	defer rl.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimitMiddleware(rl, next)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	other := httptest.NewRequest(http.MethodGet, "/test", nil)
	other.RemoteAddr = "192.0.2.2:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, "1", retryAfterSeconds(0))
	assert.Equal(t, "1", retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, "2", retryAfterSeconds(1500*time.Millisecond))
	assert.Equal(t, "30", retryAfterSeconds(30*time.Second))
}

func TestLoggingMiddleware_PassesStatusThrough(t *testing.T) {
	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}

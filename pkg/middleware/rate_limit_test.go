package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"refugio/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestClientRateLimiter_Allow(t *testing.T) {
	limiter := NewClientRateLimiter(3, 1*time.Minute, testLogger())
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	if limiter.Allow("10.0.0.1") {
		t.Error("fourth request should be rejected")
	}

	// Another client is unaffected.
	if !limiter.Allow("10.0.0.2") {
		t.Error("different client should be allowed")
	}
}

func TestClientRateLimiter_WindowSlides(t *testing.T) {
	limiter := NewClientRateLimiter(1, 20*time.Millisecond, testLogger())
	defer limiter.Stop()

	if !limiter.Allow("10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("second request inside window should be rejected")
	}

	time.Sleep(30 * time.Millisecond)

	if !limiter.Allow("10.0.0.1") {
		t.Error("request after window should be allowed")
	}
}

func TestClientRateLimit_GetRequestsBypass(t *testing.T) {
	limiter := NewClientRateLimiter(1, 1*time.Minute, testLogger())
	defer limiter.Stop()

	handler := ClientRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/cabins", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("GET request %d throttled: %d", i, rec.Code)
		}
	}
}

func TestClientRateLimit_PostThrottled(t *testing.T) {
	limiter := NewClientRateLimiter(1, 1*time.Minute, testLogger())
	defer limiter.Stop()

	handler := ClientRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reservations", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(first, req)

	if first.Code != http.StatusCreated {
		t.Fatalf("first POST should pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/reservations", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(second, req)

	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second POST should be throttled, got %d", second.Code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr with port", "10.0.0.1:1234", "", "10.0.0.1"},
		{"forwarded single", "10.0.0.1:1234", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain uses first", "10.0.0.1:1234", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

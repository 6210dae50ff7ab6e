package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestRateLimiter_BurstThenThrottle(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0), 2)
	defer rl.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := rl.Handler(next)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/canister/greet", nil))
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests = %v; want first two OK", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d; want %d", codes[2], http.StatusTooManyRequests)
	}
}

func TestRateLimiter_PerPrincipalBuckets(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0), 1)
	defer rl.Stop()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := Identity(&fakeVerifier{principal: "w3gef-aae"})(rl.Handler(next))

	// Exhaust the anonymous bucket.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/canister/greet", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous first = %d; want %d", rec.Code, http.StatusOK)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/canister/greet", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("anonymous second = %d; want %d", rec.Code, http.StatusTooManyRequests)
	}

	// An authenticated caller has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/api/canister/greet", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated = %d; want %d", rec.Code, http.StatusOK)
	}
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/icfoundry/icvault/internal/middleware"
	"github.com/icfoundry/icvault/internal/models"
	"github.com/icfoundry/icvault/internal/service"
)

// fakeGreeter implements GreeterService for testing.
type fakeGreeter struct{}

func (fakeGreeter) Greet(_ context.Context, name string) string {
	return "Hello, " + name + "!"
}

func (fakeGreeter) Whoami(_ context.Context, principal string) string {
	if principal == "" {
		return models.AnonymousPrincipal
	}
	return principal
}

func TestCanisterHandler_Greet(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "empty name",
			body:           `{"name":""}`,
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "invalid request",
		},
		{
			name:           "success",
			body:           `{"name":"World"}`,
			expectedCode:   http.StatusOK,
			expectedSubstr: `"greeting":"Hello, World!"`,
		},
	}

	h := &CanisterHandler{GreeterService: fakeGreeter{}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/canister/greet", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Greet(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("status = %d; want %d", rec.Code, tt.expectedCode)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Errorf("body = %q; want substring %q", rec.Body.String(), tt.expectedSubstr)
			}
		})
	}
}

func TestCanisterHandler_Whoami_Anonymous(t *testing.T) {
	h := &CanisterHandler{GreeterService: fakeGreeter{}}
	req := httptest.NewRequest(http.MethodPost, "/api/canister/whoami", nil)
	rec := httptest.NewRecorder()

	h.Whoami(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["principal"] != models.AnonymousPrincipal {
		t.Errorf("principal = %q; want %q", resp["principal"], models.AnonymousPrincipal)
	}
}

func TestRouter_WhoamiThroughIdentityMiddleware(t *testing.T) {
	sessions := service.NewSessionService("devsecret", time.Minute)
	canisterHandler := &CanisterHandler{GreeterService: fakeGreeter{}}
	sessionHandler := &SessionHandler{Sessions: sessions}
	limiter := middleware.NewRateLimiter(rate.Limit(2), 120)
	defer limiter.Stop()
	router := NewRouter(canisterHandler, sessionHandler, sessions, limiter, zap.NewNop())

	srv := httptest.NewServer(router)
	defer srv.Close()

	// Log in through the dev identity surface.
	resp, err := http.Post(srv.URL+"/api/session", "application/json", bytes.NewBufferString(`{}`))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var login map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	resp.Body.Close()
	if login["handle"] == "" || login["principal"] == "" {
		t.Fatalf("login returned %v", login)
	}

	// Authenticated whoami must echo the issued principal.
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/canister/whoami", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+login["handle"])
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	var who map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&who); err != nil {
		t.Fatalf("decode whoami: %v", err)
	}
	resp.Body.Close()
	if who["principal"] != login["principal"] {
		t.Errorf("whoami principal = %q; want %q", who["principal"], login["principal"])
	}

	// Anonymous whoami resolves to the anonymous principal.
	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/api/canister/whoami", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("anonymous whoami: %v", err)
	}
	var anon map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&anon); err != nil {
		t.Fatalf("decode anonymous whoami: %v", err)
	}
	resp.Body.Close()
	if anon["principal"] != models.AnonymousPrincipal {
		t.Errorf("anonymous principal = %q; want %q", anon["principal"], models.AnonymousPrincipal)
	}

	// A forged delegation is rejected, not downgraded to anonymous.
	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/api/canister/whoami", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer forged")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("forged whoami: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("forged delegation status = %d; want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/icfoundry/icvault/internal/service"
)

// SessionIssuer defines the identity-provider operations required by the
// session endpoints.
type SessionIssuer interface {
	// Issue creates a session and returns its delegation and principal.
	Issue(ctx context.Context) (handle, principal string, err error)
	// Introspect validates a delegation and returns its principal.
	Introspect(ctx context.Context, handle string) (string, error)
	// Revoke terminates the session named by the delegation.
	Revoke(ctx context.Context, handle string) error
}

// SessionHandler implements the development identity-provider surface:
// POST /api/session (login), GET /api/session (introspect),
// DELETE /api/session (logout).
type SessionHandler struct {
	// Sessions performs the underlying session operations.
	Sessions SessionIssuer
}

// LoginRequest is the JSON payload for interactive login. The window
// geometry is accepted for interface fidelity; a headless provider has no
// approval surface to shape with it.
type LoginRequest struct {
	WindowOpenerFeatures string `json:"windowOpenerFeatures,omitempty"`
}

// Login creates a fresh session and returns its delegation and principal.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
	}

	handle, principal, err := h.Sessions.Issue(r.Context())
	if err != nil {
		http.Error(w, "failed to issue session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"handle":    handle,
		"principal": principal,
	})
}

// Introspect reports whether the presented delegation names a live session.
func (h *SessionHandler) Introspect(w http.ResponseWriter, r *http.Request) {
	handle, ok := bearer(r)
	if !ok {
		http.Error(w, "delegation required", http.StatusUnauthorized)
		return
	}

	principal, err := h.Sessions.Introspect(r.Context(), handle)
	if err != nil {
		http.Error(w, "invalid delegation", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"principal": principal})
}

// Logout revokes the presented delegation.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	handle, ok := bearer(r)
	if !ok {
		http.Error(w, "delegation required", http.StatusUnauthorized)
		return
	}

	if err := h.Sessions.Revoke(r.Context(), handle); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrSessionExpired) {
			http.Error(w, "invalid delegation", http.StatusUnauthorized)
			return
		}
		http.Error(w, "failed to revoke session", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func bearer(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	return token, ok && token != ""
}

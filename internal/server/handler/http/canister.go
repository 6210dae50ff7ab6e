// Package http provides HTTP handlers for the canister operations and the
// development identity endpoints.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/icfoundry/icvault/internal/middleware"
)

// GreeterService defines the canister operations required by the HTTP
// handlers.
type GreeterService interface {
	// Greet produces the greeting for the given name.
	Greet(ctx context.Context, name string) string
	// Whoami echoes the caller principal, resolving empty to anonymous.
	Whoami(ctx context.Context, principal string) string
}

// CanisterHandler handles HTTP requests for the canister operations.
type CanisterHandler struct {
	// GreeterService performs the underlying operations.
	GreeterService GreeterService
}

// GreetRequest represents the JSON payload for the greet operation.
type GreetRequest struct {
	// Name is greeted back in the response.
	Name string `json:"name"`
}

// Greet handles greet requests. It expects a JSON body with a non-empty
// "name" field and responds with the greeting.
func (h *CanisterHandler) Greet(w http.ResponseWriter, r *http.Request) {
	var req GreetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	greeting := h.GreeterService.Greet(r.Context(), req.Name)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"greeting": greeting})
}

// Whoami handles whoami requests. The caller principal comes from the
// identity middleware; anonymous callers get the anonymous principal.
func (h *CanisterHandler) Whoami(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())
	principal = h.GreeterService.Whoami(r.Context(), principal)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"principal": principal})
}

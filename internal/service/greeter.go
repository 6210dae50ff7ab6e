// Package service provides the business logic behind the stub server's
// canister and identity endpoints.
package service

import (
	"context"
	"fmt"

	"github.com/icfoundry/icvault/internal/models"
)

// Greeter implements the two canister operations.
type Greeter struct{}

// NewGreeter constructs a Greeter.
func NewGreeter() *Greeter {
	return &Greeter{}
}

// Greet returns the canonical greeting for name.
func (g *Greeter) Greet(_ context.Context, name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

// Whoami echoes the caller principal, falling back to the anonymous
// principal when the call carries no identity.
func (g *Greeter) Whoami(_ context.Context, principal string) string {
	if principal == "" {
		return models.AnonymousPrincipal
	}
	return principal
}

// Package session holds the authentication state of the running client and
// drives it through login and logout against an external identity provider.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// State names a position in the session state machine.
type State string

const (
	// StateUnknown is the state before Initialize has run.
	StateUnknown State = "unknown"
	// StateUnauthenticated means no live provider session exists.
	StateUnauthenticated State = "unauthenticated"
	// StateAuthenticating means an interactive login is in flight.
	StateAuthenticating State = "authenticating"
	// StateAuthenticated means the provider confirmed a session.
	StateAuthenticated State = "authenticated"
)

// ErrInvalidTransition is returned when an operation is not valid from the
// current state.
var ErrInvalidTransition = errors.New("invalid session state transition")

// DefaultWindowFeatures is the geometry requested for the provider's
// interactive approval surface.
const DefaultWindowFeatures = "width=500,height=500,left=100,top=100"

// InitResult describes an existing provider session, if any.
type InitResult struct {
	// Authenticated reports whether a live session was found.
	Authenticated bool
	// Handle is the opaque identity handle owned by the provider.
	Handle string
	// Principal is the displayable principal derived from the handle.
	Principal string
}

// LoginConfig selects the provider endpoint and the geometry of the
// interactive approval surface.
type LoginConfig struct {
	// IdentityProvider is the provider endpoint URL (production or local).
	IdentityProvider string
	// WindowFeatures is the requested approval-window geometry.
	WindowFeatures string
}

// LoginResult carries the credentials of a freshly approved session.
type LoginResult struct {
	Handle    string
	Principal string
}

// Provider is the external identity provider boundary.
type Provider interface {
	// InitializeSession looks for an existing authenticated session.
	InitializeSession(ctx context.Context) (*InitResult, error)
	// Login requests interactive authentication.
	Login(ctx context.Context, cfg LoginConfig) (*LoginResult, error)
	// Logout terminates the provider-side session.
	Logout(ctx context.Context) error
}

// Session tracks authentication status, the identity handle, and the
// displayable principal. It is constructed once at composition time and
// passed by reference to whoever needs it; there is no ambient global.
type Session struct {
	provider Provider
	cfg      LoginConfig
	log      *zap.Logger

	mu        sync.Mutex
	state     State
	handle    string
	principal string
	loading   bool
}

// New returns a Session in StateUnknown with the loading flag set, matching
// an application that has not yet probed the provider.
func New(provider Provider, cfg LoginConfig, log *zap.Logger) *Session {
	if cfg.WindowFeatures == "" {
		cfg.WindowFeatures = DefaultWindowFeatures
	}
	return &Session{
		provider: provider,
		cfg:      cfg,
		log:      log,
		state:    StateUnknown,
		loading:  true,
	}
}

// Initialize probes the provider for an existing session. Any failure
// leaves the session unauthenticated and is only logged. The loading flag
// is cleared on every path. Valid only from StateUnknown.
func (s *Session) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateUnknown {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	res, err := s.provider.InitializeSession(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.log.Error("auth initialization failed", zap.Error(err))
		s.state = StateUnauthenticated
		return
	}
	if !res.Authenticated {
		s.state = StateUnauthenticated
		return
	}
	s.state = StateAuthenticated
	s.handle = res.Handle
	s.principal = res.Principal
}

// Login requests interactive authentication from the provider. On failure
// the session stays unauthenticated; on every path the loading flag ends up
// cleared. Valid only from StateUnauthenticated.
func (s *Session) Login(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateUnauthenticated {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("login from %q: %w", state, ErrInvalidTransition)
	}
	s.state = StateAuthenticating
	s.loading = true
	s.mu.Unlock()

	res, err := s.provider.Login(ctx, s.cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.log.Error("login failed", zap.Error(err))
		s.state = StateUnauthenticated
		return fmt.Errorf("login: %w", err)
	}
	s.state = StateAuthenticated
	s.handle = res.Handle
	s.principal = res.Principal
	return nil
}

// Logout asks the provider to terminate the session. Local state is cleared
// even when the provider reports a failure, so the caller is never stuck
// signed in locally; the error is still logged and returned.
// Valid only from StateAuthenticated.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("logout from %q: %w", state, ErrInvalidTransition)
	}
	s.mu.Unlock()

	err := s.provider.Logout(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUnauthenticated
	s.handle = ""
	s.principal = ""

	if err != nil {
		s.log.Error("logout failed", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// State returns the current state machine position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Authenticated reports whether the provider confirmed a live session.
func (s *Session) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// Principal returns the displayable principal, empty when unauthenticated.
func (s *Session) Principal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal
}

// Handle returns the opaque identity handle, empty when unauthenticated.
func (s *Session) Handle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

// Loading reports whether an initialize or login flow is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

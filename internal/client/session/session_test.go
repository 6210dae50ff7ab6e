package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/icfoundry/icvault/internal/client/session"
)

// fakeProvider implements session.Provider for testing.
type fakeProvider struct {
	initResult  *session.InitResult
	initErr     error
	loginResult *session.LoginResult
	loginErr    error
	logoutErr   error

	loginCfg   session.LoginConfig
	logoutCall int
}

func (f *fakeProvider) InitializeSession(context.Context) (*session.InitResult, error) {
	return f.initResult, f.initErr
}

func (f *fakeProvider) Login(_ context.Context, cfg session.LoginConfig) (*session.LoginResult, error) {
	f.loginCfg = cfg
	return f.loginResult, f.loginErr
}

func (f *fakeProvider) Logout(context.Context) error {
	f.logoutCall++
	return f.logoutErr
}

func newSession(p session.Provider) *session.Session {
	return session.New(p, session.LoginConfig{IdentityProvider: "http://localhost:8080"}, zap.NewNop())
}

func TestNew_StartsUnknownAndLoading(t *testing.T) {
	s := newSession(&fakeProvider{})
	assert.Equal(t, session.StateUnknown, s.State())
	assert.True(t, s.Loading())
	assert.False(t, s.Authenticated())
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name          string
		provider      *fakeProvider
		wantState     session.State
		wantPrincipal string
	}{
		{
			name: "existing session",
			provider: &fakeProvider{initResult: &session.InitResult{
				Authenticated: true, Handle: "h1", Principal: "w3gef-aae",
			}},
			wantState:     session.StateAuthenticated,
			wantPrincipal: "w3gef-aae",
		},
		{
			name:      "no session",
			provider:  &fakeProvider{initResult: &session.InitResult{Authenticated: false}},
			wantState: session.StateUnauthenticated,
		},
		{
			name:      "provider failure is non-fatal",
			provider:  &fakeProvider{initErr: errors.New("provider down")},
			wantState: session.StateUnauthenticated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(tt.provider)
			s.Initialize(context.Background())

			assert.Equal(t, tt.wantState, s.State())
			assert.Equal(t, tt.wantPrincipal, s.Principal())
			// Loading clears on success and failure alike.
			assert.False(t, s.Loading())
		})
	}
}

func TestInitialize_SecondCallIsANoOp(t *testing.T) {
	p := &fakeProvider{initResult: &session.InitResult{Authenticated: false}}
	s := newSession(p)
	s.Initialize(context.Background())

	p.initResult = &session.InitResult{Authenticated: true, Handle: "h", Principal: "p"}
	s.Initialize(context.Background())
	assert.Equal(t, session.StateUnauthenticated, s.State())
}

func TestLogin_Success(t *testing.T) {
	p := &fakeProvider{
		initResult:  &session.InitResult{Authenticated: false},
		loginResult: &session.LoginResult{Handle: "h2", Principal: "aaaaa-aa"},
	}
	s := newSession(p)
	s.Initialize(context.Background())

	require.NoError(t, s.Login(context.Background()))
	assert.Equal(t, session.StateAuthenticated, s.State())
	assert.Equal(t, "aaaaa-aa", s.Principal())
	assert.Equal(t, "h2", s.Handle())
	assert.False(t, s.Loading())

	// The configured provider endpoint and default window geometry reach
	// the provider.
	assert.Equal(t, "http://localhost:8080", p.loginCfg.IdentityProvider)
	assert.Equal(t, session.DefaultWindowFeatures, p.loginCfg.WindowFeatures)
}

func TestLogin_FailureStaysUnauthenticated(t *testing.T) {
	p := &fakeProvider{
		initResult: &session.InitResult{Authenticated: false},
		loginErr:   errors.New("user closed the window"),
	}
	s := newSession(p)
	s.Initialize(context.Background())

	err := s.Login(context.Background())
	require.Error(t, err)
	assert.Equal(t, session.StateUnauthenticated, s.State())
	assert.Empty(t, s.Principal())
	// Loading must not be left stuck on the failure path.
	assert.False(t, s.Loading())
}

func TestLogin_InvalidFromUnknownAndAuthenticated(t *testing.T) {
	s := newSession(&fakeProvider{})
	err := s.Login(context.Background())
	require.ErrorIs(t, err, session.ErrInvalidTransition)

	p := &fakeProvider{initResult: &session.InitResult{Authenticated: true, Handle: "h", Principal: "p"}}
	s = newSession(p)
	s.Initialize(context.Background())
	err = s.Login(context.Background())
	require.ErrorIs(t, err, session.ErrInvalidTransition)
}

func TestLogout_Success(t *testing.T) {
	p := &fakeProvider{initResult: &session.InitResult{Authenticated: true, Handle: "h", Principal: "p"}}
	s := newSession(p)
	s.Initialize(context.Background())

	require.NoError(t, s.Logout(context.Background()))
	assert.Equal(t, session.StateUnauthenticated, s.State())
	assert.Empty(t, s.Principal())
	assert.Empty(t, s.Handle())
	assert.Equal(t, 1, p.logoutCall)
}

func TestLogout_FailureStillClearsLocalState(t *testing.T) {
	// Deliberate product behavior: the client forgets the session even when
	// the provider did not confirm the logout.
	p := &fakeProvider{
		initResult: &session.InitResult{Authenticated: true, Handle: "h", Principal: "p"},
		logoutErr:  errors.New("provider unreachable"),
	}
	s := newSession(p)
	s.Initialize(context.Background())

	err := s.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, session.StateUnauthenticated, s.State())
	assert.Empty(t, s.Principal())
}

func TestLogout_InvalidWhenUnauthenticated(t *testing.T) {
	p := &fakeProvider{initResult: &session.InitResult{Authenticated: false}}
	s := newSession(p)
	s.Initialize(context.Background())

	err := s.Logout(context.Background())
	require.ErrorIs(t, err, session.ErrInvalidTransition)
	assert.Equal(t, 0, p.logoutCall)
}

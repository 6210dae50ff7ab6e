// Package identity implements the HTTP client for the identity provider
// boundary. The identity handle is a signed delegation token; the client
// treats it as opaque except for reading its public claims to derive the
// displayable principal.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/icfoundry/icvault/internal/client/session"
)

// ErrNoDelegation is returned when an operation needs a stored delegation
// and none is present.
var ErrNoDelegation = errors.New("no delegation present")

const sessionPath = "/api/session"

// Client talks to the identity provider over HTTP and caches derived
// principal texts for the lifetime of their delegation.
type Client struct {
	http       *http.Client
	baseURL    string
	log        *zap.Logger
	principals *gocache.Cache

	// delegation is the stored identity handle, if a previous login left
	// one behind (e.g. via the environment).
	delegation string
}

// NewClient constructs a Client against the given provider base URL. An
// optional delegation resumes a previous session during InitializeSession.
func NewClient(baseURL, delegation string, log *zap.Logger) *Client {
	return &Client{
		http:       &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		log:        log,
		principals: gocache.New(5*time.Minute, time.Minute),
		delegation: delegation,
	}
}

// sessionResponse is the provider's wire representation of a session.
type sessionResponse struct {
	Handle    string `json:"handle"`
	Principal string `json:"principal"`
}

// InitializeSession checks whether the stored delegation still names a live
// provider session. A missing delegation is an ordinary unauthenticated
// answer, not an error.
func (c *Client) InitializeSession(ctx context.Context) (*session.InitResult, error) {
	if c.delegation == "" {
		return &session.InitResult{Authenticated: false}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sessionPath, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize session: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.delegation)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("initialize session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Delegation expired or was revoked.
		c.delegation = ""
		return &session.InitResult{Authenticated: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("initialize session: unexpected status %d", resp.StatusCode)
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("initialize session: decode: %w", err)
	}
	return &session.InitResult{
		Authenticated: true,
		Handle:        c.delegation,
		Principal:     sr.Principal,
	}, nil
}

// Login requests a fresh session from the provider named by cfg. The window
// geometry is forwarded so the provider can shape its approval surface.
func (c *Client) Login(ctx context.Context, cfg session.LoginConfig) (*session.LoginResult, error) {
	endpoint := c.baseURL
	if cfg.IdentityProvider != "" {
		endpoint = cfg.IdentityProvider
	}

	body, err := json.Marshal(map[string]string{
		"windowOpenerFeatures": cfg.WindowFeatures,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+sessionPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("login: provider refused: %d %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("login: decode: %w", err)
	}
	if sr.Handle == "" {
		return nil, errors.New("login: provider returned no handle")
	}

	c.delegation = sr.Handle
	// The session lives at the provider that issued it; later introspection
	// and logout must address the same endpoint.
	c.baseURL = endpoint
	principal := sr.Principal
	if principal == "" {
		principal, err = c.PrincipalText(sr.Handle)
		if err != nil {
			return nil, err
		}
	}
	return &session.LoginResult{Handle: sr.Handle, Principal: principal}, nil
}

// Logout asks the provider to revoke the stored delegation. The local copy
// is dropped regardless, so a repeated Logout stays idempotent.
func (c *Client) Logout(ctx context.Context) error {
	if c.delegation == "" {
		return ErrNoDelegation
	}
	delegation := c.delegation
	c.delegation = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+sessionPath, nil)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+delegation)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Delegation returns the currently stored identity handle, if any.
func (c *Client) Delegation() string {
	return c.delegation
}

// PrincipalText derives the displayable principal from an identity handle
// by reading the delegation's claims. The result is cached until the
// delegation expires. The token is not verified here; verification is the
// provider's job, the client only displays what it was handed.
func (c *Client) PrincipalText(handle string) (string, error) {
	if cached, ok := c.principals.Get(handle); ok {
		return cached.(string), nil
	}

	var claims jwt.MapClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(handle, &claims); err != nil {
		return "", fmt.Errorf("principal text: %w", err)
	}

	principal, _ := claims["principal"].(string)
	if principal == "" {
		return "", errors.New("principal text: delegation carries no principal claim")
	}

	ttl := gocache.DefaultExpiration
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}
	c.principals.Set(handle, principal, ttl)
	return principal, nil
}

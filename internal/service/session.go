package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for delegations that were never issued or
// have been revoked.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired is returned for delegations past their lifetime.
var ErrSessionExpired = errors.New("session expired")

// SessionService issues, introspects, and revokes development delegations.
// A delegation is an HS256-signed token whose claims carry a generated
// principal; issued sessions are tracked in memory so revocation works.
type SessionService struct {
	secret []byte
	ttl    time.Duration

	mu     sync.Mutex
	active map[string]string // delegation id -> principal
}

// NewSessionService constructs a SessionService signing with secret and
// bounding delegation lifetime to ttl.
func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		active: make(map[string]string),
	}
}

// Issue creates a fresh session and returns its delegation and principal.
func (s *SessionService) Issue(_ context.Context) (handle, principal string, err error) {
	principal, err = NewPrincipal()
	if err != nil {
		return "", "", fmt.Errorf("issue session: %w", err)
	}

	id := uuid.NewString()
	now := time.Now()
	claims := jwt.MapClaims{
		"jti":       id,
		"principal": principal,
		"iat":       now.Unix(),
		"exp":       now.Add(s.ttl).Unix(),
	}
	handle, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("issue session: %w", err)
	}

	s.mu.Lock()
	s.active[id] = principal
	s.mu.Unlock()
	return handle, principal, nil
}

// Introspect validates a delegation and returns its principal.
func (s *SessionService) Introspect(_ context.Context, handle string) (string, error) {
	id, principal, err := s.parse(handle)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	stored, ok := s.active[id]
	s.mu.Unlock()
	if !ok || stored != principal {
		return "", ErrSessionNotFound
	}
	return principal, nil
}

// Revoke terminates the session named by the delegation.
func (s *SessionService) Revoke(_ context.Context, handle string) error {
	id, _, err := s.parse(handle)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.active, id)
	return nil
}

func (s *SessionService) parse(handle string) (id, principal string, err error) {
	var claims jwt.MapClaims
	_, err = jwt.ParseWithClaims(handle, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrSessionExpired
		}
		return "", "", fmt.Errorf("parse delegation: %w", err)
	}

	id, _ = claims["jti"].(string)
	principal, _ = claims["principal"].(string)
	if id == "" || principal == "" {
		return "", "", errors.New("parse delegation: missing claims")
	}
	return id, principal, nil
}

// NewPrincipal generates a principal-shaped textual identifier: lowercase
// base32 grouped in fives, e.g. "w3gef-4wmzq-6q5f2-e3b4c-aae".
func NewPrincipal() (string, error) {
	raw := make([]byte, 14)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	enc := strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw))

	var groups []string
	for len(enc) > 5 {
		groups = append(groups, enc[:5])
		enc = enc[5:]
	}
	groups = append(groups, enc)
	return strings.Join(groups, "-"), nil
}

// Package agent implements the client side of the remote canister boundary:
// the greet and whoami operations, invoked over JSON/HTTP against a
// configured canister id and network endpoint.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Agent addresses a single canister. The zero delegation makes calls in the
// anonymous context; WithIdentity switches to an authenticated context.
type Agent struct {
	http       *http.Client
	host       string
	canisterID string
	delegation string
	log        *zap.Logger
}

// New constructs an anonymous Agent for the canister at host.
func New(host, canisterID string, log *zap.Logger) *Agent {
	return &Agent{
		http:       &http.Client{Timeout: 10 * time.Second},
		host:       host,
		canisterID: canisterID,
		log:        log,
	}
}

// WithIdentity returns a copy of the agent that calls in the authenticated
// context of the given identity handle.
func (a *Agent) WithIdentity(delegation string) *Agent {
	out := *a
	out.delegation = delegation
	return &out
}

// Greet invokes the canister's greet operation.
func (a *Agent) Greet(ctx context.Context, name string) (string, error) {
	var out struct {
		Greeting string `json:"greeting"`
	}
	if err := a.call(ctx, "greet", map[string]string{"name": name}, &out); err != nil {
		return "", err
	}
	return out.Greeting, nil
}

// Whoami invokes the canister's whoami operation and returns the caller
// principal as the service saw it.
func (a *Agent) Whoami(ctx context.Context) (string, error) {
	var out struct {
		Principal string `json:"principal"`
	}
	if err := a.call(ctx, "whoami", struct{}{}, &out); err != nil {
		return "", err
	}
	return out.Principal, nil
}

func (a *Agent) call(ctx context.Context, method string, args, reply any) error {
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}

	url := fmt.Sprintf("%s/api/canister/%s", a.host, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Canister-Id", a.canisterID)
	req.Header.Set("X-Request-Id", requestID)
	if a.delegation != "" {
		req.Header.Set("Authorization", "Bearer "+a.delegation)
	}

	start := time.Now()
	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	a.log.Debug("canister call",
		zap.String("method", method),
		zap.String("canister_id", a.canisterID),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("call %s: status %d: %s", method, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if err := json.NewDecoder(resp.Body).Decode(reply); err != nil {
		return fmt.Errorf("call %s: decode: %w", method, err)
	}
	return nil
}

// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file, and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
)

// Network endpoints used when no explicit host override is configured.
const (
	// ProductionHost is the boundary-node endpoint of the production network.
	ProductionHost = "https://icp0.io"
	// ProductionIdentityProvider is the production identity service.
	ProductionIdentityProvider = "https://identity.ic0.app"
	// LocalHost is the local replica endpoint used during development.
	LocalHost = "http://127.0.0.1:4943"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the stub server's listening address (ip:port).
	Addr string `json:"addr" env:"SERVER_ADDRESS"`

	// Network selects the target network: "local" or "ic".
	Network string `json:"network" env:"DFX_NETWORK"`

	// CanisterID addresses the backend service on the network.
	CanisterID string `json:"canister_id" env:"CANISTER_ID_BACKEND"`

	// Host overrides the network endpoint derived from Network.
	Host string `json:"host" env:"ICVAULT_HOST"`

	// IdentityProvider overrides the identity service URL derived from Network.
	IdentityProvider string `json:"identity_provider" env:"ICVAULT_IDENTITY_PROVIDER"`

	// Delegation is an identity handle carried over from a previous login,
	// used to resume an existing session.
	Delegation string `json:"-" env:"ICVAULT_DELEGATION"`

	// SessionSecret signs delegations issued by the development identity
	// endpoints.
	SessionSecret string `json:"-" env:"ICVAULT_SESSION_SECRET"`

	// SessionTTLMinutes bounds the lifetime of issued delegations.
	SessionTTLMinutes int `json:"session_ttl_minutes" env:"ICVAULT_SESSION_TTL_MINUTES"`

	// LogLevel sets the logging verbosity.
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// Config is the path to the config file.
	Config string `json:"-" env:"CONFIG"`
}

// defaults returns an Options with every built-in default value. Both the
// flag set and FromEnv start from here.
func defaults() *Options {
	return &Options{
		Addr:              "localhost:8080",
		Network:           "local",
		CanisterID:        "backend",
		SessionSecret:     "devsecret",
		SessionTTLMinutes: 30,
		LogLevel:          "info",
		Config:            "config.json",
	}
}

// options holds the current configuration values.
var options = defaults()

// init initializes command-line flags with the default values.
func init() {
	flag.StringVar(&options.Addr, "a", options.Addr, "run on ip:port server")
	flag.StringVar(&options.Network, "network", options.Network, "target network: local or ic")
	flag.StringVar(&options.CanisterID, "canister-id", options.CanisterID, "backend canister id")
	flag.StringVar(&options.Host, "host", options.Host, "network endpoint override")
	flag.StringVar(&options.IdentityProvider, "identity-provider", options.IdentityProvider, "identity provider URL override")
	flag.StringVar(&options.SessionSecret, "session-secret", options.SessionSecret, "dev delegation signing secret")
	flag.IntVar(&options.SessionTTLMinutes, "session-ttl", options.SessionTTLMinutes, "dev delegation lifetime in minutes")
	flag.StringVar(&options.LogLevel, "log-level", options.LogLevel, "logging verbosity")
	flag.StringVar(&options.Config, "config", options.Config, "path to config file")
	flag.StringVar(&options.Config, "c", options.Config, "path to config file (shorthand)")
}

// load layers the optional config file and the environment variables onto o,
// in increasing order of precedence.
func load(o *Options) error {
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		o.Config = configPath
	}
	if o.Config != "" {
		if _, err := os.Stat(o.Config); err == nil {
			data, err := os.ReadFile(o.Config)
			if err != nil {
				return fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, o); err != nil {
				return fmt.Errorf("parse config file: %w", err)
			}
		}
	}
	return env.Parse(o)
}

// Parse parses the command-line flags, the optional config file, and
// environment variables (in increasing order of precedence) and returns a
// pointer to the Options struct containing the resulting values.
func Parse() *Options {
	flag.Parse()
	if err := load(options); err != nil {
		log.Fatalf("error while loading configuration: %v", err)
	}
	return options
}

// FromEnv returns Options built from defaults, the optional config file,
// and environment variables, without touching the flag set. Used by the
// cobra-based CLI, which owns its own flags.
func FromEnv() (*Options, error) {
	o := defaults()
	if err := load(o); err != nil {
		return nil, err
	}
	return o, nil
}

// CanisterHost returns the network endpoint to address canister calls to,
// honoring an explicit Host override first.
func (o *Options) CanisterHost() string {
	if o.Host != "" {
		return o.Host
	}
	if o.Network == "ic" {
		return ProductionHost
	}
	return "http://" + o.Addr
}

// IdentityProviderURL returns the identity service endpoint, honoring an
// explicit override first.
func (o *Options) IdentityProviderURL() string {
	if o.IdentityProvider != "" {
		return o.IdentityProvider
	}
	if o.Network == "ic" {
		return ProductionIdentityProvider
	}
	return "http://" + o.Addr
}

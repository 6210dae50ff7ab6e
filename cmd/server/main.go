// Package main initializes and starts the icvault backend stub server,
// setting up configuration, logging, services, handlers, and routing.
package main

import (
	"cmp"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/icfoundry/icvault/internal/config"
	"github.com/icfoundry/icvault/internal/logger"
	"github.com/icfoundry/icvault/internal/middleware"
	"github.com/icfoundry/icvault/internal/server/handler/http"
	"github.com/icfoundry/icvault/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize business-logic services.
	greeter := service.NewGreeter()
	sessions := service.NewSessionService(
		options.SessionSecret,
		time.Duration(options.SessionTTLMinutes)*time.Minute,
	)

	// Create HTTP handlers for the canister and session endpoints.
	canisterHandler := &http.CanisterHandler{GreeterService: greeter}
	sessionHandler := &http.SessionHandler{Sessions: sessions}

	// Throttle canister calls per principal.
	limiter := middleware.NewRateLimiter(rate.Limit(2), 120)
	defer limiter.Stop()

	// Build the router with middleware and routes.
	router := http.NewRouter(canisterHandler, sessionHandler, sessions, limiter, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Addr),
		zap.String("canister_id", options.CanisterID),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

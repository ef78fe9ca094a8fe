package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cpi-resender/config"
	httpHandler "cpi-resender/internal/adapter/http/handler"
	"cpi-resender/internal/app"
	"cpi-resender/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CPR_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("tenant", cfg.Tenant.Name).
		Str("relay", cfg.Relay.Mode).
		Msg("Starting CPI Resender")

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise application")
	}
	defer a.Close()

	if a.Tokens == nil {
		log.Warn().Msg("auth.jwt_secret is empty, API is open")
	}

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		DiscoverySvc:   a.Discovery,
		PayloadSvc:     a.Payloads,
		EndpointSvc:    a.Endpoints,
		ResendSvc:      a.Resend,
		MarkerSvc:      a.Markers,
		OverviewSvc:    a.Overview,
		BaseSession:    a.Session,
		TokenSvc:       a.Tokens,
		Relay:          a.LocalRelay,
		RelaySecret:    a.RelaySecret,
		RateLimitStore: a.RateLimitStore,
		HealthCheckers: a.HealthCheckers,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown. Resend streams may run for minutes, so give them
	// longer than plain requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

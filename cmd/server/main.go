package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/infrastructure/config"
	"flightdesk-service/internal/infrastructure/oauth"
	"flightdesk-service/internal/infrastructure/persistence"
	"flightdesk-service/internal/interface/web"
	"flightdesk-service/internal/usecase"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Flightdesk Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal("Failed to create data directory", "error", err, "dir", cfg.DataDir)
	}

	// Load the read-only route table
	routes, err := persistence.LoadRoutes(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to load route table", "error", err)
	}
	routeTable := entity.NewRouteTable(routes)
	if len(routeTable) == 0 {
		log.Warn("Route table is empty, all bookings will be rejected", "dir", cfg.DataDir)
	}

	// Set up metrics and the collection stores
	m := metrics.NewMetrics("flightdesk")
	userStore := persistence.NewCollection[entity.User]("users", cfg.DataDir, log, m)
	flightStore := persistence.NewCollection[entity.Flight]("flights", cfg.DataDir, log, m)

	// Set up services
	bookingService := usecase.NewBookingService(flightStore, routeTable, log, m)
	registryService := usecase.NewRegistryService(userStore, log, m)

	// Set up the identity exchange and sessions
	discordOAuth := oauth.NewDiscordOAuth(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURI, log)
	sessions := web.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)

	handlers := web.NewHandlers(bookingService, registryService, discordOAuth, sessions, routeTable, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      web.NewRouter(handlers, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("Flightdesk Service stopped")
}

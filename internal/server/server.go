// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Bochorn0/aquatech-api-sub001/api"
	"github.com/Bochorn0/aquatech-api-sub001/api/middleware"
	"github.com/Bochorn0/aquatech-api-sub001/internal/cache"
	"github.com/Bochorn0/aquatech-api-sub001/internal/config"
	"github.com/Bochorn0/aquatech-api-sub001/internal/database"
	"github.com/Bochorn0/aquatech-api-sub001/internal/fleetservice"
	"github.com/Bochorn0/aquatech-api-sub001/internal/monitoring"
	"github.com/Bochorn0/aquatech-api-sub001/internal/repository/postgres"
	"github.com/Bochorn0/aquatech-api-sub001/internal/repository/timescale"
)

// Server represents our HTTP server
type Server struct {
	config  *config.Config
	srv     *http.Server
	service *fleetservice.FleetService
	metrics *monitoring.Metrics
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config: cfg,
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start begins listening for requests
func (s *Server) Start() error {
	s.metrics = monitoring.NewMetrics()
	s.service = initializeFleetService(s.config, s.metrics)

	s.setupCleanupHandlers()

	router := api.NewRouter(s.service, middleware.KeycloakConfig{
		URL:          s.config.Keycloak.URL,
		Realm:        s.config.Keycloak.Realm,
		ClientID:     s.config.Keycloak.ClientID,
		ClientSecret: s.config.Keycloak.ClientSecret,
	})
	router.Resources().SetHealthCheck(s.handleHealth())
	router.Resources().SetMetrics(s.metrics.Handler().ServeHTTP)
	router.UseRequestMetrics(s.metrics.ObserveHTTPRequest)

	// Dashboards are served from another origin.
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	s.srv.Handler = cors(handlers.CompressHandler(router))

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
	}
}

func (s *Server) setupCleanupHandlers() {
	s.service.Cleanup.OnCleanup("product.deleted", func(id string) {
		nuts.L.Infof("[Cleanup] Product %s and all associated telemetry deleted", id)
	})
	s.service.Cleanup.OnCleanup("logs.deleted", func(deviceID string) {
		nuts.L.Infof("[Cleanup] Telemetry for device %s deleted", deviceID)
	})
}

// initializeFleetService creates and configures the fleet service
func initializeFleetService(cfg *config.Config, metrics *monitoring.Metrics) *fleetservice.FleetService {
	tsdb := initTimescaleDB(cfg.Database.TimescaleDB)
	appDB := initAppDB(cfg.Database.AppDB)

	products := postgres.NewProductRepository(appDB)
	puntosVenta := postgres.NewPuntoVentaRepository(appDB)
	clients := postgres.NewClientRepository(appDB)

	logs, err := timescale.NewProductLogRepository(tsdb)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize product log repository: %v", err)
	}

	latest := cache.New(initRedis(cfg.Redis))

	svc, err := fleetservice.New(products, puntosVenta, clients, logs, latest, metrics, cfg.Report)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize fleet service: %v", err)
	}
	if err := svc.Validate(); err != nil {
		nuts.L.Fatalf("[Server] Invalid fleet service wiring: %v", err)
	}
	return svc
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping Redis: %v", err)
	}

	nuts.L.Infof("[Server] Connected to Redis at %s:%d", cfg.Host, cfg.Port)
	return client
}

func initTimescaleDB(cfg config.PostgresConfig) database.DB {
	// NewTimescaleDB already verifies the timescaledb extension.
	wrappedDB, err := database.NewTimescaleDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to TimescaleDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.GetDB().PingContext(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping TimescaleDB: %v", err)
	}
	return wrappedDB
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to AppDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.GetDB().PingContext(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping AppDB: %v", err)
	}
	return wrappedDB
}

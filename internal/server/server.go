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

	"github.com/verdantlabs/gardenhub/api"
	"github.com/verdantlabs/gardenhub/internal/config"
	"github.com/verdantlabs/gardenhub/internal/database"
	"github.com/verdantlabs/gardenhub/internal/gardenservice"
	"github.com/verdantlabs/gardenhub/internal/monitoring"
	"github.com/verdantlabs/gardenhub/internal/notify"
	"github.com/verdantlabs/gardenhub/internal/repository/postgres"
	"github.com/verdantlabs/gardenhub/internal/scheduler"
	"github.com/verdantlabs/gardenhub/internal/weather"
)

// Server wires the HTTP API and the daily scheduler
type Server struct {
	config    *config.Config
	srv       *http.Server
	db        database.DB
	rdb       *redis.Client
	service   *gardenservice.GardenService
	scheduler *scheduler.DailyScheduler
	metrics   *monitoring.Metrics

	schedulerCancel context.CancelFunc
	schedulerDone   chan struct{}
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{
		config:        cfg,
		metrics:       monitoring.New(),
		schedulerDone: make(chan struct{}),
	}
}

// Start initializes all services, begins listening for requests and
// launches the daily scheduler. Blocks until shutdown.
func (s *Server) Start() error {
	if err := s.initialize(); err != nil {
		return err
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	schedulerCtx, cancel := context.WithCancel(context.Background())
	s.schedulerCancel = cancel
	go func() {
		defer close(s.schedulerDone)
		if err := s.scheduler.Run(schedulerCtx); err != nil && err != context.Canceled {
			nuts.L.Errorf("[Server] Scheduler stopped: %v", err)
		}
	}()

	return s.waitForShutdown()
}

func (s *Server) initialize() error {
	db, err := database.NewPostgresDB(s.config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	s.rdb = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", s.config.Redis.Host, s.config.Redis.Port),
		Password: s.config.Redis.Password,
		DB:       s.config.Redis.DB,
	})
	var weatherCache *weather.Cache
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		// The DB fallback serves weather reads when redis is down.
		nuts.L.Warnf("[Server] Redis unavailable, running without weather cache: %v", err)
	} else {
		weatherCache = weather.NewCache(s.rdb, s.config.Weather.CacheTTL)
	}

	plants := postgres.NewPlantRepository(db)
	gardens := postgres.NewGardenRepository(db)
	gardenPlants := postgres.NewGardenPlantRepository(db)
	users := postgres.NewUserRepository(db)
	weatherSamples := postgres.NewWeatherRepository(db)

	weatherClient := weather.NewOpenWeatherMapClient(
		s.config.Weather.BaseURL,
		s.config.Weather.APIKey,
		s.config.Weather.Timeout,
	)
	weatherService := weather.NewService(weatherClient, weatherSamples, gardens, weatherCache)

	s.service = gardenservice.New(plants, gardens, gardenPlants, users, weatherService)
	if err := s.service.Validate(); err != nil {
		return err
	}
	s.setupEventHandlers()

	notifier := notify.NewService(users, nil, s.config.Email, s.metrics)
	s.scheduler = scheduler.New(s.config.Schedule, users, weatherService, s.service, notifier, s.metrics)

	router := api.NewRouter(s.service, weatherService, s.config.Auth)
	router.Use(s.metrics.HTTPMiddleware)
	router.Resources().SetHealthCheck(s.handleHealth())
	router.Resources().SetMetrics(s.metrics.Handler().ServeHTTP)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(s.config.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handlers.CombinedLoggingHandler(os.Stdout, corsHandler(router)),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	return nil
}

// waitForShutdown waits for interrupt signal, stops the scheduler and
// gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	if s.schedulerCancel != nil {
		s.schedulerCancel()
		<-s.schedulerDone
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.db != nil {
		s.db.Close()
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// handleHealth returns a simple health check handler
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
	}
}

func (s *Server) setupEventHandlers() {
	s.service.OnEvent("gardenplant.placed", func(id string) {
		nuts.L.Infof("[Events] Garden plant %s placed", id)
	})

	s.service.OnEvent("gardenplant.removed", func(id string) {
		nuts.L.Infof("[Events] Garden plant %s and its tracking state removed", id)
	})

	s.service.OnEvent("gardenplant.watered", func(id string) {
		nuts.L.Infof("[Events] Garden plant %s watered", id)
	})

	s.service.OnEvent("gardenplant.status_changed", func(id string) {
		nuts.L.Infof("[Events] Garden plant %s changed status", id)
	})
}

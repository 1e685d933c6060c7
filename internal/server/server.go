// Package server defines the Server container that owns the application's
// shared dependencies and the HTTP server lifecycle.
//
// It owns:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client and the rate limit store
//   - token manager and upload store
//   - background job worker server (asynq)
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/lib/job"
	"github.com/deppfellow/campus-portal/internal/lib/ratelimit"
	"github.com/deppfellow/campus-portal/internal/lib/token"
	"github.com/deppfellow/campus-portal/internal/lib/upload"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/campus-portal/internal/logger"
)

// Server is the application container. It is not the HTTP server itself;
// that lives in httpServer and is configured by SetupHTTPServer.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client

	// RateLimit counts hits for every rate limit policy.
	RateLimit ratelimit.Store
	Tokens    *token.Manager
	Uploads   *upload.Store

	Job *job.JobService

	httpServer *http.Server
}

// New connects to PostgreSQL and Redis and starts the job workers.
//
// Redis failures at boot are logged, not fatal: the rate limiter fails open
// and email jobs are retried by asynq once Redis comes back.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	var limiterStore ratelimit.Store
	switch cfg.RateLimit.Store {
	case "memory":
		limiterStore = ratelimit.NewMemoryStore()
	default:
		limiterStore = ratelimit.NewRedisStore(redisClient)
	}

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)

	if err := jobService.Start(); err != nil {
		return nil, err
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		RateLimit:     limiterStore,
		Tokens:        token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer),
		Uploads:       upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes),
		Job:           jobService,
	}

	return server, nil
}

// SetupHTTPServer configures the net/http server around handler. Config
// timeouts are in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires, then closes the
// workers, Redis and the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Error().Err(err).Msg("failed to close redis client")
		}
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}

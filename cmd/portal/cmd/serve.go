package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/deppfellow/campus-portal/internal/database"
	"github.com/deppfellow/campus-portal/internal/handler"
	"github.com/deppfellow/campus-portal/internal/lib/metrics"
	"github.com/deppfellow/campus-portal/internal/logger"
	"github.com/deppfellow/campus-portal/internal/repository"
	"github.com/deppfellow/campus-portal/internal/router"
	"github.com/deppfellow/campus-portal/internal/server"
	"github.com/deppfellow/campus-portal/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	bootTimeout     = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

On boot the server applies pending migrations when
PORTAL_DATABASE.MIGRATE_ON_START is true, creates the bootstrap admin
when PORTAL_AUTH.BOOTSTRAP_ADMIN_EMAIL and PORTAL_AUTH.BOOTSTRAP_ADMIN_PASSWORD
are set, starts the email workers and serves until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	metrics.Init(config.Version, config.GitCommit, cfg.Primary.Env)
	log.Info().Str("version", config.Version).Str("commit", config.GitCommit).Msg("starting campus portal")

	bootCtx, cancel := context.WithTimeout(cmd.Context(), bootTimeout)
	defer cancel()

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(bootCtx, &log, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewServices(srv, repos)
	if err != nil {
		return fmt.Errorf("could not create services: %w", err)
	}

	bootstrapAdmin(bootCtx, cfg, services.Auth, log)

	r, err := router.NewRouter(srv, handler.NewHandlers(srv, services))
	if err != nil {
		return fmt.Errorf("could not create router: %w", err)
	}
	srv.SetupHTTPServer(r)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	return gracefulShutdown(srv, log)
}

func bootstrapAdmin(ctx context.Context, cfg *config.Config, auth *service.AuthService, log zerolog.Logger) {
	email, password := cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword
	if email == "" || password == "" {
		log.Debug().Msg("admin bootstrap not configured; skipping")
		return
	}

	created, err := auth.EnsureAdmin(ctx, email, password, "Admin", config.InstitutionName)
	if err != nil {
		log.Error().Err(err).Msg("admin bootstrap failed")
		return
	}
	if !created {
		return
	}

	event := log.Info()
	if cfg.Primary.Env != "production" {
		event = event.Str("email", email)
	}
	event.Msg("bootstrapped admin user")
}

func gracefulShutdown(srv *server.Server, log zerolog.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}

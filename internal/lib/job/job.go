// Package job provides background job processing using Asynq.
//
// Emails are never sent inline: request handlers enqueue a task through
// Mailer and the worker started by JobService delivers it.
package job

import (
	"fmt"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Queue names, by priority.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	email  *email.Client
	logger *zerolog.Logger
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

// NewJobService creates a JobService configured to use Redis from cfg.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	client := asynq.NewClient(redisOpt(cfg))

	server := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				QueueCritical: 6,
				QueueDefault:  3,
				QueueLow:      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers builds the email client used by the task handlers.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.email = email.NewClient(cfg, logger)
}

func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskContactConfirmation, j.handleContactConfirmationTask)
	mux.HandleFunc(TaskApplicationConfirmation, j.handleApplicationConfirmationTask)
	mux.HandleFunc(TaskApplicationStatus, j.handleApplicationStatusTask)
	mux.HandleFunc(TaskDocumentReady, j.handleDocumentReadyTask)
	mux.HandleFunc(TaskPaymentReceipt, j.handlePaymentReceiptTask)
	mux.HandleFunc(TaskAdminNotification, j.handleAdminNotificationTask)
	return mux
}

// Start registers the task handlers and starts the workers in the
// background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return err
	}

	return nil
}

// Stop waits for running tasks and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger routes asynq's own logs into zerolog.
type asynqLogger struct {
	logger zerolog.Logger
}

func newAsynqLogger(logger *zerolog.Logger) *asynqLogger {
	return &asynqLogger{logger: logger.With().Str("component", "asynq").Logger()}
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }

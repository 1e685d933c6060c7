package job

import (
	"context"

	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/hibiken/asynq"
)

// runEmailTask decodes the payload of t and hands it to send, logging the
// outcome. Returning an error makes asynq retry the task.
func runEmailTask[T any](j *JobService, ctx context.Context, t *asynq.Task, send func(context.Context, string, T) error) error {
	p, err := decodeEmailPayload[T](t)
	if err != nil {
		j.logger.Error().Err(err).Str("type", t.Type()).Msg("dropping malformed email task")
		return err
	}

	log := j.logger.With().Str("type", t.Type()).Str("to", p.To).Logger()
	log.Debug().Msg("processing email task")

	if err := send(ctx, p.To, p.Data); err != nil {
		log.Error().Err(err).Msg("failed to send email")
		return err
	}

	log.Info().Msg("email sent")
	return nil
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	return runEmailTask(j, ctx, t, j.email.SendWelcomeEmail)
}

func (j *JobService) handleContactConfirmationTask(ctx context.Context, t *asynq.Task) error {
	return runEmailTask(j, ctx, t, j.email.SendContactConfirmation)
}

func (j *JobService) handleApplicationConfirmationTask(ctx context.Context, t *asynq.Task) error {
	return runEmailTask(j, ctx, t, j.email.SendApplicationConfirmation)
}

func (j *JobService) handleApplicationStatusTask(ctx context.Context, t *asynq.Task) error {
	return runEmailTask(j, ctx, t, j.email.SendApplicationStatus)
}

func (j *JobService) handleDocumentReadyTask(ctx context.Context, t *asynq.Task) error {
	return runEmailTask(j, ctx, t, j.email.SendDocumentReady)
}

func (j *JobService) handlePaymentReceiptTask(ctx context.Context, t *asynq.Task) error {
	return runEmailTask(j, ctx, t, j.email.SendPaymentReceipt)
}

func (j *JobService) handleAdminNotificationTask(ctx context.Context, t *asynq.Task) error {
	return runEmailTask(j, ctx, t, func(ctx context.Context, _ string, data email.AdminNotificationData) error {
		return j.email.SendAdminNotification(ctx, data)
	})
}

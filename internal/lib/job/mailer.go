package job

import (
	"context"
	"strings"
	"time"

	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/lib/metrics"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Mailer enqueues email tasks. Every method is fire-and-forget: a failure
// to enqueue is logged and counted, never returned, so a broken queue
// cannot fail the request that triggered the email.
type Mailer struct {
	client  enqueuer
	logger  *zerolog.Logger
	timeout time.Duration
}

// defaultEnqueueTimeout bounds the Redis round trip of one enqueue.
const defaultEnqueueTimeout = time.Second

func NewMailer(client enqueuer, logger *zerolog.Logger) *Mailer {
	return &Mailer{client: client, logger: logger, timeout: defaultEnqueueTimeout}
}

func (m *Mailer) enqueue(ctx context.Context, task *asynq.Task, err error) {
	kind := "unknown"
	if task != nil {
		kind = strings.TrimPrefix(task.Type(), "email:")
	}

	if err == nil {
		enqueueCtx, cancel := context.WithTimeout(ctx, m.timeout)
		_, err = m.client.EnqueueContext(enqueueCtx, task)
		cancel()
	}
	if err != nil {
		metrics.EmailsEnqueued.WithLabelValues(kind, "error").Inc()
		m.logger.Error().Err(err).Str("kind", kind).Msg("failed to enqueue email task")
		return
	}

	metrics.EmailsEnqueued.WithLabelValues(kind, "ok").Inc()
}

func (m *Mailer) Welcome(ctx context.Context, to string, data email.WelcomeData) {
	task, err := NewWelcomeEmailTask(to, data)
	m.enqueue(ctx, task, err)
}

func (m *Mailer) ContactConfirmation(ctx context.Context, to string, data email.ContactConfirmationData) {
	task, err := NewContactConfirmationTask(to, data)
	m.enqueue(ctx, task, err)
}

func (m *Mailer) ApplicationConfirmation(ctx context.Context, to string, data email.ApplicationConfirmationData) {
	task, err := NewApplicationConfirmationTask(to, data)
	m.enqueue(ctx, task, err)
}

func (m *Mailer) ApplicationStatus(ctx context.Context, to string, data email.ApplicationStatusData) {
	task, err := NewApplicationStatusTask(to, data)
	m.enqueue(ctx, task, err)
}

func (m *Mailer) DocumentReady(ctx context.Context, to string, data email.DocumentReadyData) {
	task, err := NewDocumentReadyTask(to, data)
	m.enqueue(ctx, task, err)
}

func (m *Mailer) PaymentReceipt(ctx context.Context, to string, data email.PaymentReceiptData) {
	task, err := NewPaymentReceiptTask(to, data)
	m.enqueue(ctx, task, err)
}

func (m *Mailer) AdminNotification(ctx context.Context, data email.AdminNotificationData) {
	task, err := NewAdminNotificationTask(data)
	m.enqueue(ctx, task, err)
}

package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/lib/metrics"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
	hang  bool
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "1", Type: task.Type()}, nil
}

func TestNewEmailTasks(t *testing.T) {
	task, err := NewWelcomeEmailTask("awa@example.com", email.WelcomeData{FirstName: "Awa"})
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	p, err := decodeEmailPayload[email.WelcomeData](task)
	require.NoError(t, err)
	assert.Equal(t, "awa@example.com", p.To)
	assert.Equal(t, "Awa", p.Data.FirstName)

	task, err = NewAdminNotificationTask(email.AdminNotificationData{Kind: email.NotifyNewPayment})
	require.NoError(t, err)
	assert.Equal(t, TaskAdminNotification, task.Type())
}

func TestDecodeEmailPayload_Malformed(t *testing.T) {
	_, err := decodeEmailPayload[email.WelcomeData](asynq.NewTask(TaskWelcome, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestMailer_Enqueues(t *testing.T) {
	logger := zerolog.Nop()
	fake := &fakeEnqueuer{}
	m := NewMailer(fake, &logger)

	before := testutil.ToFloat64(metrics.EmailsEnqueued.WithLabelValues("payment_receipt", "ok"))

	m.PaymentReceipt(context.Background(), "awa@example.com", email.PaymentReceiptData{Amount: "10.00"})
	m.AdminNotification(context.Background(), email.AdminNotificationData{Kind: email.NotifyNewPayment})

	require.Len(t, fake.tasks, 2)
	assert.Equal(t, TaskPaymentReceipt, fake.tasks[0].Type())
	assert.Equal(t, TaskAdminNotification, fake.tasks[1].Type())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EmailsEnqueued.WithLabelValues("payment_receipt", "ok")))
}

func TestMailer_EnqueueFailureIsSwallowed(t *testing.T) {
	logger := zerolog.Nop()
	m := NewMailer(&fakeEnqueuer{err: errors.New("redis down")}, &logger)

	before := testutil.ToFloat64(metrics.EmailsEnqueued.WithLabelValues("welcome", "error"))

	assert.NotPanics(t, func() {
		m.Welcome(context.Background(), "awa@example.com", email.WelcomeData{FirstName: "Awa"})
	})
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EmailsEnqueued.WithLabelValues("welcome", "error")))
}

func TestMailer_EnqueueTimesOut(t *testing.T) {
	logger := zerolog.Nop()
	m := NewMailer(&fakeEnqueuer{hang: true}, &logger)
	m.timeout = 20 * time.Millisecond

	before := testutil.ToFloat64(metrics.EmailsEnqueued.WithLabelValues("document_ready", "error"))

	start := time.Now()
	m.DocumentReady(context.Background(), "awa@example.com", email.DocumentReadyData{})

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EmailsEnqueued.WithLabelValues("document_ready", "error")))
}

func TestHandlers_DevModeEmailClient(t *testing.T) {
	logger := zerolog.Nop()
	cfg := &config.Config{}
	j := &JobService{logger: &logger}
	j.InitHandlers(cfg, &logger)

	task, err := NewDocumentReadyTask("awa@example.com", email.DocumentReadyData{FirstName: "Awa", DocumentType: "Diplôme"})
	require.NoError(t, err)
	assert.NoError(t, j.handleDocumentReadyTask(context.Background(), task))

	task, err = NewAdminNotificationTask(email.AdminNotificationData{Kind: email.NotifyNewContact})
	require.NoError(t, err)
	assert.NoError(t, j.handleAdminNotificationTask(context.Background(), task))

	assert.Error(t, j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("not json"))))
}

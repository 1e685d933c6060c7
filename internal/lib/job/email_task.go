package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/hibiken/asynq"
)

// Task type names stored in Redis.
const (
	TaskWelcome                 = "email:welcome"
	TaskContactConfirmation     = "email:contact_confirmation"
	TaskApplicationConfirmation = "email:application_confirmation"
	TaskApplicationStatus       = "email:application_status"
	TaskDocumentReady           = "email:document_ready"
	TaskPaymentReceipt          = "email:payment_receipt"
	TaskAdminNotification       = "email:admin_notification"
)

const (
	emailMaxRetry = 3
	emailTimeout  = 30 * time.Second
)

// EmailPayload is the JSON body of every email task: a recipient and the
// template data.
type EmailPayload[T any] struct {
	To   string `json:"to"`
	Data T      `json:"data"`
}

func newEmailTask[T any](taskType, queue, to string, data T) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailPayload[T]{To: to, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}

	return asynq.NewTask(
		taskType,
		payload,
		asynq.MaxRetry(emailMaxRetry),
		asynq.Queue(queue),
		asynq.Timeout(emailTimeout),
	), nil
}

func NewWelcomeEmailTask(to string, data email.WelcomeData) (*asynq.Task, error) {
	return newEmailTask(TaskWelcome, QueueDefault, to, data)
}

func NewContactConfirmationTask(to string, data email.ContactConfirmationData) (*asynq.Task, error) {
	return newEmailTask(TaskContactConfirmation, QueueDefault, to, data)
}

func NewApplicationConfirmationTask(to string, data email.ApplicationConfirmationData) (*asynq.Task, error) {
	return newEmailTask(TaskApplicationConfirmation, QueueDefault, to, data)
}

func NewApplicationStatusTask(to string, data email.ApplicationStatusData) (*asynq.Task, error) {
	return newEmailTask(TaskApplicationStatus, QueueDefault, to, data)
}

func NewDocumentReadyTask(to string, data email.DocumentReadyData) (*asynq.Task, error) {
	return newEmailTask(TaskDocumentReady, QueueDefault, to, data)
}

func NewPaymentReceiptTask(to string, data email.PaymentReceiptData) (*asynq.Task, error) {
	return newEmailTask(TaskPaymentReceipt, QueueDefault, to, data)
}

// NewAdminNotificationTask goes to the low priority queue; the recipient
// is resolved by the worker from configuration.
func NewAdminNotificationTask(data email.AdminNotificationData) (*asynq.Task, error) {
	return newEmailTask(TaskAdminNotification, QueueLow, "", data)
}

func decodeEmailPayload[T any](t *asynq.Task) (EmailPayload[T], error) {
	var p EmailPayload[T]
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return p, nil
}

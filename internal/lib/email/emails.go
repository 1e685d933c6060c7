package email

import (
	"context"
	"fmt"
)

type WelcomeData struct {
	FirstName string
}

func (c *Client) SendWelcomeEmail(ctx context.Context, to string, data WelcomeData) error {
	return c.SendEmail(ctx, to, "Bienvenue sur le portail étudiant", TemplateWelcome, data)
}

type ContactConfirmationData struct {
	FirstName string
	Subject   string
}

func (c *Client) SendContactConfirmation(ctx context.Context, to string, data ContactConfirmationData) error {
	return c.SendEmail(ctx, to, "Message reçu - "+data.Subject, TemplateContactConfirmation, data)
}

type ApplicationConfirmationData struct {
	FirstName string
	School    string
	Program   string
}

func (c *Client) SendApplicationConfirmation(ctx context.Context, to string, data ApplicationConfirmationData) error {
	return c.SendEmail(ctx, to, "Candidature reçue", TemplateApplicationConfirmation, data)
}

type ApplicationStatusData struct {
	FirstName string
	Program   string
	Status    string
}

func (c *Client) SendApplicationStatus(ctx context.Context, to string, data ApplicationStatusData) error {
	return c.SendEmail(ctx, to, "Mise à jour de votre candidature", TemplateApplicationStatus, data)
}

type DocumentReadyData struct {
	FirstName    string
	DocumentType string
	DocumentID   int64
}

func (c *Client) SendDocumentReady(ctx context.Context, to string, data DocumentReadyData) error {
	return c.SendEmail(ctx, to, data.DocumentType+" disponible", TemplateDocumentReady, data)
}

type PaymentReceiptData struct {
	FirstName     string
	Amount        string
	Currency      string
	PaymentType   string
	TransactionID string
	Date          string
}

func (c *Client) SendPaymentReceipt(ctx context.Context, to string, data PaymentReceiptData) error {
	return c.SendEmail(ctx, to, "Confirmation de paiement", TemplatePaymentReceipt, data)
}

// Field is one labelled line of an admin notification.
type Field struct {
	Label string
	Value string
}

type AdminNotificationData struct {
	Kind     NotificationKind
	Title    string
	Fields   []Field
	Link     string
	SentAt   string
	RecordID int64
}

// SendAdminNotification mails the configured admin address. It is a no-op
// when no admin address is configured.
func (c *Client) SendAdminNotification(ctx context.Context, data AdminNotificationData) error {
	if c.adminEmail == "" {
		c.logger.Warn().Str("kind", string(data.Kind)).Msg("admin email not configured, notification skipped")
		return nil
	}
	if data.Title == "" {
		data.Title = data.Kind.Title()
	}
	return c.SendEmail(ctx, c.adminEmail, fmt.Sprintf("[Admin] %s", data.Title), TemplateAdminNotification, data)
}

// Package email renders the portal's HTML emails and sends them through
// Resend.
//
// Templates are embedded in the binary. Without an API key the client runs
// in dev mode: emails are rendered and logged but never sent.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"year": func() int { return time.Now().Year() },
}).ParseFS(templateFS, "templates/*.html"))

// sender is the part of the Resend API the client uses.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client renders templates and delivers them.
type Client struct {
	sender     sender
	from       string
	adminEmail string
	limiter    *rate.Limiter
	logger     *zerolog.Logger
}

// NewClient creates an email Client. Sends are throttled to
// cfg.Integration.EmailRatePerSecond.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	limit := rate.Inf
	if cfg.Integration.EmailRatePerSecond > 0 {
		limit = rate.Limit(cfg.Integration.EmailRatePerSecond)
	}

	c := &Client{
		from:       cfg.Integration.EmailFrom,
		adminEmail: cfg.Integration.AdminEmail,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.sender = resend.NewClient(cfg.Integration.ResendAPIKey).Emails
	} else {
		logger.Warn().Msg("no resend api key configured, emails will be logged instead of sent")
	}
	return c
}

// AdminEmail is the recipient of admin notifications, empty when unset.
func (c *Client) AdminEmail() string {
	return c.adminEmail
}

// Render executes templateName with data.
func Render(templateName Template, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(templateName), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single
// recipient. It blocks while the send rate is exceeded.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data any) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	if c.sender == nil {
		c.logger.Info().
			Str("to", to).
			Str("subject", subject).
			Str("template", string(templateName)).
			Msg("email not sent (dev mode)")
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "email rate limiter")
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.sender.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

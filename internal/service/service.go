// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// payloads and the authenticated actor from handlers, applies ownership and
// workflow rules, calls repositories and schedules notification emails.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/repository"
	"github.com/jackc/pgx/v5"
)

// Mailer schedules notification emails. Implementations never fail the
// caller; see job.Mailer.
type Mailer interface {
	Welcome(ctx context.Context, to string, data email.WelcomeData)
	ContactConfirmation(ctx context.Context, to string, data email.ContactConfirmationData)
	ApplicationConfirmation(ctx context.Context, to string, data email.ApplicationConfirmationData)
	ApplicationStatus(ctx context.Context, to string, data email.ApplicationStatusData)
	DocumentReady(ctx context.Context, to string, data email.DocumentReadyData)
	PaymentReceipt(ctx context.Context, to string, data email.PaymentReceiptData)
	AdminNotification(ctx context.Context, data email.AdminNotificationData)
}

// FileRemover deletes stored uploads.
type FileRemover interface {
	Remove(path string) error
}

const notificationTimeLayout = "02/01/2006 15:04"

func errNotOwner() *errs.HTTPError {
	return errs.NewForbiddenErrorWithCode("You do not have access to this resource", errs.CodeNotOwner)
}

// ownedBy only lets admins and the owner of a row through.
func ownedBy[T any](actor model.Actor, owner func(*T) int64) repository.Guard[T] {
	return func(current *T) error {
		if !actor.CanAccess(owner(current)) {
			return errNotOwner()
		}
		return nil
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func sentAt(now time.Time) string {
	return now.Format(notificationTimeLayout)
}

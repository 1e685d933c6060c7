package service

import (
	"context"
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/application"
	"github.com/deppfellow/campus-portal/internal/model/user"
	"github.com/deppfellow/campus-portal/internal/repository"
	"github.com/rs/zerolog"
)

type applicationStore interface {
	Create(ctx context.Context, userID int64, p *application.CreateApplicationPayload) (*application.Application, error)
	GetByID(ctx context.Context, id int64) (*application.Application, error)
	ListByUser(ctx context.Context, userID int64) ([]application.Application, error)
	ListAll(ctx context.Context, q *application.ListApplicationsQuery) ([]application.PopulatedApplication, int64, error)
	Update(ctx context.Context, id int64, p *application.UpdateApplicationPayload, guard repository.Guard[application.Application]) (*application.Application, error)
	UpdateStatus(ctx context.Context, id int64, status application.Status) (*application.Application, error)
	Delete(ctx context.Context, id int64, guard repository.Guard[application.Application]) error
	Stats(ctx context.Context) (*application.Stats, error)
}

type userLookup interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

type ApplicationService struct {
	applications applicationStore
	users        userLookup
	mailer       Mailer
	logger       *zerolog.Logger
	now          func() time.Time
}

func NewApplicationService(applications applicationStore, users userLookup, mailer Mailer, logger *zerolog.Logger) *ApplicationService {
	return &ApplicationService{applications: applications, users: users, mailer: mailer, logger: logger, now: time.Now}
}

func applicationOwner(a *application.Application) int64 { return a.UserID }

func (s *ApplicationService) Create(ctx context.Context, actor model.Actor, p *application.CreateApplicationPayload) (*application.Application, error) {
	app, err := s.applications.Create(ctx, actor.UserID, p)
	if err != nil {
		return nil, err
	}

	applicant, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", actor.UserID).Msg("applicant lookup failed, confirmation email skipped")
		return app, nil
	}

	s.mailer.ApplicationConfirmation(ctx, applicant.Email, email.ApplicationConfirmationData{
		FirstName: applicant.FirstName,
		School:    app.School,
		Program:   app.Program,
	})
	s.mailer.AdminNotification(ctx, email.AdminNotificationData{
		Kind: email.NotifyNewApplication,
		Fields: []email.Field{
			{Label: "Candidat", Value: applicant.FullName()},
			{Label: "Email", Value: applicant.Email},
			{Label: "École", Value: app.School},
			{Label: "Programme", Value: app.Program},
			{Label: "Niveau", Value: app.EducationLevel},
		},
		SentAt:   sentAt(s.now()),
		RecordID: app.ID,
	})

	return app, nil
}

func (s *ApplicationService) Mine(ctx context.Context, actor model.Actor) (*application.MineResponse, error) {
	apps, err := s.applications.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &application.MineResponse{Applications: apps, Total: int64(len(apps))}, nil
}

func (s *ApplicationService) Get(ctx context.Context, actor model.Actor, id int64) (*application.Application, error) {
	app, err := s.applications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(app.UserID) {
		return nil, errNotOwner()
	}
	return app, nil
}

// Update changes an application. Applicants may only edit while it is
// still being processed; admins may always edit.
func (s *ApplicationService) Update(ctx context.Context, actor model.Actor, p *application.UpdateApplicationPayload) (*application.Application, error) {
	owned := ownedBy(actor, applicationOwner)

	return s.applications.Update(ctx, p.ID, p, func(current *application.Application) error {
		if err := owned(current); err != nil {
			return err
		}
		if !actor.IsAdmin() && !current.Editable() {
			return errs.NewConflictError("This application can no longer be modified", errs.Ptr(errs.CodeApplicationLocked))
		}
		return nil
	})
}

func (s *ApplicationService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	return s.applications.Delete(ctx, id, ownedBy(actor, applicationOwner))
}

func (s *ApplicationService) List(ctx context.Context, q *application.ListApplicationsQuery) (*application.ListResponse, error) {
	q.Pagination = q.Pagination.Normalized()

	apps, total, err := s.applications.ListAll(ctx, q)
	if err != nil {
		return nil, err
	}

	return &application.ListResponse{Applications: apps, Pagination: model.NewPaginationMeta(q.Pagination, total)}, nil
}

// UpdateStatus moves the application through review and tells the
// applicant.
func (s *ApplicationService) UpdateStatus(ctx context.Context, p *application.UpdateStatusPayload) (*application.Application, error) {
	app, err := s.applications.UpdateStatus(ctx, p.ID, p.Status)
	if err != nil {
		return nil, err
	}

	applicant, err := s.users.GetByID(ctx, app.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("application_id", app.ID).Msg("applicant lookup failed, status email skipped")
		return app, nil
	}

	s.mailer.ApplicationStatus(ctx, applicant.Email, email.ApplicationStatusData{
		FirstName: applicant.FirstName,
		Program:   app.Program,
		Status:    app.Status.Label(),
	})

	return app, nil
}

func (s *ApplicationService) Stats(ctx context.Context) (*application.Stats, error) {
	return s.applications.Stats(ctx)
}

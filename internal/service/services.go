package service

import (
	"github.com/deppfellow/campus-portal/internal/config"
	"github.com/deppfellow/campus-portal/internal/lib/job"
	"github.com/deppfellow/campus-portal/internal/model/payment"
	"github.com/deppfellow/campus-portal/internal/repository"
	"github.com/deppfellow/campus-portal/internal/server"
)

type Services struct {
	Auth        *AuthService
	User        *UserService
	Contact     *ContactService
	JobOffer    *JobOfferService
	Application *ApplicationService
	Document    *DocumentService
	Payment     *PaymentService
	Event       *EventService
	Job         *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	mailer := job.NewMailer(s.Job.Client, s.Logger)

	institution := payment.Institution{
		Name:    config.InstitutionName,
		Email:   s.Config.Integration.AdminEmail,
		Website: s.Config.Integration.PublicURL,
	}

	return &Services{
		Auth:        NewAuthService(repos.User, s.Tokens, mailer, s.Config.Auth.BcryptCost, s.Logger),
		User:        NewUserService(repos.User, s.Logger),
		Contact:     NewContactService(repos.Contact, mailer, s.Logger),
		JobOffer:    NewJobOfferService(repos.JobOffer, s.Uploads, mailer, s.Logger),
		Application: NewApplicationService(repos.Application, repos.User, mailer, s.Logger),
		Document:    NewDocumentService(repos.Document, repos.User, s.Uploads, mailer, s.Logger),
		Payment:     NewPaymentService(repos.Payment, repos.User, mailer, institution, s.Logger),
		Event:       NewEventService(repos.Event, s.Logger),
		Job:         s.Job,
	}, nil
}

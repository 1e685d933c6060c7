package repository

import (
	"github.com/deppfellow/campus-portal/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	User        *UserRepository
	Contact     *ContactRepository
	JobOffer    *JobOfferRepository
	Application *ApplicationRepository
	Document    *DocumentRepository
	Payment     *PaymentRepository
	Event       *EventRepository
}

// NewRepositories builds every repository on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		User:        NewUserRepository(s.DB),
		Contact:     NewContactRepository(s.DB),
		JobOffer:    NewJobOfferRepository(s.DB),
		Application: NewApplicationRepository(s.DB),
		Document:    NewDocumentRepository(s.DB),
		Payment:     NewPaymentRepository(s.DB),
		Event:       NewEventRepository(s.DB),
	}
}

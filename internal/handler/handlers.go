package handler

import (
	"github.com/deppfellow/campus-portal/internal/server"
	"github.com/deppfellow/campus-portal/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health      *HealthHandler
	Index       *IndexHandler
	Auth        *AuthHandler
	User        *UserHandler
	Contact     *ContactHandler
	JobOffer    *JobOfferHandler
	Application *ApplicationHandler
	Document    *DocumentHandler
	Payment     *PaymentHandler
	Event       *EventHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(s),
		Index:       NewIndexHandler(),
		Auth:        NewAuthHandler(services.Auth),
		User:        NewUserHandler(services.User),
		Contact:     NewContactHandler(services.Contact),
		JobOffer:    NewJobOfferHandler(services.JobOffer),
		Application: NewApplicationHandler(services.Application),
		Document:    NewDocumentHandler(services.Document),
		Payment:     NewPaymentHandler(services.Payment),
		Event:       NewEventHandler(services.Event),
	}
}

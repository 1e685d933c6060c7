package service

import (
	"context"
	"time"

	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/contact"
	"github.com/rs/zerolog"
)

type contactStore interface {
	Create(ctx context.Context, p *contact.CreateMessagePayload) (*contact.Message, error)
	GetByID(ctx context.Context, id int64) (*contact.Message, error)
	List(ctx context.Context, q *contact.ListMessagesQuery) ([]contact.Message, int64, error)
	UpdateStatus(ctx context.Context, id int64, status contact.Status) (*contact.Message, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*contact.Stats, error)
}

type ContactService struct {
	messages contactStore
	mailer   Mailer
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewContactService(messages contactStore, mailer Mailer, logger *zerolog.Logger) *ContactService {
	return &ContactService{messages: messages, mailer: mailer, logger: logger, now: time.Now}
}

// Send stores a message from the public form, acknowledges it to the
// sender and notifies the administration.
func (s *ContactService) Send(ctx context.Context, p *contact.CreateMessagePayload) (*contact.Message, error) {
	msg, err := s.messages.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.mailer.ContactConfirmation(ctx, msg.Email, email.ContactConfirmationData{
		FirstName: msg.FirstName,
		Subject:   msg.Subject,
	})
	s.mailer.AdminNotification(ctx, email.AdminNotificationData{
		Kind: email.NotifyNewContact,
		Fields: []email.Field{
			{Label: "Nom", Value: msg.FirstName + " " + msg.LastName},
			{Label: "Email", Value: msg.Email},
			{Label: "Téléphone", Value: derefOr(msg.Phone, "Non renseigné")},
			{Label: "École", Value: derefOr(msg.School, "Non renseignée")},
			{Label: "Sujet", Value: msg.Subject},
			{Label: "Message", Value: excerpt(msg.Message, 500)},
		},
		SentAt:   sentAt(s.now()),
		RecordID: msg.ID,
	})

	return msg, nil
}

func (s *ContactService) List(ctx context.Context, q *contact.ListMessagesQuery) (*contact.ListResponse, error) {
	q.Pagination = q.Pagination.Normalized()

	messages, total, err := s.messages.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &contact.ListResponse{Messages: messages, Pagination: model.NewPaginationMeta(q.Pagination, total)}, nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*contact.Message, error) {
	return s.messages.GetByID(ctx, id)
}

func (s *ContactService) UpdateStatus(ctx context.Context, p *contact.UpdateStatusPayload) (*contact.Message, error) {
	return s.messages.UpdateStatus(ctx, p.ID, p.Status)
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.messages.Delete(ctx, id)
}

func (s *ContactService) Stats(ctx context.Context) (*contact.Stats, error) {
	return s.messages.Stats(ctx)
}

package service

import (
	"context"
	"time"

	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/lib/upload"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/joboffer"
	"github.com/rs/zerolog"
)

type jobOfferStore interface {
	Create(ctx context.Context, p *joboffer.CreateOfferPayload) (*joboffer.Offer, error)
	GetByID(ctx context.Context, id int64) (*joboffer.Offer, error)
	List(ctx context.Context, q *joboffer.ListOffersQuery) ([]joboffer.Offer, int64, error)
	Search(ctx context.Context, q *joboffer.SearchOffersQuery) ([]joboffer.Offer, error)
	UpdateStatus(ctx context.Context, id int64, status joboffer.Status) (*joboffer.Offer, error)
	AttachFile(ctx context.Context, id int64, path string) (*joboffer.Offer, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*joboffer.Stats, error)
}

type JobOfferService struct {
	offers jobOfferStore
	files  FileRemover
	mailer Mailer
	logger *zerolog.Logger
	now    func() time.Time
}

func NewJobOfferService(offers jobOfferStore, files FileRemover, mailer Mailer, logger *zerolog.Logger) *JobOfferService {
	return &JobOfferService{offers: offers, files: files, mailer: mailer, logger: logger, now: time.Now}
}

// Submit stores an offer sent by a company. It stays pending until an
// admin publishes it.
func (s *JobOfferService) Submit(ctx context.Context, p *joboffer.CreateOfferPayload) (*joboffer.Offer, error) {
	offer, err := s.offers.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.mailer.AdminNotification(ctx, email.AdminNotificationData{
		Kind: email.NotifyNewJobOffer,
		Fields: []email.Field{
			{Label: "Type", Value: string(offer.Type)},
			{Label: "Entreprise", Value: offer.Company},
			{Label: "Contact", Value: offer.ContactPerson + " (" + offer.Email + ")"},
			{Label: "Ville", Value: derefOr(offer.City, "Non renseignée")},
			{Label: "Secteur", Value: derefOr(offer.Sector, "Non renseigné")},
			{Label: "Missions", Value: excerpt(offer.Missions, 500)},
		},
		SentAt:   sentAt(s.now()),
		RecordID: offer.ID,
	})

	return offer, nil
}

func (s *JobOfferService) List(ctx context.Context, q *joboffer.ListOffersQuery) (*joboffer.ListResponse, error) {
	q.Pagination = q.Pagination.Normalized()

	offers, total, err := s.offers.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &joboffer.ListResponse{Offers: offers, Pagination: model.NewPaginationMeta(q.Pagination, total)}, nil
}

func (s *JobOfferService) Search(ctx context.Context, q *joboffer.SearchOffersQuery) (*joboffer.SearchResponse, error) {
	offers, err := s.offers.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return &joboffer.SearchResponse{Offers: offers, Count: len(offers)}, nil
}

func (s *JobOfferService) Get(ctx context.Context, id int64) (*joboffer.Offer, error) {
	return s.offers.GetByID(ctx, id)
}

func (s *JobOfferService) UpdateStatus(ctx context.Context, p *joboffer.UpdateStatusPayload) (*joboffer.Offer, error) {
	return s.offers.UpdateStatus(ctx, p.ID, p.Status)
}

// AttachFile links an uploaded file to the offer, replacing any previous one.
func (s *JobOfferService) AttachFile(ctx context.Context, id int64, file *upload.File) (*joboffer.Offer, error) {
	current, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.offers.AttachFile(ctx, id, file.Path)
	if err != nil {
		return nil, err
	}

	if current.FilePath != nil && *current.FilePath != file.Path {
		s.removeFile(*current.FilePath)
	}
	return updated, nil
}

func (s *JobOfferService) Delete(ctx context.Context, id int64) error {
	current, err := s.offers.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.offers.Delete(ctx, id); err != nil {
		return err
	}

	if current.FilePath != nil {
		s.removeFile(*current.FilePath)
	}
	return nil
}

func (s *JobOfferService) Stats(ctx context.Context) (*joboffer.Stats, error) {
	return s.offers.Stats(ctx)
}

func (s *JobOfferService) removeFile(path string) {
	if err := s.files.Remove(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove job offer file")
	}
}

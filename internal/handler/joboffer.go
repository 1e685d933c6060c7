package handler

import (
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/joboffer"
	"github.com/deppfellow/campus-portal/internal/service"
	"github.com/labstack/echo/v4"
)

type JobOfferHandler struct {
	offers *service.JobOfferService
}

func NewJobOfferHandler(offers *service.JobOfferService) *JobOfferHandler {
	return &JobOfferHandler{offers: offers}
}

func (h *JobOfferHandler) List(c echo.Context, q *joboffer.ListOffersQuery) (*joboffer.ListResponse, error) {
	return h.offers.List(c.Request().Context(), q)
}

func (h *JobOfferHandler) Search(c echo.Context, q *joboffer.SearchOffersQuery) (*joboffer.SearchResponse, error) {
	return h.offers.Search(c.Request().Context(), q)
}

func (h *JobOfferHandler) Get(c echo.Context, p *joboffer.GetOfferParams) (*joboffer.Offer, error) {
	return h.offers.Get(c.Request().Context(), p.ID)
}

func (h *JobOfferHandler) Submit(c echo.Context, p *joboffer.CreateOfferPayload) (*joboffer.Offer, error) {
	return h.offers.Submit(c.Request().Context(), p)
}

func (h *JobOfferHandler) UpdateStatus(c echo.Context, p *joboffer.UpdateStatusPayload) (*joboffer.Offer, error) {
	return h.offers.UpdateStatus(c.Request().Context(), p)
}

func (h *JobOfferHandler) Delete(c echo.Context, p *joboffer.GetOfferParams) (*model.MessageResponse, error) {
	if err := h.offers.Delete(c.Request().Context(), p.ID); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Job offer deleted", ID: p.ID}, nil
}

func (h *JobOfferHandler) Stats(c echo.Context, _ *model.NoPayload) (*joboffer.Stats, error) {
	return h.offers.Stats(c.Request().Context())
}

// Upload attaches the file stored by the upload middleware to the offer.
func (h *JobOfferHandler) Upload(c echo.Context, p *joboffer.GetOfferParams) (*joboffer.Offer, error) {
	file, err := uploadedFile(c)
	if err != nil {
		return nil, err
	}
	return h.offers.AttachFile(c.Request().Context(), p.ID, file)
}

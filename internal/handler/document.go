package handler

import (
	"path/filepath"
	"strconv"

	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/document"
	"github.com/deppfellow/campus-portal/internal/service"
	"github.com/labstack/echo/v4"
)

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func (h *DocumentHandler) Request(c echo.Context, p *document.RequestPayload) (*document.Document, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.documents.Request(c.Request().Context(), a, p)
}

func (h *DocumentHandler) Mine(c echo.Context, _ *model.NoPayload) (*document.MineResponse, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.documents.Mine(c.Request().Context(), a)
}

func (h *DocumentHandler) GetMine(c echo.Context, p *document.GetDocumentParams) (*document.Document, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.documents.Get(c.Request().Context(), a, p.ID)
}

func (h *DocumentHandler) DeleteMine(c echo.Context, p *document.GetDocumentParams) (*model.MessageResponse, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	if err := h.documents.Delete(c.Request().Context(), a, p.ID); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Document request deleted", ID: p.ID}, nil
}

// Download sends the attached file as <document_type>_<id><ext>.
func (h *DocumentHandler) Download(c echo.Context, p *document.GetDocumentParams) (*Attachment, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	doc, path, err := h.documents.Download(c.Request().Context(), a, p.ID)
	if err != nil {
		return nil, err
	}
	return &Attachment{
		Path: path,
		Name: downloadName(doc, path),
	}, nil
}

func downloadName(doc *document.Document, path string) string {
	return string(doc.DocumentType) + "_" + strconv.FormatInt(doc.ID, 10) + filepath.Ext(path)
}

func (h *DocumentHandler) List(c echo.Context, q *document.ListDocumentsQuery) (*document.ListResponse, error) {
	return h.documents.List(c.Request().Context(), q)
}

func (h *DocumentHandler) UpdateStatus(c echo.Context, p *document.UpdateStatusPayload) (*document.Document, error) {
	return h.documents.UpdateStatus(c.Request().Context(), p)
}

func (h *DocumentHandler) Stats(c echo.Context, _ *model.NoPayload) (*document.Stats, error) {
	return h.documents.Stats(c.Request().Context())
}

// Upload attaches the stored file and marks the document available.
func (h *DocumentHandler) Upload(c echo.Context, p *document.GetDocumentParams) (*document.Document, error) {
	file, err := uploadedFile(c)
	if err != nil {
		return nil, err
	}
	return h.documents.AttachFile(c.Request().Context(), p.ID, file)
}

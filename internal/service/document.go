package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/email"
	"github.com/deppfellow/campus-portal/internal/lib/upload"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/document"
	"github.com/deppfellow/campus-portal/internal/repository"
	"github.com/rs/zerolog"
)

type documentStore interface {
	Create(ctx context.Context, userID int64, docType document.Type) (*document.Document, error)
	GetByID(ctx context.Context, id int64) (*document.Document, error)
	ListByUser(ctx context.Context, userID int64) ([]document.Document, error)
	ListAll(ctx context.Context, q *document.ListDocumentsQuery) ([]document.Document, int64, error)
	UpdateStatus(ctx context.Context, id int64, status document.Status, filePath *string) (*document.Document, error)
	Delete(ctx context.Context, id int64, guard repository.Guard[document.Document]) (*document.Document, error)
	Stats(ctx context.Context) (*document.Stats, error)
}

// FileStore locates and deletes stored uploads.
type FileStore interface {
	FileRemover
	Locate(path string) (string, error)
}

type DocumentService struct {
	documents documentStore
	users     userLookup
	files     FileStore
	mailer    Mailer
	logger    *zerolog.Logger
	now       func() time.Time
}

func NewDocumentService(documents documentStore, users userLookup, files FileStore, mailer Mailer, logger *zerolog.Logger) *DocumentService {
	return &DocumentService{documents: documents, users: users, files: files, mailer: mailer, logger: logger, now: time.Now}
}

func documentOwner(d *document.Document) int64 { return d.UserID }

func (s *DocumentService) Request(ctx context.Context, actor model.Actor, p *document.RequestPayload) (*document.Document, error) {
	doc, err := s.documents.Create(ctx, actor.UserID, p.DocumentType)
	if err != nil {
		return nil, err
	}

	requester := actor.Email
	if u, err := s.users.GetByID(ctx, actor.UserID); err == nil {
		requester = u.FullName() + " (" + u.Email + ")"
	}

	s.mailer.AdminNotification(ctx, email.AdminNotificationData{
		Kind: email.NotifyNewDocumentRequest,
		Fields: []email.Field{
			{Label: "Étudiant", Value: requester},
			{Label: "Document", Value: doc.DocumentType.Label()},
		},
		SentAt:   sentAt(s.now()),
		RecordID: doc.ID,
	})

	return doc, nil
}

func (s *DocumentService) Mine(ctx context.Context, actor model.Actor) (*document.MineResponse, error) {
	docs, err := s.documents.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &document.MineResponse{Documents: docs, Total: int64(len(docs))}, nil
}

func (s *DocumentService) Get(ctx context.Context, actor model.Actor, id int64) (*document.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(doc.UserID) {
		return nil, errNotOwner()
	}
	return doc, nil
}

// Download returns the document and the on-disk location of its file.
func (s *DocumentService) Download(ctx context.Context, actor model.Actor, id int64) (*document.Document, string, error) {
	doc, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if !doc.Downloadable() {
		return nil, "", errs.NewNotFoundError("No file is available for this document yet", true, errs.Ptr(errs.CodeFileNotAvailable))
	}

	path, err := s.files.Locate(*doc.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn().Err(err).Int64("document_id", doc.ID).Msg("document file missing on disk")
		return nil, "", errs.NewNotFoundError("No file is available for this document yet", true, errs.Ptr(errs.CodeFileNotAvailable))
	}
	if err != nil {
		return nil, "", err
	}
	return doc, path, nil
}

func (s *DocumentService) Delete(ctx context.Context, actor model.Actor, id int64) error {
	deleted, err := s.documents.Delete(ctx, id, ownedBy(actor, documentOwner))
	if err != nil {
		return err
	}
	if deleted.Downloadable() {
		s.removeFile(*deleted.FilePath)
	}
	return nil
}

func (s *DocumentService) List(ctx context.Context, q *document.ListDocumentsQuery) (*document.ListResponse, error) {
	q.Pagination = q.Pagination.Normalized()

	docs, total, err := s.documents.ListAll(ctx, q)
	if err != nil {
		return nil, err
	}

	return &document.ListResponse{Documents: docs, Pagination: model.NewPaginationMeta(q.Pagination, total)}, nil
}

// UpdateStatus records an admin decision. The owner is emailed when the
// document becomes available.
func (s *DocumentService) UpdateStatus(ctx context.Context, p *document.UpdateStatusPayload) (*document.Document, error) {
	doc, err := s.documents.UpdateStatus(ctx, p.ID, p.Status, p.FilePath)
	if err != nil {
		return nil, err
	}

	if doc.Status == document.StatusAvailable {
		s.notifyReady(ctx, doc)
	}
	return doc, nil
}

// AttachFile stores the delivered file on the request and marks it
// available.
func (s *DocumentService) AttachFile(ctx context.Context, id int64, file *upload.File) (*document.Document, error) {
	current, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.documents.UpdateStatus(ctx, id, document.StatusAvailable, &file.Path)
	if err != nil {
		return nil, err
	}

	if current.Downloadable() && *current.FilePath != file.Path {
		s.removeFile(*current.FilePath)
	}
	s.notifyReady(ctx, doc)
	return doc, nil
}

func (s *DocumentService) Stats(ctx context.Context) (*document.Stats, error) {
	return s.documents.Stats(ctx)
}

func (s *DocumentService) notifyReady(ctx context.Context, doc *document.Document) {
	owner, err := s.users.GetByID(ctx, doc.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("document_id", doc.ID).Msg("document owner lookup failed, ready email skipped")
		return
	}

	s.mailer.DocumentReady(ctx, owner.Email, email.DocumentReadyData{
		FirstName:    owner.FirstName,
		DocumentType: doc.DocumentType.Label(),
		DocumentID:   doc.ID,
	})
}

func (s *DocumentService) removeFile(path string) {
	if err := s.files.Remove(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove document file")
	}
}

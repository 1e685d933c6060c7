package middleware

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/upload"
	"github.com/deppfellow/campus-portal/internal/server"
	"github.com/labstack/echo/v4"
)

const UploadedFileKey = "uploaded_file"

// UploadMiddleware stores a single multipart file before the handler runs.
type UploadMiddleware struct {
	store *upload.Store
}

func NewUploadMiddleware(s *server.Server) *UploadMiddleware {
	return &UploadMiddleware{store: s.Uploads}
}

// Single accepts exactly one file in field. The stored file is removed
// again when the handler fails.
func (u *UploadMiddleware) Single(field upload.Field) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			form, err := c.MultipartForm()
			if err != nil {
				var maxErr *http.MaxBytesError
				var echoErr *echo.HTTPError
				if errors.As(err, &maxErr) ||
					(errors.As(err, &echoErr) && echoErr.Code == http.StatusRequestEntityTooLarge) {
					return errs.NewRequestEntityTooLargeError("Request body too large")
				}
				return errs.NewBadRequestError("A multipart/form-data body is required", true, errs.Ptr(errs.CodeFileRequired), nil, nil)
			}

			total := 0
			for name, files := range form.File {
				if name != string(field) {
					return errs.NewBadRequestError("Unexpected file field "+name, true, nil,
						[]errs.FieldError{{Field: name, Error: "use the " + string(field) + " field"}}, nil)
				}
				total += len(files)
			}
			if total > 1 {
				return errs.NewBadRequestError("Only one file can be uploaded at a time", true, nil, nil, nil)
			}

			var owner int64
			if actor, ok := GetActor(c); ok {
				owner = actor.UserID
			}

			var header *multipart.FileHeader
			if files := form.File[string(field)]; len(files) == 1 {
				header = files[0]
			}
			file, err := u.store.Save(header, field, owner)
			if err != nil {
				return err
			}
			c.Set(UploadedFileKey, file)

			logger := GetLogger(c)
			logger.Info().
				Str("field", string(field)).
				Str("file_path", file.Path).
				Int64("size", file.Size).
				Str("mime_type", file.MimeType).
				Msg("file uploaded")

			if err := next(c); err != nil {
				if rmErr := u.store.Remove(file.Path); rmErr != nil {
					logger.Error().Err(rmErr).Str("file_path", file.Path).Msg("failed to remove orphaned upload")
				}
				return err
			}
			return nil
		}
	}
}

// GetUploadedFile returns the file stored by UploadMiddleware.Single.
func GetUploadedFile(c echo.Context) (*upload.File, bool) {
	file, ok := c.Get(UploadedFileKey).(*upload.File)
	return file, ok && file != nil
}

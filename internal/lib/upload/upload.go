// Package upload stores multipart attachments (CVs, delivered documents,
// job offer files, profile images) on local disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Field is the multipart form field a file arrives in. It selects the
// subdirectory the file is stored under.
type Field string

const (
	FieldCV           Field = "cv"
	FieldDocument     Field = "document"
	FieldJobOffer     Field = "job_offer"
	FieldProfileImage Field = "profile_image"
)

func (f Field) Dir() string {
	switch f {
	case FieldCV:
		return "cvs"
	case FieldDocument:
		return "documents"
	case FieldJobOffer:
		return "job-offers"
	case FieldProfileImage:
		return "profiles"
	default:
		return "misc"
	}
}

var (
	AllowedExtensions = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png", ".gif"}
	AllowedMIMETypes  = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"image/jpeg",
		"image/png",
		"image/gif",
	}
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9-]+`)

const maxBaseLen = 64

// File describes a stored upload. Path is relative to the upload root.
type File struct {
	Field        Field  `json:"-"`
	Path         string `json:"file_path"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
}

type Store struct {
	root    string
	maxSize int64
	now     func() time.Time
}

func NewStore(root string, maxSize int64) *Store {
	return &Store{root: root, maxSize: maxSize, now: time.Now}
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) MaxSize() int64 {
	return s.maxSize
}

func (s *Store) tooLarge() *errs.HTTPError {
	return errs.NewRequestEntityTooLargeError(
		fmt.Sprintf("File too large, the maximum allowed size is %dMB", s.maxSize>>20))
}

// Save validates fh and writes it under <root>/<field dir>. ownerID 0 is
// stored as "anonymous".
func (s *Store) Save(fh *multipart.FileHeader, field Field, ownerID int64) (*File, error) {
	if fh == nil {
		return nil, errs.NewBadRequestError("No file uploaded, please select a file", false, errs.Ptr(errs.CodeFileRequired), nil, nil)
	}
	if fh.Size > s.maxSize {
		return nil, s.tooLarge()
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !slices.Contains(AllowedExtensions, ext) {
		return nil, errs.NewUnsupportedMediaTypeError(
			"File type not allowed, accepted extensions: " + strings.Join(AllowedExtensions, ", "))
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), AllowedMIMETypes...) {
		return nil, errs.NewUnsupportedMediaTypeError("File content does not match an allowed type")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	dir := filepath.Join(s.root, field.Dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := s.filename(fh.Filename, ext, ownerID)
	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		name = strings.TrimSuffix(name, ext) + "_" + uuid.NewString()[:8] + ext
		dst, err = os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	fullPath := dst.Name()
	written, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if written > s.maxSize {
		_ = os.Remove(fullPath)
		return nil, s.tooLarge()
	}

	return &File{
		Field:        field,
		Path:         filepath.ToSlash(filepath.Join(field.Dir(), name)),
		Filename:     name,
		OriginalName: fh.Filename,
		Size:         written,
		MimeType:     mtype.String(),
	}, nil
}

func (s *Store) filename(original, ext string, ownerID int64) string {
	owner := "anonymous"
	if ownerID > 0 {
		owner = strconv.FormatInt(ownerID, 10)
	}

	base := strings.ToLower(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	base = strings.Trim(unsafeChars.ReplaceAllString(base, "-"), "-")
	if len(base) > maxBaseLen {
		base = base[:maxBaseLen]
	}
	if base == "" {
		base = "file"
	}

	return fmt.Sprintf("%s_%s_%d%s", owner, base, s.now().UnixMilli(), ext)
}

// Resolve maps a stored relative path to a location on disk. Paths that
// escape the upload root are rejected.
func (s *Store) Resolve(path string) (string, error) {
	if path == "" {
		return "", os.ErrNotExist
	}

	full := filepath.Join(s.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the upload directory: %w", path, os.ErrNotExist)
	}
	return full, nil
}

// Locate resolves path and checks that a regular file is stored there.
// A missing file wraps os.ErrNotExist.
func (s *Store) Locate(path string) (string, error) {
	full, err := s.Resolve(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(full)
	if err != nil {
		return "", fmt.Errorf("failed to stat upload %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("upload %q is not a regular file: %w", path, os.ErrNotExist)
	}
	return full, nil
}

// Remove deletes a stored file. A missing file is not an error.
func (s *Store) Remove(path string) error {
	full, err := s.Resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

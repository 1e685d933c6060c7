package middleware

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/upload"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngContent = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type part struct {
	field, filename string
	content         []byte
}

func multipartRequest(t *testing.T, parts ...part) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, p := range parts {
		if p.filename == "" {
			require.NoError(t, w.WriteField(p.field, string(p.content)))
			continue
		}
		fw, err := w.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func newUploadEcho(t *testing.T, handler echo.HandlerFunc) (*echo.Echo, string) {
	t.Helper()
	root := t.TempDir()
	um := &UploadMiddleware{store: upload.NewStore(root, 1<<20)}

	e := newTestEcho()
	e.POST("/upload", handler, um.Single(upload.FieldCV))
	return e, root
}

func storedFiles(t *testing.T, root string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(root, "cvs"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestUpload_StoresFile(t *testing.T) {
	e, root := newUploadEcho(t, func(c echo.Context) error {
		file, ok := GetUploadedFile(c)
		require.True(t, ok)
		return c.JSON(http.StatusCreated, file)
	})

	rec := serve(e, multipartRequest(t, part{"cv", "Mon CV.png", pngContent}))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var file upload.File
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &file))
	assert.True(t, strings.HasPrefix(file.Path, "cvs/anonymous_mon-cv_"), file.Path)
	assert.Equal(t, "image/png", file.MimeType)
	assert.Equal(t, "Mon CV.png", file.OriginalName)

	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(file.Path)))
	assert.NoError(t, err)
}

func TestUpload_RemovesFileWhenHandlerFails(t *testing.T) {
	e, root := newUploadEcho(t, func(c echo.Context) error {
		return errs.NewNotFoundError("Application not found", true, nil)
	})

	rec := serve(e, multipartRequest(t, part{"cv", "cv.png", pngContent}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, storedFiles(t, root))
}

func TestUpload_Rejections(t *testing.T) {
	never := func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	}

	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantCode   string
	}{
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{}`))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				return req
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   errs.CodeFileRequired,
		},
		{
			name: "no file",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, part{field: "note", content: []byte("hello")})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   errs.CodeFileRequired,
		},
		{
			name: "unexpected field",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, part{"resume", "cv.png", pngContent})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name: "two files",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, part{"cv", "a.png", pngContent}, part{"cv", "b.png", pngContent})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name: "disallowed extension",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, part{"cv", "cv.exe", pngContent})
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantCode:   errs.CodeUnsupportedFileType,
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				big := append(append([]byte{}, pngContent...), bytes.Repeat([]byte{0}, 2<<20)...)
				return multipartRequest(t, part{"cv", "big.png", big})
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   errs.CodeFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, root := newUploadEcho(t, never)

			rec := serve(e, tt.req(t))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			assert.Empty(t, storedFiles(t, root))
		})
	}
}

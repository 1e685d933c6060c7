package handler

import (
	"time"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/upload"
	"github.com/deppfellow/campus-portal/internal/middleware"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Payload is a pointer to a request struct that validates itself. Handle
// allocates a new T for every request.
type Payload[T any] interface {
	*T
	validation.Validatable
}

// Attachment is a file on disk sent as a download.
type Attachment struct {
	Path string
	Name string
}

// ResponseHandler writes a successful result.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {}

// NoContentResponseHandler writes an empty body.
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {}

// FileResponseHandler streams an *Attachment with Content-Disposition set.
type FileResponseHandler struct{}

func (h FileResponseHandler) Handle(c echo.Context, result interface{}) error {
	file := result.(*Attachment)
	return c.Attachment(file.Path, file.Name)
}

func (h FileResponseHandler) GetOperation() string {
	return "handler_file"
}

func (h FileResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if file, ok := result.(*Attachment); ok && txn != nil {
		txn.AddAttribute("file.name", file.Name)
	}
}

// handleRequest binds and validates req, runs handler and writes the result,
// with logging and New Relic attributes around each phase.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Debug().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle registers a typed JSON endpoint. The handler receives the bound
// and validated request and returns the response body:
//
//	g.POST("/register", Handle(h.Register, http.StatusCreated))
func Handle[T any, Req Payload[T], Res any](handler func(c echo.Context, req Req) (Res, error), status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleFile registers an endpoint that answers with a file download.
func HandleFile[T any, Req Payload[T]](handler func(c echo.Context, req Req) (*Attachment, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, FileResponseHandler{})
	}
}

// HandleNoContent registers a typed endpoint without a response body.
func HandleNoContent[T any, Req Payload[T]](handler func(c echo.Context, req Req) error, status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (interface{}, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}

// actor returns the authenticated caller. Routes using it sit behind
// RequireAuth, so a missing actor is a wiring mistake reported as 401.
func actor(c echo.Context) (model.Actor, error) {
	a, ok := middleware.GetActor(c)
	if !ok {
		return model.Actor{}, errs.NewUnauthorizedErrorWithCode("Authentication token required", errs.CodeMissingToken)
	}
	return a, nil
}

// uploadedFile returns the file stored by the upload middleware.
func uploadedFile(c echo.Context) (*upload.File, error) {
	f, ok := middleware.GetUploadedFile(c)
	if !ok {
		return nil, errs.NewBadRequestError("No file uploaded, please select a file", true, errs.Ptr(errs.CodeFileRequired), nil, nil)
	}
	return f, nil
}

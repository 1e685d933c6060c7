// Package router builds the echo instance: the global middleware chain and
// every route with its own ordered chain of interceptors.
package router

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/campus-portal/internal/handler"
	"github.com/deppfellow/campus-portal/internal/lib/ratelimit"
	"github.com/deppfellow/campus-portal/internal/lib/upload"
	"github.com/deppfellow/campus-portal/internal/middleware"
	"github.com/deppfellow/campus-portal/internal/server"
	"github.com/labstack/echo/v4"
)

// userRequestsPerWindow bounds the admin user management API per account.
const userRequestsPerWindow = 50

func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	middlewares := middleware.NewMiddlewares(s)

	ipExtractor, err := middlewares.Global.IPExtractor()
	if err != nil {
		return nil, fmt.Errorf("failed to configure client ip extraction: %w", err)
	}

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.IPExtractor = ipExtractor
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.Metrics(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.Global.BodyLimit(),
	)

	api := router.Group("/api", middlewares.RateLimit.Limit(ratelimit.API))

	registerSystemRoutes(api, h)
	registerAuthRoutes(api, h, middlewares)
	registerUserRoutes(api, h, middlewares)
	registerContactRoutes(api, h, middlewares)
	registerJobOfferRoutes(api, h, middlewares)
	registerApplicationRoutes(api, h, middlewares)
	registerDocumentRoutes(api, h, middlewares)
	registerPaymentRoutes(api, h, middlewares)
	registerEventRoutes(api, h, middlewares)

	return router, nil
}

func registerAuthRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	auth := api.Group("/auth")
	limit := m.RateLimit.Limit(ratelimit.Auth)

	auth.POST("/register", handler.Handle(h.Auth.Register, http.StatusCreated), limit)
	auth.POST("/login", handler.Handle(h.Auth.Login, http.StatusOK), limit)
	auth.GET("/profile", handler.Handle(h.Auth.Profile, http.StatusOK), m.Auth.RequireAuth)
	auth.PUT("/profile", handler.Handle(h.Auth.UpdateProfile, http.StatusOK), m.Auth.RequireAuth)
}

func registerUserRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	users := api.Group("/users",
		m.Auth.RequireAuth,
		m.Auth.RequireAdmin,
		m.RateLimit.LimitPerUser(ratelimit.User(userRequestsPerWindow)),
	)

	users.GET("", handler.Handle(h.User.List, http.StatusOK))
	users.GET("/stats", handler.Handle(h.User.Stats, http.StatusOK))
	users.GET("/:id", handler.Handle(h.User.Get, http.StatusOK))
	users.PUT("/:id", handler.Handle(h.User.Update, http.StatusOK))
	users.DELETE("/:id", handler.Handle(h.User.Delete, http.StatusOK))
}

func registerContactRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	contact := api.Group("/contact")

	contact.POST("", handler.Handle(h.Contact.Send, http.StatusCreated), m.RateLimit.Limit(ratelimit.Contact))

	messages := contact.Group("/messages", m.Auth.RequireAuth, m.Auth.RequireAdmin)
	messages.GET("", handler.Handle(h.Contact.List, http.StatusOK))
	messages.GET("/stats", handler.Handle(h.Contact.Stats, http.StatusOK))
	messages.GET("/:id", handler.Handle(h.Contact.Get, http.StatusOK))
	messages.PUT("/:id/status", handler.Handle(h.Contact.UpdateStatus, http.StatusOK))
	messages.DELETE("/:id", handler.Handle(h.Contact.Delete, http.StatusOK))
}

func registerJobOfferRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	jobs := api.Group("/jobs")
	admin := []echo.MiddlewareFunc{m.Auth.RequireAuth, m.Auth.RequireAdmin}

	jobs.GET("", handler.Handle(h.JobOffer.List, http.StatusOK))
	jobs.GET("/search", handler.Handle(h.JobOffer.Search, http.StatusOK))
	jobs.GET("/stats/overview", handler.Handle(h.JobOffer.Stats, http.StatusOK), admin...)
	jobs.GET("/:id", handler.Handle(h.JobOffer.Get, http.StatusOK))
	jobs.POST("", handler.Handle(h.JobOffer.Submit, http.StatusCreated), m.RateLimit.Limit(ratelimit.Create))
	jobs.PUT("/:id/status", handler.Handle(h.JobOffer.UpdateStatus, http.StatusOK), admin...)
	jobs.DELETE("/:id", handler.Handle(h.JobOffer.Delete, http.StatusOK), admin...)
	jobs.POST("/:id/upload", handler.Handle(h.JobOffer.Upload, http.StatusOK),
		append(admin, m.Upload.Single(upload.FieldJobOffer))...)
}

func registerApplicationRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	applications := api.Group("/applications", m.Auth.RequireAuth)
	admin := m.Auth.RequireAdmin

	applications.POST("", handler.Handle(h.Application.Create, http.StatusCreated), m.RateLimit.Limit(ratelimit.Create))
	applications.POST("/upload-cv", handler.Handle(h.Application.UploadCV, http.StatusOK), m.Upload.Single(upload.FieldCV))

	applications.GET("/my", handler.Handle(h.Application.Mine, http.StatusOK))
	applications.GET("/my/:id", handler.Handle(h.Application.GetMine, http.StatusOK))
	applications.PUT("/my/:id", handler.Handle(h.Application.UpdateMine, http.StatusOK))
	applications.DELETE("/my/:id", handler.Handle(h.Application.DeleteMine, http.StatusOK))

	applications.GET("/all", handler.Handle(h.Application.List, http.StatusOK), admin)
	applications.PUT("/:id/status", handler.Handle(h.Application.UpdateStatus, http.StatusOK), admin)
	applications.GET("/stats/overview", handler.Handle(h.Application.Stats, http.StatusOK), admin)
}

func registerDocumentRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	documents := api.Group("/documents", m.Auth.RequireAuth)
	admin := m.Auth.RequireAdmin

	documents.POST("/request", handler.Handle(h.Document.Request, http.StatusCreated), m.RateLimit.Limit(ratelimit.Create))

	documents.GET("/my", handler.Handle(h.Document.Mine, http.StatusOK))
	documents.GET("/my/:id", handler.Handle(h.Document.GetMine, http.StatusOK))
	documents.DELETE("/my/:id", handler.Handle(h.Document.DeleteMine, http.StatusOK))
	documents.GET("/:id/download", handler.HandleFile(h.Document.Download))

	documents.GET("/all", handler.Handle(h.Document.List, http.StatusOK), admin)
	documents.PUT("/:id/status", handler.Handle(h.Document.UpdateStatus, http.StatusOK), admin)
	documents.GET("/stats/overview", handler.Handle(h.Document.Stats, http.StatusOK), admin)
	documents.POST("/:id/upload", handler.Handle(h.Document.Upload, http.StatusOK), admin, m.Upload.Single(upload.FieldDocument))
}

func registerPaymentRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	payments := api.Group("/payments", m.Auth.RequireAuth)
	admin := m.Auth.RequireAdmin

	payments.POST("", handler.Handle(h.Payment.Create, http.StatusCreated), m.RateLimit.Limit(ratelimit.Create))
	payments.GET("/fees", handler.Handle(h.Payment.Fees, http.StatusOK))

	payments.GET("/my", handler.Handle(h.Payment.Mine, http.StatusOK))
	payments.GET("/my/:id", handler.Handle(h.Payment.GetMine, http.StatusOK))
	payments.GET("/my/:id/receipt", handler.Handle(h.Payment.Receipt, http.StatusOK))
	payments.GET("/transaction/:transactionId", handler.Handle(h.Payment.ByTransaction, http.StatusOK))

	payments.GET("/all", handler.Handle(h.Payment.List, http.StatusOK), admin)
	payments.PUT("/:id/status", handler.Handle(h.Payment.UpdateStatus, http.StatusOK), admin)
	payments.GET("/stats/overview", handler.Handle(h.Payment.Stats, http.StatusOK), admin)
	payments.GET("/stats/monthly/:year/:month", handler.Handle(h.Payment.Monthly, http.StatusOK), admin)
}

func registerEventRoutes(api *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	events := api.Group("/events")
	admin := []echo.MiddlewareFunc{m.Auth.RequireAuth, m.Auth.RequireAdmin}

	events.GET("", handler.Handle(h.Event.List, http.StatusOK))
	events.GET("/upcoming", handler.Handle(h.Event.Upcoming, http.StatusOK))
	events.GET("/past", handler.Handle(h.Event.Past, http.StatusOK))
	events.GET("/search", handler.Handle(h.Event.Search, http.StatusOK))
	events.GET("/date-range", handler.Handle(h.Event.DateRange, http.StatusOK))
	events.GET("/stats/overview", handler.Handle(h.Event.Stats, http.StatusOK), admin...)
	events.GET("/:id", handler.Handle(h.Event.Get, http.StatusOK))

	events.POST("", handler.Handle(h.Event.Create, http.StatusCreated), admin...)
	events.PUT("/:id", handler.Handle(h.Event.Update, http.StatusOK), admin...)
	events.DELETE("/:id", handler.Handle(h.Event.Delete, http.StatusOK), admin...)
}

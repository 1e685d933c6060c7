package middleware

import (
	"github.com/deppfellow/campus-portal/internal/server"
)

// Middlewares is built once and shared by the router.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
	Upload          *UploadMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
		Upload:          NewUploadMiddleware(s),
	}
}

package middleware

import (
	"strconv"

	"github.com/deppfellow/campus-portal/internal/logger"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Keys of the values stored in the echo context.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	ActorKey     = "actor"
	LoggerKey    = "logger"
)

// ContextEnhancer builds the request-scoped logger.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext stores a logger carrying request_id, method, path, ip and
// the New Relic trace ids in both the echo context and the request context.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			setLogger(c, contextLogger)
			return next(c)
		}
	}
}

func setLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

// setActor records the authenticated caller and adds it to the request
// logger and the New Relic transaction.
func setActor(c echo.Context, actor model.Actor) {
	id := strconv.FormatInt(actor.UserID, 10)

	c.Set(ActorKey, actor)
	c.Set(UserIDKey, id)
	c.Set(UserEmailKey, actor.Email)
	c.Set(UserRoleKey, string(actor.Role))

	setLogger(c, GetLogger(c).With().
		Str("user_id", id).
		Str("user_role", string(actor.Role)).
		Logger())

	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute("user.id", id)
		txn.AddAttribute("user.role", string(actor.Role))
	}
}

// GetActor returns the caller authenticated by RequireAuth.
func GetActor(c echo.Context) (model.Actor, bool) {
	actor, ok := c.Get(ActorKey).(model.Actor)
	return actor, ok
}

func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

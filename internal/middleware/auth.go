package middleware

import (
	"slices"

	"github.com/deppfellow/campus-portal/internal/errs"
	"github.com/deppfellow/campus-portal/internal/lib/token"
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/server"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware verifies bearer tokens and enforces roles.
type AuthMiddleware struct {
	tokens *token.Manager
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{tokens: s.Tokens}
}

// RequireAuth rejects requests without a bearer token (401) or with an
// invalid or expired one (403). On success the caller is available through
// GetActor.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := token.TokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return errs.NewUnauthorizedErrorWithCode("Authentication token required", errs.CodeMissingToken)
		}

		claims, err := auth.tokens.Validate(raw)
		if err != nil {
			logger := GetLogger(c)
			logger.Warn().Err(err).Str("function", "RequireAuth").Msg("rejected token")
			return errs.NewForbiddenErrorWithCode("Invalid or expired token", errs.CodeInvalidToken)
		}

		setActor(c, claims.Actor())
		return next(c)
	}
}

// RequireRole only lets callers holding one of roles through. It must run
// after RequireAuth.
func (auth *AuthMiddleware) RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := GetActor(c)
			if !ok {
				return errs.NewUnauthorizedErrorWithCode("Authentication token required", errs.CodeMissingToken)
			}
			if !slices.Contains(roles, actor.Role) {
				return errs.NewForbiddenErrorWithCode("Access denied, insufficient permissions", errs.CodeInsufficientRole)
			}
			return next(c)
		}
	}
}

func (auth *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return auth.RequireRole(model.RoleAdmin)(next)
}

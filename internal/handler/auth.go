package handler

import (
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/user"
	"github.com/deppfellow/campus-portal/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c echo.Context, p *user.RegisterPayload) (*user.AuthResponse, error) {
	return h.auth.Register(c.Request().Context(), p)
}

func (h *AuthHandler) Login(c echo.Context, p *user.LoginPayload) (*user.AuthResponse, error) {
	return h.auth.Login(c.Request().Context(), p)
}

func (h *AuthHandler) Profile(c echo.Context, _ *model.NoPayload) (*user.User, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.auth.Profile(c.Request().Context(), a)
}

func (h *AuthHandler) UpdateProfile(c echo.Context, p *user.UpdateProfilePayload) (*user.User, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	return h.auth.UpdateProfile(c.Request().Context(), a, p)
}

package handler

import (
	"github.com/deppfellow/campus-portal/internal/model"
	"github.com/deppfellow/campus-portal/internal/model/user"
	"github.com/deppfellow/campus-portal/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler is the admin account management API.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c echo.Context, q *user.ListUsersQuery) (*user.ListResponse, error) {
	return h.users.List(c.Request().Context(), q)
}

func (h *UserHandler) Stats(c echo.Context, _ *model.NoPayload) (*user.Stats, error) {
	return h.users.Stats(c.Request().Context())
}

func (h *UserHandler) Get(c echo.Context, p *user.GetUserParams) (*user.User, error) {
	return h.users.Get(c.Request().Context(), p.ID)
}

func (h *UserHandler) Update(c echo.Context, p *user.UpdateUserPayload) (*user.User, error) {
	return h.users.Update(c.Request().Context(), p)
}

func (h *UserHandler) Delete(c echo.Context, p *user.GetUserParams) (*model.MessageResponse, error) {
	a, err := actor(c)
	if err != nil {
		return nil, err
	}
	if err := h.users.Delete(c.Request().Context(), a, p.ID); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "User deleted", ID: p.ID}, nil
}

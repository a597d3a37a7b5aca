package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dog-ears/memberhub/internal/logging"
	"github.com/dog-ears/memberhub/internal/service"
)

// UsersHTTP serves the admin user-management API. Every route is
// registered behind RequireRole("ADMIN"); the handlers assume the session
// has already been checked.
type UsersHTTP struct {
	Users *service.UserService
}

func (h *UsersHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_list")

	users, err := h.Users.List(ctx)
	if err != nil {
		return internalError(l, "users_list_failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users": users,
	})
}

func (h *UsersHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_create")

	var req struct {
		Email string  `json:"email"`
		Name  *string `json:"name"`
		Role  string  `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Users.Create(ctx, req.Email, req.Name, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "email and role are required")
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "email already in use")
		}
		return internalError(l, "users_create_failed", err)
	}

	l.Info("user_created", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"user": user,
	})
}

func (h *UsersHTTP) Patch(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_patch")

	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isActive is required")
	}

	if err := h.Users.SetActive(ctx, c.Param("id"), *req.IsActive); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return internalError(l, "users_patch_failed", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "user updated",
	})
}

func (h *UsersHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_delete")

	if err := h.Users.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return internalError(l, "users_delete_failed", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "user deleted",
	})
}

// internalError logs the real cause and returns a generic 500 so internals
// never leak to clients.
func internalError(l *slog.Logger, msg string, err error) error {
	l.Error(msg, "status", 500, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

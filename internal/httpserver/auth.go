package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dog-ears/memberhub/internal/logging"
	"github.com/dog-ears/memberhub/internal/middleware"
	"github.com/dog-ears/memberhub/internal/service"
)

type AuthHTTP struct {
	Auth  *service.AuthService
	Reset *service.ResetService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return internalError(l, "login_failed", err)
	}

	c.SetCookie(middleware.CreateCookie(middleware.SessionCookie, res.Token, "/", res.Expires))
	l.Info("login_successful")

	return c.JSON(http.StatusOK, echo.Map{
		"token": res.Token,
		"user":  res.User,
	})
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	c.SetCookie(middleware.DeleteCookie(middleware.SessionCookie, "/"))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out",
	})
}

// Session echoes the claims of the presented session token back to the
// caller, the way the original framework's session endpoint does.
func (h *AuthHTTP) Session(c echo.Context) error {
	claims := middleware.SessionFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusForbidden, "missing session")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":    claims.Subject,
		"email": claims.Email,
		"name":  claims.Name,
		"role":  claims.Role,
	})
}

func (h *AuthHTTP) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_forgot_password")

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Reset.RequestReset(ctx, req.Email); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "email is required")
		}
		return internalError(l, "reset_request_failed", err)
	}

	// Same response whether or not the email matched a user.
	return c.JSON(http.StatusOK, echo.Map{
		"message": "password reset link sent",
	})
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_reset_password")

	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Reset.CompleteReset(ctx, req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, "token and a password of at least 8 characters are required")
		case errors.Is(err, service.ErrInvalidToken):
			return echo.NewHTTPError(http.StatusBadRequest, "invalid or expired token")
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return internalError(l, "reset_complete_failed", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "password has been reset",
	})
}

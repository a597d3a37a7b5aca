package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dog-ears/memberhub/internal/middleware"
	"github.com/dog-ears/memberhub/internal/models"
)

type Deps struct {
	AuthHandler   *AuthHTTP
	UsersHandler  *UsersHTTP
	SessionSecret []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	sessionAuth := middleware.NewSessionAuth(d.SessionSecret)

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.LogOut)
	auth.GET("/session", d.AuthHandler.Session, sessionAuth.RequireAuth)
	auth.POST("/forgot-password", d.AuthHandler.ForgotPassword)
	auth.POST("/reset-password", d.AuthHandler.ResetPassword)

	member := api.Group("/member", sessionAuth.RequireRole(models.RoleAdmin))
	member.GET("/users", d.UsersHandler.List)
	member.POST("/users", d.UsersHandler.Create)
	member.PATCH("/users/:id", d.UsersHandler.Patch)
	member.DELETE("/users/:id", d.UsersHandler.Delete)
}

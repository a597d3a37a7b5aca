package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dog-ears/memberhub/internal/tokens"
)

const SessionCookie = "sessionToken"

// SessionAuth gates routes on the stateless session token. Authorization
// decisions trust the token contents for its whole lifetime; no database
// round-trip re-checks role or isActive per request.
type SessionAuth struct {
	Secret []byte
}

func NewSessionAuth(secret []byte) *SessionAuth {
	return &SessionAuth{Secret: secret}
}

type ValidatorFunc func(claims *tokens.SessionClaims) error

func (m *SessionAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

// RequireRole maps a route group to the role allowed to use it. Handlers
// behind it never re-check roles inline.
func (m *SessionAuth) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.requireAuthWithValidator(next, func(claims *tokens.SessionClaims) error {
			if claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient rights")
			}
			return nil
		})
	}
}

func (m *SessionAuth) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := sessionFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusForbidden, "missing session")
		}

		claims, err := tokens.SessionClaimsFromToken(raw, m.Secret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusForbidden, "invalid or expired session")
		}

		if validator != nil {
			if validationErr := validator(claims); validationErr != nil {
				return validationErr
			}
		}

		setSessionContext(c, claims)
		return next(c)
	}
}

// sessionFromRequest prefers the session cookie and falls back to an
// Authorization bearer header for non-browser clients.
func sessionFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func setSessionContext(c echo.Context, claims *tokens.SessionClaims) {
	c.Set("session", claims)
	c.Set("user_id", claims.Subject)
	c.Set("role", claims.Role)
}

// SessionFromContext returns the claims stored by RequireAuth/RequireRole.
func SessionFromContext(c echo.Context) *tokens.SessionClaims {
	if claims, ok := c.Get("session").(*tokens.SessionClaims); ok {
		return claims
	}
	return nil
}

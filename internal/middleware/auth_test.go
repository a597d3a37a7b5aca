package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dog-ears/memberhub/internal/tokens"
)

var testSecret = []byte("test-session-secret")

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func newSessionToken(t *testing.T, role string, secret []byte) string {
	t.Helper()
	token, err := tokens.SignSession(uuid.NewString(), role, "user@example.com", nil, secret, time.Now())
	require.NoError(t, err)
	return token
}

func TestRequireAuth_MissingSession(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewSessionAuth(testSecret).RequireAuth(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewSessionAuth(testSecret).RequireAuth(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireAuth_ValidCookie(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: newSessionToken(t, "USER", testSecret)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewSessionAuth(testSecret).RequireAuth(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	claims := SessionFromContext(c)
	require.NotNil(t, claims)
	assert.Equal(t, "USER", claims.Role)
}

func TestRequireAuth_BearerFallback(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+newSessionToken(t, "USER", testSecret))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewSessionAuth(testSecret).RequireAuth(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_NonAdminRejected(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: newSessionToken(t, "USER", testSecret)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewSessionAuth(testSecret).RequireRole("ADMIN")(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestRequireRole_AdminPasses(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: newSessionToken(t, "ADMIN", testSecret)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewSessionAuth(testSecret).RequireRole("ADMIN")(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: newSessionToken(t, "ADMIN", []byte("other-secret"))})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewSessionAuth(testSecret).RequireAuth(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError")
	assert.Equal(t, http.StatusForbidden, he.Code)
}

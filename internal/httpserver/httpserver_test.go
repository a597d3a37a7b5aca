package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dog-ears/memberhub/internal/hash"
	"github.com/dog-ears/memberhub/internal/middleware"
	"github.com/dog-ears/memberhub/internal/models"
	"github.com/dog-ears/memberhub/internal/repo"
	"github.com/dog-ears/memberhub/internal/service"
)

var testSecret = []byte("test-session-secret")

type testEnv struct {
	e      *echo.Echo
	repo   *repo.GormRepo
	mailer *fakeMailer
}

type fakeMailer struct {
	sent []string // recipients
	body string   // last body
}

func (m *fakeMailer) IsEnabled() bool { return true }

func (m *fakeMailer) SendTo(subject, body, recipient string) error {
	m.sent = append(m.sent, recipient)
	m.body = body
	return nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.VerificationToken{},
		&models.Session{},
		&models.Account{},
	))

	gormRepo := &repo.GormRepo{DB: db}
	mailer := &fakeMailer{}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{
			Auth:  &service.AuthService{Repo: gormRepo, SessionSecret: testSecret},
			Reset: &service.ResetService{Repo: gormRepo, Mailer: mailer, BaseURL: "http://localhost:8080"},
		},
		UsersHandler: &UsersHTTP{
			Users: &service.UserService{Repo: gormRepo, Mailer: mailer, BaseURL: "http://localhost:8080"},
		},
		SessionSecret: testSecret,
	})

	return &testEnv{e: e, repo: gormRepo, mailer: mailer}
}

func (env *testEnv) seedUser(t *testing.T, email, password, role string, active bool) *models.User {
	t.Helper()

	user := models.User{Email: email, Role: role, IsActive: active}
	if password != "" {
		h, err := hash.HashPassword(password)
		require.NoError(t, err)
		user.PasswordHash = &h
	}
	require.NoError(t, env.repo.CreateUser(context.Background(), &user))
	return &user
}

// do runs a request through the full router, optionally with a session
// cookie, and returns the recorder plus the decoded JSON body.
func (env *testEnv) do(t *testing.T, method, target, sessionToken string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if sessionToken != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: sessionToken})
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	var decoded map[string]any
	if len(rec.Body.Bytes()) > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

// login drives the real login endpoint and returns the session token.
func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	rec, body := env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, ok := body["token"].(string)
	require.True(t, ok, "expected 'token' in login response")
	require.NotEmpty(t, token)
	return token
}

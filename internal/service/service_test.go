package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dog-ears/memberhub/internal/hash"
	"github.com/dog-ears/memberhub/internal/models"
	"github.com/dog-ears/memberhub/internal/repo"
)

func initTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to connect to in-memory db")

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.VerificationToken{},
		&models.Session{},
		&models.Account{},
	))

	return &repo.GormRepo{DB: db}
}

type sentMail struct {
	Subject   string
	Body      string
	Recipient string
}

// fakeMailer records sends; with fail set every send errors, which must
// never fail the surrounding operation.
type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (m *fakeMailer) IsEnabled() bool { return true }

func (m *fakeMailer) SendTo(subject, body, recipient string) error {
	if m.fail {
		return errors.New("smtp send failed")
	}
	m.sent = append(m.sent, sentMail{Subject: subject, Body: body, Recipient: recipient})
	return nil
}

func seedUser(t *testing.T, r *repo.GormRepo, email, password, role string, active bool) *models.User {
	t.Helper()

	user := models.User{Email: email, Role: role, IsActive: active}
	if password != "" {
		h, err := hash.HashPassword(password)
		require.NoError(t, err)
		user.PasswordHash = &h
	}
	require.NoError(t, r.CreateUser(context.Background(), &user))
	return &user
}

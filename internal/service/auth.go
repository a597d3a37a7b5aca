package service

import (
	"context"
	"errors"
	"time"

	"github.com/dog-ears/memberhub/internal/events"
	"github.com/dog-ears/memberhub/internal/hash"
	"github.com/dog-ears/memberhub/internal/logging"
	"github.com/dog-ears/memberhub/internal/models"
	"github.com/dog-ears/memberhub/internal/repo"
	"github.com/dog-ears/memberhub/internal/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	SessionSecret []byte
	Producer      *events.Producer
}

type LoginResult struct {
	Token   string
	Expires time.Time
	User    *models.User
}

// Login validates the submitted credentials and mints a session token
// carrying id, role, email and name. Every rejection surfaces as
// ErrInvalidCredentials so responses cannot be used to probe accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "db error", "error", err)
		return nil, err
	}

	// A user with no password set cannot authenticate via credentials.
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if !hash.CheckPassword(*user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	token, err := tokens.SignSession(user.ID, user.Role, user.Email, user.Name, s.SessionSecret, now)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign session token", "error", err)
		return nil, err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return &LoginResult{
		Token:   token,
		Expires: now.Add(tokens.SessionTTL),
		User:    user,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dog-ears/memberhub/internal/events"
	"github.com/dog-ears/memberhub/internal/hash"
	"github.com/dog-ears/memberhub/internal/logging"
	"github.com/dog-ears/memberhub/internal/mail"
	"github.com/dog-ears/memberhub/internal/repo"
	"github.com/dog-ears/memberhub/internal/validate"
)

const (
	resetTokenTTL  = 24 * time.Hour
	inviteTokenTTL = 7 * 24 * time.Hour
)

type ResetService struct {
	Repo     *repo.GormRepo
	Mailer   mail.Mailer
	BaseURL  string
	Producer *events.Producer
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func resetURL(baseURL, token string) string {
	return fmt.Sprintf("%s/auth/reset-password?token=%s", baseURL, token)
}

// RequestReset issues a fresh 24-hour reset token and emails the reset
// link. Whether or not the email belongs to a user, the caller gets the
// same nil result, so the endpoint cannot be used to enumerate accounts.
// Mail failure does not roll back the token and does not change the
// outcome.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "reset.request")

	if email == "" {
		return ErrValidation
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		l.Error("reset_request_failed", "reason", "db error", "error", err)
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(resetTokenTTL)

	if err := s.Repo.ReplaceVerificationToken(ctx, user.Email, token, expires); err != nil {
		l.Error("reset_request_failed", "reason", "cannot store token", "error", err)
		return err
	}

	subject, body := mail.ResetEmail(resetURL(s.BaseURL, token))
	if err := s.Mailer.SendTo(subject, body, user.Email); err != nil {
		l.Error("reset mail send error", "error", err)
	}

	return nil
}

// CompleteReset validates token freshness and the new password, updates the
// password hash and consumes the token.
func (s *ResetService) CompleteReset(ctx context.Context, token, password string) error {
	l := logging.FromContext(ctx).With("svc", "reset.complete")

	if token == "" || password == "" {
		return ErrValidation
	}
	if !validate.Password(password) {
		return ErrValidation
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := s.Repo.ResetPassword(ctx, token, passwordHash, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrTokenInvalid):
			return ErrInvalidToken
		case errors.Is(err, repo.ErrNotFound):
			return ErrNotFound
		}
		l.Error("reset_complete_failed", "reason", "db error", "error", err)
		return err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":    "password_reset",
		"user_id": user.ID,
		"email":   user.Email,
	})

	return nil
}

func (s *ResetService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

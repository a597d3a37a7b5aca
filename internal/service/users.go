package service

import (
	"context"
	"errors"
	"time"

	"github.com/dog-ears/memberhub/internal/events"
	"github.com/dog-ears/memberhub/internal/logging"
	"github.com/dog-ears/memberhub/internal/mail"
	"github.com/dog-ears/memberhub/internal/models"
	"github.com/dog-ears/memberhub/internal/repo"
	"github.com/dog-ears/memberhub/internal/validate"
)

// UserService implements the admin user-management operations. Role
// enforcement happens in middleware before any of these run.
type UserService struct {
	Repo     *repo.GormRepo
	Mailer   mail.Mailer
	BaseURL  string
	Producer *events.Producer
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

// Create adds a user with no password set, then issues a 7-day invite token
// and emails the set-password link. The account cannot log in until the
// invite flow completes. Mail failure leaves the created user in place.
func (s *UserService) Create(ctx context.Context, email string, name *string, role string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.create")

	if email == "" || role == "" {
		return nil, ErrValidation
	}
	if !validate.Email(email) {
		return nil, ErrValidation
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrValidation
	}

	user := models.User{
		Email:    email,
		Name:     name,
		Role:     role,
		IsActive: true,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		l.Error("user_create_failed", "reason", "db error", "error", err)
		return nil, err
	}

	if err := s.sendInvite(ctx, &user); err != nil {
		l.Error("invite mail send error", "error", err)
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":    "user_created",
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})

	return &user, nil
}

func (s *UserService) sendInvite(ctx context.Context, user *models.User) error {
	token, err := newResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().UTC().Add(inviteTokenTTL)

	if err := s.Repo.ReplaceVerificationToken(ctx, user.Email, token, expires); err != nil {
		return err
	}

	subject, body := mail.InviteEmail(user.Name, user.Email, resetURL(s.BaseURL, token))
	return s.Mailer.SendTo(subject, body, user.Email)
}

func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.Repo.SetUserActive(ctx, id, active); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.publish(ctx, id, map[string]any{
		"type":    "user_deleted",
		"user_id": id,
	})

	return nil
}

func (s *UserService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

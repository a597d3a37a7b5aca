package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dog-ears/memberhub/internal/models"
)

// ReplaceVerificationToken drops any previously issued tokens for the
// identifier and stores a new one, so at most the most recent token per
// email stays valid.
func (r *GormRepo) ReplaceVerificationToken(ctx context.Context, identifier, token string, expires time.Time) error {
	db := r.DB.WithContext(ctx)
	if err := db.Where("identifier = ?", identifier).Delete(&models.VerificationToken{}).Error; err != nil {
		return err
	}
	return db.Create(&models.VerificationToken{
		Identifier: identifier,
		Token:      token,
		Expires:    expires,
	}).Error
}

func (r *GormRepo) FindVerificationToken(ctx context.Context, token string) (*models.VerificationToken, error) {
	var vt models.VerificationToken
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&vt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vt, nil
}

// ResetPassword consumes the verification token and stores the new password
// hash in one transaction: token lookup, expiry check, user update and
// token delete either all commit or none do, so a token cannot be spent
// twice by concurrent completion requests.
func (r *GormRepo) ResetPassword(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vt models.VerificationToken
		if err := tx.Where("token = ?", token).First(&vt).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenInvalid
			}
			return err
		}
		if vt.Expires.Before(now) {
			return ErrTokenInvalid
		}

		if err := tx.Where("email = ?", vt.Identifier).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Model(&user).Update("password_hash", passwordHash).Error; err != nil {
			return err
		}

		return tx.Delete(&vt).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SessionsForUser and TokensForEmail exist for the cascade contract;
// nothing in the request path reads them.
func (r *GormRepo) SessionsForUser(ctx context.Context, userID string) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *GormRepo) TokensForEmail(ctx context.Context, email string) ([]models.VerificationToken, error) {
	var tokens []models.VerificationToken
	if err := r.DB.WithContext(ctx).Where("identifier = ?", email).Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

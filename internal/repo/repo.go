package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// GormRepo owns every persisted record. No other component touches the
// database directly.
type GormRepo struct {
	DB *gorm.DB
}

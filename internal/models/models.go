package models

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           string    `gorm:"primaryKey"               json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	Name         *string   `json:"name"`
	PasswordHash *string   `json:"-"`
	Role         string    `gorm:"not null;default:USER"    json:"role"`
	IsActive     bool      `gorm:"not null"                 json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VerificationToken authorizes a single password set/reset. Identifier is
// the target email; only the most recently issued token per identifier is
// meant to be valid.
type VerificationToken struct {
	ID         uint      `gorm:"primaryKey"        json:"id"`
	Identifier string    `gorm:"index;not null"    json:"identifier"`
	Token      string    `gorm:"uniqueIndex;not null" json:"-"`
	Expires    time.Time `gorm:"not null"          json:"expires"`
}

// Session and Account exist for schema compatibility with adapter-managed
// sign-in. The JWT session strategy never writes them, but user deletion
// still cascades over their rows.
type Session struct {
	ID           uint      `gorm:"primaryKey"           json:"id"`
	SessionToken string    `gorm:"uniqueIndex;not null" json:"-"`
	UserID       string    `gorm:"index;not null"       json:"user_id"`
	Expires      time.Time `gorm:"not null"             json:"expires"`

	User User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
}

type Account struct {
	ID                uint   `gorm:"primaryKey"     json:"id"`
	UserID            string `gorm:"index;not null" json:"user_id"`
	Provider          string `gorm:"not null"       json:"provider"`
	ProviderAccountID string `gorm:"not null"       json:"provider_account_id"`

	User User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
}

// Command seed bootstraps the first admin account. It does nothing when an
// ADMIN user already exists, so it is safe to run on every deploy.
package main

import (
	"context"
	"log"
	"time"

	"github.com/dog-ears/memberhub/internal/config"
	"github.com/dog-ears/memberhub/internal/db"
	"github.com/dog-ears/memberhub/internal/hash"
	"github.com/dog-ears/memberhub/internal/models"
	"github.com/dog-ears/memberhub/internal/repo"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: database}

	exists, err := gormRepo.AdminExists(ctx)
	if err != nil {
		log.Fatalf("admin lookup error: %v", err)
	}
	if exists {
		log.Println("an admin account already exists, nothing to do")
		return
	}

	passwordHash, err := hash.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("hash error: %v", err)
	}

	name := "Administrator"
	admin := models.User{
		Email:        cfg.AdminEmail,
		Name:         &name,
		PasswordHash: &passwordHash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := gormRepo.CreateUser(ctx, &admin); err != nil {
		log.Fatalf("admin create error: %v", err)
	}

	log.Printf("admin account created: %s (role %s)", admin.Email, admin.Role)
}

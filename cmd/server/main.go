package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dog-ears/memberhub/internal/config"
	"github.com/dog-ears/memberhub/internal/db"
	"github.com/dog-ears/memberhub/internal/events"
	"github.com/dog-ears/memberhub/internal/httpserver"
	"github.com/dog-ears/memberhub/internal/logging"
	"github.com/dog-ears/memberhub/internal/mail"
	"github.com/dog-ears/memberhub/internal/middleware"
	"github.com/dog-ears/memberhub/internal/repo"
	"github.com/dog-ears/memberhub/internal/service"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.SessionSecret, "SESSION_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	mailer, err := mail.NewClient(cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPass, cfg.MailAddress, cfg.MailName)
	if err != nil {
		log.Fatalf("mail init error: %v", err)
	}
	if !mailer.IsEnabled() {
		logger.Warn("mail disabled, reset and invite emails will not be sent")
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	gormRepo := &repo.GormRepo{DB: database}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Auth: &service.AuthService{
				Repo:          gormRepo,
				SessionSecret: cfg.SessionSecret,
				Producer:      producer,
			},
			Reset: &service.ResetService{
				Repo:     gormRepo,
				Mailer:   mailer,
				BaseURL:  cfg.BaseURL,
				Producer: producer,
			},
		},
		UsersHandler: &httpserver.UsersHTTP{
			Users: &service.UserService{
				Repo:     gormRepo,
				Mailer:   mailer,
				BaseURL:  cfg.BaseURL,
				Producer: producer,
			},
		},
		SessionSecret: cfg.SessionSecret,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}

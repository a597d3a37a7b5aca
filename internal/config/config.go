package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	BaseURL    string
	LogLevel   string

	DatabaseURL string

	SessionSecret []byte

	SMTPHost    string
	SMTPUser    string
	SMTPPass    string
	MailAddress string
	MailName    string

	KafkaBrokers []string

	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	return &Config{
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		BaseURL:    EnvDefault("BASE_URL", "http://localhost:8080"),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),

		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASS"),
		MailAddress: EnvDefault("MAIL_ADDRESS", "noreply@localhost"),
		MailName:    EnvDefault("MAIL_NAME", "memberhub"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		AdminEmail:    EnvDefault("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", "admin123456"),
	}
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is everything the process reads from its environment, loaded once at
// startup and passed down explicitly.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   string

	EventChannel string

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string
}

// Load reads .env when present, then the environment. DATABASE_URL is the
// only hard requirement.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using environment variables directly")
	}

	cfg := &Config{
		Port:         getenv("PORT", "8000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:    getenv("JWT_SECRET", ""),
		EventChannel: getenv("EVENT_CHANNEL", "booking-events"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		EmailUser:    os.Getenv("EMAIL_USER"),
		EmailPass:    os.Getenv("EMAIL_PASS"),
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			log.Printf("Warning: invalid SMTP_PORT %q, mail disabled", port)
		} else {
			cfg.SMTPPort = p
		}
	}
	return cfg, nil
}

// MailConfigured reports whether the SMTP relay settings are complete.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPPort != 0 && c.EmailUser != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	LogFile     string `env:"LOG_FILE" envDefault:"./logs/formgate.log"`

	// CORS Configuration
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"*"`

	// Redis Configuration
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Storage Configuration
	SubmissionPrefix    string        `env:"SUBMISSION_PREFIX" envDefault:"contact-form-submissions"`
	SubmissionRetention time.Duration `env:"SUBMISSION_RETENTION" envDefault:"0"`
	PurgeInterval       time.Duration `env:"PURGE_INTERVAL" envDefault:"6h"`

	// Rate Limiting Configuration
	RateLimitPrefix string `env:"RATE_LIMIT_PREFIX" envDefault:"contact-form-rate-limits"`
	MaxHourly       int    `env:"MAX_HOURLY_SUBMISSIONS" envDefault:"5"`
	MaxDaily        int    `env:"MAX_DAILY_SUBMISSIONS" envDefault:"10"`
	BurstRPS        int    `env:"BURST_RPS" envDefault:"10"`
	BurstSize       int    `env:"BURST_SIZE" envDefault:"20"`

	// Email Configuration
	SMTPHost          string `env:"SMTP_HOST"`
	SMTPPort          int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername      string `env:"SMTP_USERNAME"`
	SMTPPassword      string `env:"SMTP_PASSWORD"`
	SenderEmail       string `env:"SENDER_EMAIL" envDefault:"noreply@yourwebsite.com"`
	SenderName        string `env:"SENDER_NAME" envDefault:"Your Website"`
	NotificationEmail string `env:"NOTIFICATION_EMAIL" envDefault:"admin@yourwebsite.com"`

	// Website Identity
	WebsiteName string `env:"WEBSITE_NAME" envDefault:"Your Website"`
	WebsiteURL  string `env:"WEBSITE_URL" envDefault:"https://yourwebsite.com"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if it exists. Environment-specific files win over
	// the generic one; godotenv never overwrites variables already set.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MaxHourly <= 0 || cfg.MaxDaily <= 0 {
		return nil, fmt.Errorf("rate limits must be positive (hourly=%d, daily=%d)", cfg.MaxHourly, cfg.MaxDaily)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	User       string `env:"DB_USER" envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME" envDefault:"hr_ticketing"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxRetries int    `env:"DB_MAX_RETRIES" envDefault:"5"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM" envDefault:"hr-ticketing@localhost"`
}

type Config struct {
	Port     string `env:"PORT" envDefault:"3000"`
	Database DatabaseConfig
	SMTP     SMTPConfig

	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	KafkaBroker string `env:"KAFKA_BROKER"`
	JWTSecret   string `env:"JWT_SECRET,notEmpty"`

	// PlannedNoticeDays is how far ahead a planned leave must start.
	PlannedNoticeDays int           `env:"PLANNED_NOTICE_DAYS" envDefault:"30"`
	BalanceCacheTTL   time.Duration `env:"BALANCE_CACHE_TTL" envDefault:"10m"`
	OutboxPoll        time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"3s"`
	RateLimitRPS      float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst    int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load reads .env (when present) and the process environment once.
// Everything downstream receives the returned Config explicitly.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.PlannedNoticeDays < 0 {
		return Config{}, fmt.Errorf("PLANNED_NOTICE_DAYS must not be negative")
	}
	return cfg, nil
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

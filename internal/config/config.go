package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type DBConfig struct {
	Driver          string        `env:"DB_DRIVER" env-default:"postgres"` // postgres | sqlite
	DSN             string        `env:"DB_DSN"`
	LogLevel        string        `env:"DB_LOG_LEVEL" env-default:"warn"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	ConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS" env-default:"10"`
}

// AdminConfig — первый администратор создаётся только из конфига
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" env-default:"admin"`
	Password string `env:"ADMIN_PASSWORD" env-default:"Admin123!"`
}

type Config struct {
	ServiceName    string `env:"SERVICE_NAME" env-default:"hours-tracker"`
	Env            string `env:"APP_ENV" env-default:"development"`
	ServerPort     string `env:"SERVER_PORT" env-default:"8080"`
	SessionSecret  string `env:"SESSION_SECRET"`
	LogLevel       string `env:"LOG_LEVEL" env-default:"info"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" env-default:"true"`

	DB    DBConfig
	Admin AdminConfig
}

var (
	ErrMissingDSN    = errors.New("DB_DSN is not set")
	ErrMissingSecret = errors.New("SESSION_SECRET is not set")
)

// Load: .env (если есть) -> переменные окружения -> значения по умолчанию
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DB.DSN == "" {
		return ErrMissingDSN
	}
	if c.SessionSecret == "" {
		return ErrMissingSecret
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name           string   `envconfig:"APP_NAME" default:"Debtbook"`
		Port           int      `envconfig:"PORT" default:"8080"`
		AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	DB struct {
		Host          string `envconfig:"DB_HOST" default:"localhost"`
		Port          int    `envconfig:"DB_PORT" default:"5432"`
		User          string `envconfig:"DB_USER" default:"postgres"`
		Password      string `envconfig:"DB_PASSWORD" default:""`
		Name          string `envconfig:"DB_NAME" default:"debtbook"`
		MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
	}

	Redis struct {
		Addr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	}

	Session struct {
		Secret string        `envconfig:"SESSION_SECRET" required:"true"`
		TTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

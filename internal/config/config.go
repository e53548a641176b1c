package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the server, populated from
// environment variables (optionally loaded from a .env file first).
type Config struct {
	ServerPort string        `env:"SERVER_PORT" envDefault:"4567"`
	GinMode    string        `env:"GIN_MODE" envDefault:"debug"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret  string        `env:"JWT_SECRET,required"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"1h"`
	RateLimit  string        `env:"RATE_LIMIT" envDefault:"100-M"` // ulule/limiter formatted rate

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME,required"`
}

// Load reads a .env file if one exists and parses the environment into
// a Config. Missing required variables produce an error, not a default.
func Load() (*Config, error) {
	// A missing .env file is fine, real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// DSN assembles the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

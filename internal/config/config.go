package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	ServerPort string `env:"SERVER_PORT" env-default:"8080"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"cinemate"`
	DBPassword string `env:"DB_PASSWORD" env-default:"cinemate_dev_password"`
	DBName     string `env:"DB_NAME" env-default:"cinemate"`
	JWTSecret  string `env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
	LogPretty  bool   `env:"LOG_PRETTY" env-default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading config from env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

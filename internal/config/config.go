package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Env         string `env:"ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`

	JWTSecret       string        `env:"JWT_SECRET,required,notEmpty"`
	JWTAccessExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`

	Shard     ShardConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ShardConfig struct {
	MaxTeams      int `env:"MAX_TEAMS" envDefault:"10000"`
	MaxApplicants int `env:"MAX_APPLICANTS" envDefault:"20"`
	QueueSize     int `env:"SHARD_QUEUE_SIZE" envDefault:"256"`
}

// RedisConfig is optional; an empty Addr disables rate limiting.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type RateLimitConfig struct {
	ApplyLimit  int           `env:"APPLY_RATE_LIMIT" envDefault:"10"`
	ApplyWindow time.Duration `env:"APPLY_RATE_WINDOW" envDefault:"1m"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Shard.MaxTeams < 1 || cfg.Shard.MaxApplicants < 1 {
		return nil, errors.New("MAX_TEAMS and MAX_APPLICANTS must be positive")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) RateLimitEnabled() bool {
	return c.Redis.Addr != "" && c.RateLimit.ApplyLimit > 0
}

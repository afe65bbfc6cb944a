package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string `env:"PORT,          default=8080"`
	Env          string `env:"ENV,           default=development"`
	JWTSecret    string `env:"JWT_SECRET"`
	LogLevel     string `env:"LOG_LEVEL,     default=info"`
	ClientOrigin string `env:"CLIENT_ORIGIN, default=http://localhost:3000"`

	TokenTTL time.Duration `env:"TOKEN_TTL, default=1h"`

	// Lockout policy; the defaults mirror the production constants.
	LockoutThreshold int           `env:"LOCKOUT_THRESHOLD, default=8"`
	LockoutDuration  time.Duration `env:"LOCKOUT_DURATION,  default=48h"`

	// Per-origin login rate limit, applied to the login route only.
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT,  default=5"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=15m"`

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=vetcare_accounts"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}

package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT, default=8080"`
	GinMode   string `env:"GIN_MODE, default=debug"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// SeedUsers creates the demo accounts (alice, bob, charlie) on startup.
	SeedUsers bool `env:"SEED_USERS, default=true"`

	// DeniedUsernames may exist as users but can never sign in or register.
	DeniedUsernames []string `env:"DENIED_USERNAMES, default=dog"`

	// DedupeSimilarEdges emits one similar-to edge per unordered task pair
	// instead of one per direction.
	DedupeSimilarEdges bool `env:"GRAPH_DEDUPE_SIMILAR, default=false"`

	Database DatabaseConfig
	Session  SessionConfig
}

type DatabaseConfig struct {
	// Driver is one of sqlite, mysql or postgres.
	Driver   string `env:"DB_DRIVER, default=sqlite"`
	DSN      string `env:"DB_DSN, default=:memory:"`
	Host     string `env:"DB_HOST, default=localhost"`
	Port     string `env:"DB_PORT"`
	User     string `env:"DB_USER, default=taskuser"`
	Password string `env:"DB_PASSWORD, default=taskpassword"`
	Name     string `env:"DB_NAME, default=task_tracker"`
	LogLevel string `env:"DB_LOG_LEVEL, default=warn"`
}

type SessionConfig struct {
	// Store is cookie or redis.
	Store      string `env:"SESSION_STORE, default=cookie"`
	CookieName string `env:"SESSION_COOKIE, default=sid"`
	Secret     string `env:"SESSION_SECRET, default=default-secret-key-change-me"`
	RedisHost  string `env:"REDIS_HOST, default=localhost"`
	RedisPort  string `env:"REDIS_PORT, default=6379"`
	RedisPool  int    `env:"REDIS_POOL, default=10"`
}

// Load reads configuration from the environment, after merging an optional
// .env file.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// Package config is centralized process configuration. Infra values live
// here; builders receive typed config, never raw environment reads.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME,default=fieldproof"`

	Server   ServerConfig   `env:",prefix=SERVER_"`
	Database DatabaseConfig `env:",prefix=DB_"`
	App      AppConfig      `env:",prefix=APP_"`
}

type ServerConfig struct {
	Port         string `env:"PORT,default=8080"`
	Host         string `env:"HOST,default=0.0.0.0"`
	ReadTimeout  int    `env:"READ_TIMEOUT,default=30"`  // seconds
	WriteTimeout int    `env:"WRITE_TIMEOUT,default=30"` // seconds

	// Requests per second allowed on mutating routes, with MutationBurst
	// extra headroom. Zero disables the limiter.
	MutationRateLimit float64 `env:"MUTATION_RATE_LIMIT,default=50"`
	MutationBurst     int     `env:"MUTATION_BURST,default=100"`
}

// DatabaseConfig holds PostgreSQL settings. An empty DSN (and empty Host)
// means the process runs on in-memory stores.
type DatabaseConfig struct {
	DSN      string `env:"DSN"`
	Host     string `env:"HOST"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=postgres"`
	Password string `env:"PASSWORD,default=postgres"`
	Name     string `env:"NAME,default=fieldproof"`
	SSLMode  string `env:"SSL_MODE,default=disable"`

	MaxOpenConns        int `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns        int `env:"MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetimeMins int `env:"CONN_MAX_LIFETIME_MINUTES,default=30"`
}

type AppConfig struct {
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment config: %w", err)
	}
	return cfg, nil
}

// PostgresDSN resolves the connection string: an explicit DSN wins, else one
// is assembled from the parts when a host is set. Empty means memory mode.
func (c Config) PostgresDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User,
		c.Database.Password, c.Database.Name, c.Database.SSLMode,
	)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

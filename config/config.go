// Package config loads environment-driven settings for keep-alive enabled
// MCP clients. It parses struct tags with caarlos0/env and bootstraps a
// local .env file when present, so example binaries and services share one
// configuration path. The keepalive API itself takes plain values; nothing
// in this module requires using this package.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/hupe1980/mcpkeepalive/core"
)

// Config captures the settings a keep-alive enabled MCP client needs.
type Config struct {
	// ServerURL is the MCP streamable HTTP endpoint.
	ServerURL string `env:"MCP_SERVER_URL"`

	// PingInterval is the delay between keep-alive pings. Keep it below the
	// idle timeout of any load balancer on the path.
	PingInterval time.Duration `env:"MCP_PING_INTERVAL" envDefault:"50s"`

	// Headers are connection-level headers sent with every request, e.g.
	// MCP_HEADERS="Authorization:Bearer x,X-Tenant:acme".
	Headers map[string]string `env:"MCP_HEADERS" envKeyValSeparator:":"`

	// RequestTimeout bounds individual provider requests. Zero leaves the
	// provider's own default in place.
	RequestTimeout time.Duration `env:"MCP_REQUEST_TIMEOUT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

var dotenvOnce sync.Once

// Load parses Config from the environment. A .env file in the working
// directory is loaded first if present; a missing file is not an error.
func Load() (Config, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.PingInterval <= 0 {
		return Config{}, fmt.Errorf("config: ping interval must be positive, got %s", cfg.PingInterval)
	}

	return cfg, nil
}

// ConnectionParams builds streamable HTTP connection parameters from the
// config, suitable for handing to a provider implementation.
func (c Config) ConnectionParams() core.StreamableHTTPConnectionParams {
	return core.StreamableHTTPConnectionParams{
		URL:     c.ServerURL,
		Headers: c.Headers,
		Timeout: c.RequestTimeout,
	}
}

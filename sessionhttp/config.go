// Package sessionhttp bridges HTTP traffic to berth's session-scoped
// lifetime: middleware that pins a session identifier to each request, and a
// tracker that emits session-end events when sessions expire or are ended
// explicitly.
package sessionhttp

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the adapter's knobs, populated from the environment.
type Config struct {
	// Header is the request header carrying an existing session identifier.
	Header string `env:"SESSION_HEADER" envDefault:"X-Session-ID"`

	// Cookie is the cookie name used to persist minted identifiers.
	Cookie string `env:"SESSION_COOKIE" envDefault:"berth_session"`

	// IdleTTL is how long a session may sit idle before it is ended.
	IdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`

	// SweepInterval is how often the tracker looks for idle sessions.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
}

// ConfigFromEnv parses Config from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

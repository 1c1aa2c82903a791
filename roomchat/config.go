package roomchat

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls how the SDK reaches the chat service.
type Config struct {
	// BaseURL is the http(s) root of the chat service, e.g.
	// "http://localhost:3000". Sessions derive the ws(s) endpoint from it.
	BaseURL string `env:"ROOMCHAT_BASE_URL"`

	HandshakeTimeout time.Duration `env:"ROOMCHAT_HANDSHAKE_TIMEOUT"`
	ReadTimeout      time.Duration `env:"ROOMCHAT_READ_TIMEOUT"`
	WriteTimeout     time.Duration `env:"ROOMCHAT_WRITE_TIMEOUT"`
}

// DefaultConfig returns sensible defaults. ReadTimeout is disabled
// because a room can stay quiet for a long time.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      0,
		WriteTimeout:     10 * time.Second,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by ROOMCHAT_* variables.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

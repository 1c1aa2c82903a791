package roomchat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ROOMCHAT_BASE_URL", "http://chat.example:3000")
	t.Setenv("ROOMCHAT_READ_TIMEOUT", "45s")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://chat.example:3000", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.ReadTimeout)
	// Unset variables keep the defaults.
	assert.Equal(t, 10*time.Second, cfg.HandshakeTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
}

func TestConfigFromEnvInvalidDuration(t *testing.T) {
	t.Setenv("ROOMCHAT_WRITE_TIMEOUT", "not-a-duration")

	_, err := ConfigFromEnv()
	require.Error(t, err)
}

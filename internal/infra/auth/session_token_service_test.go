package auth

import (
	"testing"
	"time"

	"lbank/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionConfig(ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.Session = &config.SessionConfig{
		CookieName: "lbank_session",
		TTL:        ttl,
	}

	return cfg
}

func TestSessionTokenService_GenerateSecret(t *testing.T) {
	svc, err := NewSessionTokenService(newTestSessionConfig(time.Hour))
	require.NoError(t, err)

	raw, hash, err := svc.GenerateSecret()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, raw, hash)

	// The raw secret must hash back to the stored hash.
	assert.Equal(t, hash, svc.HashSecret(raw))

	// Two secrets must never collide.
	raw2, hash2, err := svc.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
	assert.NotEqual(t, hash, hash2)
}

func TestSessionTokenService_HashSecretIsDeterministic(t *testing.T) {
	svc, err := NewSessionTokenService(newTestSessionConfig(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, svc.HashSecret("secret"), svc.HashSecret("secret"))
	assert.NotEqual(t, svc.HashSecret("secret"), svc.HashSecret("secret2"))
}

func TestSessionTokenService_SessionDuration(t *testing.T) {
	svc, err := NewSessionTokenService(newTestSessionConfig(30 * time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, svc.SessionDuration())
}

func TestNewSessionTokenService_RequiresTTL(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewSessionTokenService(cfg)
	assert.Error(t, err)
}

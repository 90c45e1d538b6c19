package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"lbank/config"
	"lbank/internal/domain/service"
	"lbank/internal/errors"
)

// sessionSecretBytes is the entropy of a raw session secret before encoding.
const sessionSecretBytes = 32

// sessionTokenService is a concrete implementation of the SessionTokenService
// interface using random opaque secrets hashed with SHA-256.
type sessionTokenService struct {
	ttl time.Duration
}

// NewSessionTokenService is the constructor for sessionTokenService.
func NewSessionTokenService(cfg *config.Config) (service.SessionTokenService, error) {
	if cfg.Session == nil || cfg.Session.TTL <= 0 {
		return nil, errors.New("session TTL must be provided")
	}

	return &sessionTokenService{ttl: cfg.Session.TTL}, nil
}

// GenerateSecret creates a new random secret and its storage hash.
// The raw form is URL-safe so it can be carried in a cookie without escaping.
func (s *sessionTokenService) GenerateSecret() (string, string, error) {
	buf := make([]byte, sessionSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", errors.Wrap(err, "generate session secret")
	}

	raw := base64.RawURLEncoding.EncodeToString(buf)

	return raw, s.HashSecret(raw), nil
}

// HashSecret returns the hex-encoded SHA-256 digest of a raw secret.
func (s *sessionTokenService) HashSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}

// SessionDuration returns the configured session lifetime.
func (s *sessionTokenService) SessionDuration() time.Duration {
	return s.ttl
}

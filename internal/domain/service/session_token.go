package service

import "time"

// SessionTokenService issues and hashes opaque session secrets.
// The raw secret only ever travels inside the session cookie; the server
// persists the hash and looks sessions up by it.
type SessionTokenService interface {
	// GenerateSecret returns a fresh random secret together with its hash.
	GenerateSecret() (raw string, hash string, err error)

	// HashSecret recomputes the stored hash for a raw secret presented by a client.
	HashSecret(raw string) string

	// SessionDuration returns the configured session lifetime.
	SessionDuration() time.Duration
}
